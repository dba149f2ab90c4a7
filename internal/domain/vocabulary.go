package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedValue indicates a data type or interval outside the closed
// vocabulary tables. It is a configuration error and is raised before any
// fetch or write happens.
var ErrUnsupportedValue = errors.New("unsupported value")

// Interval is a nominal sampling cadence.
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalHourly  Interval = "hourly"
	IntervalMinute  Interval = "minute"
	IntervalMonthly Interval = "monthly"
	IntervalSecond  Interval = "second"
)

// Abbreviation returns the short code used in file names for this interval.
func (i Interval) Abbreviation() (string, error) {
	switch i {
	case IntervalDaily:
		return "day", nil
	case IntervalHourly:
		return "hor", nil
	case IntervalMinute:
		return "min", nil
	case IntervalMonthly:
		return "mon", nil
	case IntervalSecond:
		return "sec", nil
	}
	return "", fmt.Errorf("interval %q: %w", string(i), ErrUnsupportedValue)
}

// Name returns the long interval name used in directory layouts. Only
// minute and second cadences have names.
func (i Interval) Name() (string, error) {
	switch i {
	case IntervalMinute:
		return "OneMinute", nil
	case IntervalSecond:
		return "OneSecond", nil
	}
	return "", fmt.Errorf("interval %q: %w", string(i), ErrUnsupportedValue)
}

// DataType is a data provenance/quality tier.
type DataType string

const (
	TypeDefinitive      DataType = "definitive"
	TypeProvisional     DataType = "provisional"
	TypeQuasiDefinitive DataType = "quasi-definitive"
	TypeVariation       DataType = "variation"
)

// Abbreviation returns the single-letter code used in file names for this
// data type.
func (t DataType) Abbreviation() (string, error) {
	switch t {
	case TypeDefinitive:
		return "d", nil
	case TypeProvisional:
		return "p", nil
	case TypeQuasiDefinitive:
		return "q", nil
	case TypeVariation:
		return "v", nil
	}
	return "", fmt.Errorf("data type %q: %w", string(t), ErrUnsupportedValue)
}

// Name returns the long type name used in directory layouts. Variation data
// lives at the root, so its name is empty.
func (t DataType) Name() (string, error) {
	switch t {
	case TypeVariation:
		return "", nil
	case TypeQuasiDefinitive:
		return "QuasiDefinitive", nil
	}
	return "", fmt.Errorf("data type %q: %w", string(t), ErrUnsupportedValue)
}
