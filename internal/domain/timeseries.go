package domain

import (
	"math"
	"time"
)

// Stats holds per-trace metadata describing where and how a trace's samples
// were recorded.
type Stats struct {
	Station     string  // IAGA observatory code, e.g. "BOU"
	StationName string  // human-readable name, e.g. "Boulder"
	Latitude    float64 // geodetic latitude in degrees
	Longitude   float64 // geodetic longitude in degrees
	Elevation   float64 // meters above sea level
	DataType    string  // provenance tier as declared in the file header
	SampleRate  float64 // samples per second
	StartTime   time.Time
	SampleCount int
	Channel     string
}

// Delta returns the spacing between consecutive samples.
// Zero when the sampling rate is unknown.
func (s Stats) Delta() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	// Round to the nearest nanosecond: rates derived from sample counts
	// divide out to whole spacings, but float division can land a hair off.
	return time.Duration(math.Round(float64(time.Second) / s.SampleRate))
}

// EndTime returns the instant of the last sample.
func (s Stats) EndTime() time.Time {
	if s.SampleCount < 2 {
		return s.StartTime
	}
	return s.StartTime.Add(time.Duration(s.SampleCount-1) * s.Delta())
}

// Trace is one channel's ordered sample sequence for a contiguous time span.
// Missing samples are NaN.
type Trace struct {
	Stats Stats
	Data  []float64
}

// Channel returns the trace's channel code.
func (t *Trace) Channel() string { return t.Stats.Channel }

// Timeseries is an ordered collection of traces. Traces belonging to a
// single day unit share start time, rate, and length; traces from different
// days are reconciled by Merge.
type Timeseries []*Trace

// Select returns the first trace with the given channel code, or nil.
func (ts Timeseries) Select(channel string) *Trace {
	for _, tr := range ts {
		if tr.Stats.Channel == channel {
			return tr
		}
	}
	return nil
}

// Channels returns the distinct channel codes in first-seen order.
func (ts Timeseries) Channels() []string {
	seen := make(map[string]bool, len(ts))
	var channels []string
	for _, tr := range ts {
		if !seen[tr.Stats.Channel] {
			seen[tr.Stats.Channel] = true
			channels = append(channels, tr.Stats.Channel)
		}
	}
	return channels
}
