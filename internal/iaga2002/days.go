package iaga2002

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange indicates a requested window whose start is after its end.
var ErrInvalidRange = errors.New("starttime must not be after endtime")

// days returns one start-of-day instant (UTC midnight) per calendar day
// touched by [start, end], inclusive of both endpoints' days. The cursor
// advances by exactly 86400 seconds until it lands on the end instant's
// calendar day, so at least one day is always produced even when
// start == end.
func days(start, end time.Time) ([]time.Time, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%s after %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), ErrInvalidRange)
	}

	start = start.UTC()
	end = end.UTC()
	cursor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	var out []time.Time
	for {
		out = append(out, cursor)
		if sameDay(cursor, end) {
			return out, nil
		}
		cursor = cursor.Add(86400 * time.Second)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
