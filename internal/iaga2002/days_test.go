package iaga2002

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func TestDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []time.Time
	}{
		{
			"single instant",
			utc(2020, 1, 1, 12, 30, 0),
			utc(2020, 1, 1, 12, 30, 0),
			[]time.Time{utc(2020, 1, 1, 0, 0, 0)},
		},
		{
			"within one day",
			utc(2020, 1, 1, 0, 0, 0),
			utc(2020, 1, 1, 23, 59, 59),
			[]time.Time{utc(2020, 1, 1, 0, 0, 0)},
		},
		{
			"two days",
			utc(2020, 1, 1, 0, 0, 0),
			utc(2020, 1, 2, 23, 59, 59),
			[]time.Time{utc(2020, 1, 1, 0, 0, 0), utc(2020, 1, 2, 0, 0, 0)},
		},
		{
			"midnight end touches next day",
			utc(2020, 1, 1, 12, 0, 0),
			utc(2020, 1, 2, 0, 0, 0),
			[]time.Time{utc(2020, 1, 1, 0, 0, 0), utc(2020, 1, 2, 0, 0, 0)},
		},
		{
			"across year boundary",
			utc(2019, 12, 30, 6, 0, 0),
			utc(2020, 1, 2, 6, 0, 0),
			[]time.Time{
				utc(2019, 12, 30, 0, 0, 0),
				utc(2019, 12, 31, 0, 0, 0),
				utc(2020, 1, 1, 0, 0, 0),
				utc(2020, 1, 2, 0, 0, 0),
			},
		},
		{
			"leap day",
			utc(2020, 2, 28, 0, 0, 0),
			utc(2020, 3, 1, 0, 0, 0),
			[]time.Time{
				utc(2020, 2, 28, 0, 0, 0),
				utc(2020, 2, 29, 0, 0, 0),
				utc(2020, 3, 1, 0, 0, 0),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := days(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDays_NonUTCInput(t *testing.T) {
	// 2020-01-01T23:30-05:00 is 2020-01-02T04:30Z, so the window covers
	// two UTC days.
	est := time.FixedZone("EST", -5*3600)
	start := time.Date(2020, 1, 1, 23, 30, 0, 0, est)

	got, err := days(start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{utc(2020, 1, 2, 0, 0, 0)}, got)
}

func TestDays_InvalidRange(t *testing.T) {
	_, err := days(utc(2020, 1, 2, 0, 0, 0), utc(2020, 1, 1, 0, 0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
