package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsDelta(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want time.Duration
	}{
		{"second", 1, time.Second},
		{"minute", 1.0 / 60, time.Minute},
		{"hourly", 1.0 / 3600, time.Hour},
		{"derived minute", 1439.0 / 86340, time.Minute},
		{"unknown", 0, 0},
		{"negative", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stats{SampleRate: tt.rate}.Delta())
		})
	}
}

func TestStatsEndTime(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	s := Stats{StartTime: start, SampleRate: 1.0 / 60, SampleCount: 1440}
	assert.Equal(t, start.Add(1439*time.Minute), s.EndTime())

	single := Stats{StartTime: start, SampleRate: 1.0 / 60, SampleCount: 1}
	assert.Equal(t, start, single.EndTime())
}

func TestTimeseriesSelect(t *testing.T) {
	ts := Timeseries{
		{Stats: Stats{Channel: "H"}},
		{Stats: Stats{Channel: "D"}},
	}
	assert.Same(t, ts[1], ts.Select("D"))
	assert.Nil(t, ts.Select("F"))
}

func TestTimeseriesChannels(t *testing.T) {
	ts := Timeseries{
		{Stats: Stats{Channel: "H"}},
		{Stats: Stats{Channel: "D"}},
		{Stats: Stats{Channel: "H"}},
		{Stats: Stats{Channel: "Z"}},
	}
	assert.Equal(t, []string{"H", "D", "Z"}, ts.Channels())
}
