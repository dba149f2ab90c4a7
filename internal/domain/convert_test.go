package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiansFromMinutes(t *testing.T) {
	// 60 arc-minutes is one degree.
	got := RadiansFromMinutes([]float64{60, -60, 0, 10800})
	require.Len(t, got, 4)
	assert.InDelta(t, math.Pi/180, got[0], 1e-15)
	assert.InDelta(t, -math.Pi/180, got[1], 1e-15)
	assert.Zero(t, got[2])
	assert.InDelta(t, math.Pi, got[3], 1e-12)
}

func TestMinutesFromRadians(t *testing.T) {
	got := MinutesFromRadians([]float64{math.Pi, -math.Pi / 180})
	require.Len(t, got, 2)
	assert.InDelta(t, 10800, got[0], 1e-9)
	assert.InDelta(t, -60, got[1], 1e-12)
}

func TestConvert_RoundTrip(t *testing.T) {
	minutes := []float64{-68.80, -68.81, 0.01, 123.45}
	back := MinutesFromRadians(RadiansFromMinutes(minutes))
	for i := range minutes {
		assert.InDelta(t, minutes[i], back[i], 1e-10)
	}
}

func TestConvert_NaNPassthrough(t *testing.T) {
	got := RadiansFromMinutes([]float64{1, math.NaN(), 3})
	assert.True(t, math.IsNaN(got[1]))
	assert.False(t, math.IsNaN(got[0]))

	got = MinutesFromRadians([]float64{math.NaN()})
	assert.True(t, math.IsNaN(got[0]))
}

func TestConvert_DoesNotModifyInput(t *testing.T) {
	input := []float64{60, 120}
	_ = RadiansFromMinutes(input)
	assert.Equal(t, []float64{60, 120}, input)

	_ = MinutesFromRadians(input)
	assert.Equal(t, []float64{60, 120}, input)
}
