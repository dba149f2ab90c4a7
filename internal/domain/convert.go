package domain

import "math"

// DeclinationChannel is the only channel stored in angular units.
const DeclinationChannel = "D"

const radiansPerMinute = math.Pi / 180 / 60

// RadiansFromMinutes converts declination samples from arc-minutes to
// radians. The input is not modified; NaN passes through unchanged.
func RadiansFromMinutes(minutes []float64) []float64 {
	radians := make([]float64, len(minutes))
	for i, v := range minutes {
		radians[i] = v * radiansPerMinute
	}
	return radians
}

// MinutesFromRadians converts declination samples from radians back to
// arc-minutes. The input is not modified; NaN passes through unchanged.
func MinutesFromRadians(radians []float64) []float64 {
	minutes := make([]float64, len(radians))
	for i, v := range radians {
		minutes[i] = v / radiansPerMinute
	}
	return minutes
}
