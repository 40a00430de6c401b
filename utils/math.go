package utils

import (
	"math"
	"time"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// HzToPeriod returns the period of a loop running at the given frequency.
func HzToPeriod(hz float64) time.Duration {
	return time.Duration(float64(time.Second) / hz)
}
