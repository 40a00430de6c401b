package lidar

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/walker/utils"
)

// Measurements is a list of finite range returns.
type Measurements []*Measurement

// Closest returns the measurement with the smallest distance, or nil if there are none.
func (ms Measurements) Closest() *Measurement {
	var closest *Measurement
	for _, m := range ms {
		if closest == nil || m.distance < closest.distance {
			closest = m
		}
	}
	return closest
}

// A Measurement is a single finite range return.
type Measurement struct {
	angle    float64
	angleDeg float64
	distance float64
	point    r2.Point
}

// NewMeasurement returns a measurement at the given bearing (radians) and distance. The robot
// frame has x pointing ahead and y to the left, so
// 0°   - (1, 0)  ahead
// 90°  - (0, 1)  left
// 180° - (-1, 0) behind
// 270° - (0, -1) right.
func NewMeasurement(angle, distance float64) *Measurement {
	return &Measurement{
		angle:    angle,
		angleDeg: utils.RadToDeg(angle),
		distance: distance,
		point:    r2.Point{X: distance * math.Cos(angle), Y: distance * math.Sin(angle)},
	}
}

// Angle is in radians.
func (m *Measurement) Angle() float64 {
	return m.angle
}

// AngleDeg is in degrees.
func (m *Measurement) AngleDeg() float64 {
	return m.angleDeg
}

// Distance is in meters.
func (m *Measurement) Distance() float64 {
	return m.distance
}

// Point returns the return's position in the robot frame.
func (m *Measurement) Point() r2.Point {
	return m.point
}
