// Package lidar defines planar range scans and the sources that deliver them.
package lidar

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/walker/utils"
)

// A Scan is one sweep of a planar range sensor. Ranges[i] is the distance in meters measured at
// bearing AngleMin + i*AngleIncrement (radians, counter-clockwise, 0 straight ahead). NaN and
// infinite entries mean the ray had no return.
type Scan struct {
	Seq      uint32
	Time     time.Time
	FrameID  string
	AngleMin float64
	AngleMax float64

	AngleIncrement float64
	RangeMin       float64
	RangeMax       float64
	Ranges         []float64
}

// Len returns the number of rays in the scan. A nil scan has no rays.
func (s *Scan) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Ranges)
}

// Angle returns the bearing of ray i in radians.
func (s *Scan) Angle(i int) float64 {
	return s.AngleMin + float64(i)*s.AngleIncrement
}

// Measurements returns the rays that had a finite return.
func (s *Scan) Measurements() Measurements {
	ms := make(Measurements, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		ms = s.appendFinite(ms, i)
	}
	return ms
}

// FrontMeasurements returns the finite returns among the first k and last k rays, which straddle
// straight ahead. When the two ends overlap every ray is used.
func (s *Scan) FrontMeasurements(k int) Measurements {
	n := s.Len()
	if n == 0 || k <= 0 {
		return nil
	}
	if 2*k >= n {
		return s.Measurements()
	}
	ms := make(Measurements, 0, 2*k)
	for i := 0; i < k; i++ {
		ms = s.appendFinite(ms, i)
	}
	for i := n - k; i < n; i++ {
		ms = s.appendFinite(ms, i)
	}
	return ms
}

func (s *Scan) appendFinite(ms Measurements, i int) Measurements {
	if !utils.IsFinite(s.Ranges[i]) {
		return ms
	}
	return append(ms, NewMeasurement(s.Angle(i), s.Ranges[i]))
}

// Validate reports whether the scan header agrees with its ranges. The walker never rejects a
// scan; sources use this to log suspicious input.
func (s *Scan) Validate() error {
	if s == nil {
		return errors.New("nil scan")
	}
	if math.IsNaN(s.AngleIncrement) || math.IsInf(s.AngleIncrement, 0) {
		return errors.Errorf("angle increment %v is not finite", s.AngleIncrement)
	}
	if s.AngleMax == 0 || s.AngleIncrement == 0 || len(s.Ranges) == 0 {
		return nil
	}
	expected := int(math.Round((s.AngleMax-s.AngleMin)/s.AngleIncrement)) + 1
	if expected != len(s.Ranges) {
		return errors.Errorf("scan declares %d rays between %.3f and %.3f rad but carries %d",
			expected, s.AngleMin, s.AngleMax, len(s.Ranges))
	}
	return nil
}

// NewUniformScan returns a full-circle scan of n rays all reading distance, starting straight
// ahead. It is mostly useful for fakes and tests.
func NewUniformScan(n int, distance float64) *Scan {
	ranges := make([]float64, n)
	for i := range ranges {
		ranges[i] = distance
	}
	scan := &Scan{Ranges: ranges}
	if n > 0 {
		scan.AngleIncrement = 2 * math.Pi / float64(n)
		scan.AngleMax = scan.Angle(n - 1)
	}
	return scan
}
