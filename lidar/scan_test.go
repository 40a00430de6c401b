package lidar

import (
	"context"
	"math"
	"testing"

	"go.viam.com/test"
)

func TestScanAngles(t *testing.T) {
	scan := &Scan{AngleMin: -math.Pi / 2, AngleIncrement: math.Pi / 2, Ranges: []float64{1, 2, 3}}
	test.That(t, scan.Len(), test.ShouldEqual, 3)
	test.That(t, scan.Angle(0), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, scan.Angle(1), test.ShouldAlmostEqual, 0)
	test.That(t, scan.Angle(2), test.ShouldAlmostEqual, math.Pi/2)

	var nilScan *Scan
	test.That(t, nilScan.Len(), test.ShouldEqual, 0)
	test.That(t, nilScan.Measurements(), test.ShouldBeEmpty)
}

func TestScanMeasurements(t *testing.T) {
	scan := &Scan{
		AngleMin:       0,
		AngleIncrement: math.Pi / 2,
		Ranges:         []float64{2, math.NaN(), math.Inf(1), 0.5},
	}
	ms := scan.Measurements()
	test.That(t, ms, test.ShouldHaveLength, 2)

	ahead := ms[0]
	test.That(t, ahead.Distance(), test.ShouldEqual, 2.0)
	test.That(t, ahead.Point().X, test.ShouldAlmostEqual, 2)
	test.That(t, ahead.Point().Y, test.ShouldAlmostEqual, 0)

	right := ms[1]
	test.That(t, right.AngleDeg(), test.ShouldAlmostEqual, 270)
	test.That(t, right.Point().X, test.ShouldAlmostEqual, 0)
	test.That(t, right.Point().Y, test.ShouldAlmostEqual, -0.5)

	test.That(t, ms.Closest(), test.ShouldEqual, right)
	test.That(t, Measurements{}.Closest(), test.ShouldBeNil)
}

func TestScanFrontMeasurements(t *testing.T) {
	scan := NewUniformScan(8, 5)
	scan.Ranges[1] = 0.4
	scan.Ranges[4] = 0.1
	scan.Ranges[7] = math.NaN()

	front := scan.FrontMeasurements(2)
	test.That(t, front, test.ShouldHaveLength, 3)
	test.That(t, front[0].Distance(), test.ShouldEqual, 5.0)
	test.That(t, front[1].Distance(), test.ShouldEqual, 0.4)
	test.That(t, front[2].AngleDeg(), test.ShouldAlmostEqual, 270)

	closest := front.Closest()
	test.That(t, closest.Distance(), test.ShouldEqual, 0.4)
	test.That(t, closest.AngleDeg(), test.ShouldAlmostEqual, 45)

	test.That(t, scan.FrontMeasurements(4), test.ShouldHaveLength, 7)
	test.That(t, scan.FrontMeasurements(4).Closest().Distance(), test.ShouldEqual, 0.1)
	test.That(t, scan.FrontMeasurements(0), test.ShouldBeEmpty)

	var nilScan *Scan
	test.That(t, nilScan.FrontMeasurements(2), test.ShouldBeEmpty)
}

func TestScanValidate(t *testing.T) {
	test.That(t, NewUniformScan(360, 5).Validate(), test.ShouldBeNil)
	test.That(t, (&Scan{}).Validate(), test.ShouldBeNil)

	var nilScan *Scan
	test.That(t, nilScan.Validate(), test.ShouldNotBeNil)

	short := NewUniformScan(360, 5)
	short.Ranges = short.Ranges[:100]
	err := short.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "declares 360 rays")

	bad := &Scan{AngleIncrement: math.NaN(), Ranges: []float64{1}}
	test.That(t, bad.Validate(), test.ShouldNotBeNil)
}

func TestNewUniformScan(t *testing.T) {
	scan := NewUniformScan(4, 1.5)
	test.That(t, scan.Ranges, test.ShouldResemble, []float64{1.5, 1.5, 1.5, 1.5})
	test.That(t, scan.AngleIncrement, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, scan.AngleMax, test.ShouldAlmostEqual, 3*math.Pi/2)

	empty := NewUniformScan(0, 1)
	test.That(t, empty.Len(), test.ShouldEqual, 0)
}

func TestChanSource(t *testing.T) {
	scans := make(chan *Scan, 3)
	source := NewChanSource(Named("chan"), scans)
	test.That(t, source.Name(), test.ShouldResemble, Named("chan"))

	scans <- NewUniformScan(4, 1)
	scans <- NewUniformScan(4, 2)
	close(scans)

	var seen []float64
	err := source.Stream(context.Background(), func(ctx context.Context, scan *Scan) {
		seen = append(seen, scan.Ranges[0])
	})
	test.That(t, err, test.ShouldEqual, ErrSourceExhausted)
	test.That(t, seen, test.ShouldResemble, []float64{1, 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blocked := NewChanSource(Named("blocked"), make(chan *Scan))
	test.That(t, blocked.Stream(ctx, func(context.Context, *Scan) {}), test.ShouldBeNil)
	test.That(t, blocked.Close(ctx), test.ShouldBeNil)
}
