package fake

import (
	"context"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/walker/components/base"
	"go.viam.com/walker/logging"
	"go.viam.com/walker/resource"
)

func TestFakeBase(t *testing.T) {
	ctx := context.Background()
	b := NewBase(base.Named("test"), logging.NewTestLogger(t))

	linear, angular := base.Planar(0.2, 0)
	test.That(t, b.SetVelocity(ctx, linear, angular, nil), test.ShouldBeNil)
	gotLinear, gotAngular := b.Velocity()
	test.That(t, gotLinear, test.ShouldResemble, r3.Vector{X: 0.2})
	test.That(t, gotAngular, test.ShouldResemble, r3.Vector{})
	test.That(t, b.Commands(), test.ShouldEqual, 1)

	b.SetUnavailable(true)
	linear, angular = base.Planar(0, 1)
	test.That(t, b.SetVelocity(ctx, linear, angular, nil), test.ShouldEqual, ErrUnavailable)
	gotLinear, _ = b.Velocity()
	test.That(t, gotLinear, test.ShouldResemble, r3.Vector{X: 0.2})
	test.That(t, b.Commands(), test.ShouldEqual, 1)

	b.SetUnavailable(false)
	test.That(t, b.SetVelocity(ctx, linear, angular, nil), test.ShouldBeNil)
	_, gotAngular = b.Velocity()
	test.That(t, gotAngular, test.ShouldResemble, r3.Vector{Z: 1})

	test.That(t, b.Stop(ctx, nil), test.ShouldBeNil)
	gotLinear, gotAngular = b.Velocity()
	test.That(t, gotLinear, test.ShouldResemble, r3.Vector{})
	test.That(t, gotAngular, test.ShouldResemble, r3.Vector{})
	test.That(t, b.Stops(), test.ShouldEqual, 1)

	test.That(t, b.Close(ctx), test.ShouldBeNil)
	test.That(t, b.Closes(), test.ShouldEqual, 1)
}

func TestRegistration(t *testing.T) {
	conf := resource.Config{Name: "base1", API: base.API, Model: Model}
	b, err := resource.Build[base.Base](context.Background(), conf, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Name(), test.ShouldResemble, base.Named("base1"))
	_, ok := b.(*Base)
	test.That(t, ok, test.ShouldBeTrue)
}
