// Package fake implements a fake base.
package fake

import (
	"context"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/walker/components/base"
	"go.viam.com/walker/logging"
	"go.viam.com/walker/resource"
)

// Model is the model name of the fake base.
const Model = resource.Model("fake")

func init() {
	resource.Register(base.API, Model, resource.Registration[base.Base, resource.NoNativeConfig]{
		Constructor: func(ctx context.Context, conf resource.Config, logger logging.Logger) (base.Base, error) {
			return NewBase(conf.ResourceName(), logger), nil
		},
	})
}

// ErrUnavailable is returned by SetVelocity while the base is marked unavailable.
var ErrUnavailable = errors.New("fake base unavailable")

// Base is a fake base that records the velocity commands it is given.
type Base struct {
	resource.Named
	logger logging.Logger

	mu          sync.Mutex
	linear      r3.Vector
	angular     r3.Vector
	commands    int
	stops       int
	unavailable bool
	closes      int
}

// NewBase instantiates a new base of the fake model type.
func NewBase(name resource.Name, logger logging.Logger) *Base {
	return &Base{Named: name.AsNamed(), logger: logger}
}

// SetVelocity records the command.
func (b *Base) SetVelocity(ctx context.Context, linear, angular r3.Vector, extra map[string]interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unavailable {
		return ErrUnavailable
	}
	b.linear, b.angular = linear, angular
	b.commands++
	b.logger.CDebugw(ctx, "velocity", "linear_x", linear.X, "angular_z", angular.Z)
	return nil
}

// Stop zeroes the recorded velocity.
func (b *Base) Stop(ctx context.Context, extra map[string]interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.linear, b.angular = r3.Vector{}, r3.Vector{}
	b.stops++
	return nil
}

// SetUnavailable makes subsequent SetVelocity calls fail (or succeed again) to simulate a lost
// actuator connection.
func (b *Base) SetUnavailable(unavailable bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unavailable = unavailable
}

// Velocity returns the last accepted command.
func (b *Base) Velocity() (linear, angular r3.Vector) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.linear, b.angular
}

// Commands returns how many velocity commands were accepted.
func (b *Base) Commands() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commands
}

// Stops returns how many times Stop was called.
func (b *Base) Stops() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stops
}

// Closes returns how many times Close was called.
func (b *Base) Closes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closes
}

// Close only counts the call.
func (b *Base) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closes++
	return nil
}
