// Package inject provides function-injectable implementations of the walker's resources for
// tests.
package inject

import (
	"context"

	"github.com/golang/geo/r3"

	"go.viam.com/walker/components/base"
	"go.viam.com/walker/resource"
)

// Base is an injected base.
type Base struct {
	base.Base
	name            resource.Name
	SetVelocityFunc func(ctx context.Context, linear, angular r3.Vector, extra map[string]interface{}) error
	StopFunc        func(ctx context.Context, extra map[string]interface{}) error
	CloseFunc       func(ctx context.Context) error
}

// NewBase returns a new injected base.
func NewBase(name string) *Base {
	return &Base{name: base.Named(name)}
}

// Name returns the name of the resource.
func (b *Base) Name() resource.Name {
	return b.name
}

// SetVelocity calls the injected SetVelocity or the real version.
func (b *Base) SetVelocity(ctx context.Context, linear, angular r3.Vector, extra map[string]interface{}) error {
	if b.SetVelocityFunc == nil {
		return b.Base.SetVelocity(ctx, linear, angular, extra)
	}
	return b.SetVelocityFunc(ctx, linear, angular, extra)
}

// Stop calls the injected Stop or the real version.
func (b *Base) Stop(ctx context.Context, extra map[string]interface{}) error {
	if b.StopFunc == nil {
		return b.Base.Stop(ctx, extra)
	}
	return b.StopFunc(ctx, extra)
}

// Close calls the injected Close or the real version.
func (b *Base) Close(ctx context.Context) error {
	if b.CloseFunc == nil {
		if b.Base == nil {
			return nil
		}
		return b.Base.Close(ctx)
	}
	return b.CloseFunc(ctx)
}
