package inject

import (
	"context"

	"go.viam.com/walker/lidar"
	"go.viam.com/walker/resource"
)

// Lidar is an injected scan source.
type Lidar struct {
	lidar.Source
	name       resource.Name
	StreamFunc func(ctx context.Context, handler lidar.Handler) error
	CloseFunc  func(ctx context.Context) error
}

// NewLidar returns a new injected scan source.
func NewLidar(name string) *Lidar {
	return &Lidar{name: lidar.Named(name)}
}

// Name returns the name of the resource.
func (l *Lidar) Name() resource.Name {
	return l.name
}

// Stream calls the injected Stream or the real version.
func (l *Lidar) Stream(ctx context.Context, handler lidar.Handler) error {
	if l.StreamFunc == nil {
		return l.Source.Stream(ctx, handler)
	}
	return l.StreamFunc(ctx, handler)
}

// Close calls the injected Close or the real version.
func (l *Lidar) Close(ctx context.Context) error {
	if l.CloseFunc == nil {
		if l.Source == nil {
			return nil
		}
		return l.Source.Close(ctx)
	}
	return l.CloseFunc(ctx)
}
