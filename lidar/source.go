package lidar

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/walker/resource"
)

// API is the resource API implemented by scan sources.
const API = resource.API("lidar")

// Named is a helper for getting the named lidar's typed resource name.
func Named(name string) resource.Name {
	return resource.NewName(API, name)
}

// A Handler consumes scans. It must not retain the scan after returning.
type Handler func(ctx context.Context, scan *Scan)

// A Source delivers range scans.
type Source interface {
	resource.Resource

	// Stream calls handler for every scan, sequentially and in arrival order, until ctx is done or
	// the source is exhausted. It returns nil when ctx is done and ErrSourceExhausted when the
	// source has no more scans.
	Stream(ctx context.Context, handler Handler) error
}

// ErrSourceExhausted is returned by Stream when a finite source runs out of scans.
var ErrSourceExhausted = errors.New("scan source exhausted")

// ChanSource adapts a channel of scans into a Source. Closing the channel exhausts the source.
type ChanSource struct {
	resource.Named
	resource.TriviallyCloseable
	scans <-chan *Scan
}

// NewChanSource returns a Source reading from scans.
func NewChanSource(name resource.Name, scans <-chan *Scan) *ChanSource {
	return &ChanSource{Named: name.AsNamed(), scans: scans}
}

// Stream delivers scans from the channel until it is closed or ctx is done.
func (cs *ChanSource) Stream(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case scan, ok := <-cs.scans:
			if !ok {
				return ErrSourceExhausted
			}
			handler(ctx, scan)
		}
	}
}
