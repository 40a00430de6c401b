package config

import (
	"context"

	"go.uber.org/multierr"

	"go.viam.com/walker/logging"
	"go.viam.com/walker/resource"
)

// BuildComponents constructs every configured component, in order. If any fails, the ones
// already built are closed.
func BuildComponents(ctx context.Context, cfg *Config, logger logging.Logger) (resource.Dependencies, error) {
	deps := resource.Dependencies{}
	for _, conf := range cfg.Components {
		res, err := resource.Build[resource.Resource](ctx, conf, logger)
		if err != nil {
			return nil, multierr.Combine(err, CloseComponents(ctx, deps))
		}
		deps[res.Name()] = res
	}
	return deps, nil
}

// CloseComponents closes every component and combines their errors.
func CloseComponents(ctx context.Context, deps resource.Dependencies) error {
	var err error
	for _, res := range deps {
		err = multierr.Combine(err, res.Close(ctx))
	}
	return err
}
