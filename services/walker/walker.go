// Package walker implements a reactive obstacle-avoidance behavior. Range scans are reduced to a
// collision verdict by a ScanMonitor and a MotionController turns that verdict into a velocity
// command on every tick: forward while the path is clear, an in-place turn while it is not.
package walker

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/walker/components/base"
	"go.viam.com/walker/lidar"
	"go.viam.com/walker/logging"
	"go.viam.com/walker/resource"
	"go.viam.com/walker/utils"
)

// Option configures optional parts of a Walker.
type Option func(*Walker)

// WithClock makes the walker schedule ticks and staleness checks on clk.
func WithClock(clk clock.Clock) Option {
	return func(w *Walker) {
		w.clock = clk
	}
}

// Stats are counters accumulated since the walker started.
type Stats struct {
	ScansProcessed  uint64
	CommandsSent    uint64
	CommandsSkipped uint64
	Transitions     uint64
}

// Status is a snapshot of what the walker is doing.
type Status struct {
	Mode  Mode
	State CollisionState
}

// Walker owns the configuration, the collision state, the scan source and the base. It runs scan
// ingestion and the command loop as two workers that only share the collision state.
type Walker struct {
	conf   Config
	source lidar.Source
	base   base.Base
	clock  clock.Clock
	logger logging.Logger

	monitor    *ScanMonitor
	controller *MotionController

	lastScan    atomic.Time
	staleWarned atomic.Bool
	sent        atomic.Uint64
	skipped     atomic.Uint64

	workers   utils.StoppableWorkers
	closeOnce sync.Once
	closeErr  error
}

// New looks up the configured lidar and base in deps and starts walking.
func New(
	ctx context.Context,
	deps resource.Dependencies,
	conf *Config,
	logger logging.Logger,
	opts ...Option,
) (*Walker, error) {
	if err := conf.Validate("walker"); err != nil {
		return nil, err
	}
	source, err := resource.FromDependencies[lidar.Source](deps, lidar.Named(conf.Lidar))
	if err != nil {
		return nil, err
	}
	b, err := resource.FromDependencies[base.Base](deps, base.Named(conf.Base))
	if err != nil {
		return nil, err
	}

	w := &Walker{
		conf:   conf.withDefaults(),
		source: source,
		base:   b,
		clock:  clock.New(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.monitor = NewScanMonitor(w.conf.MinDistance, w.conf.FrontWindowRays, logger.Sublogger("scan"))
	w.controller = NewMotionController(w.monitor, w.conf.LinearVelocity, w.conf.AngularVelocity)
	w.lastScan.Store(w.clock.Now())

	w.logger.Infow("walker starting",
		"lidar", conf.Lidar,
		"base", conf.Base,
		"min_distance", w.conf.MinDistance,
		"tick_frequency_hz", w.conf.TickFrequencyHz,
		"front_window_rays", w.conf.FrontWindowRays,
	)
	w.workers = utils.NewBackgroundStoppableWorkers(w.scanLoop, w.commandLoop)
	return w, nil
}

func (w *Walker) onScan(ctx context.Context, scan *lidar.Scan) {
	w.lastScan.Store(w.clock.Now())
	w.staleWarned.Store(false)
	w.monitor.OnScan(ctx, scan)
}

func (w *Walker) scanLoop(ctx context.Context) {
	err := w.source.Stream(ctx, w.onScan)
	switch {
	case err == nil:
	case errors.Is(err, lidar.ErrSourceExhausted):
		w.logger.Warnw("scan source exhausted, holding last collision state", "lidar", w.source.Name().String())
	default:
		w.logger.Errorw("scan source failed, holding last collision state", "lidar", w.source.Name().String(), "error", err)
	}
}

func (w *Walker) commandLoop(ctx context.Context) {
	ticker := w.clock.Ticker(w.conf.tickPeriod())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		w.tick(ctx)
	}
}

// tick sends exactly one command to the base. A failed command is dropped, not retried.
func (w *Walker) tick(ctx context.Context) {
	w.checkStale()
	cmd := w.controller.Tick()
	linear, angular := cmd.Vectors()
	if err := w.base.SetVelocity(ctx, linear, angular, nil); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.skipped.Inc()
		w.logger.Warnw("skipping tick, base rejected command",
			"linear", cmd.Linear, "angular", cmd.Angular, "error", err)
		return
	}
	w.sent.Inc()
}

// checkStale warns once per silent period. It never changes the command.
func (w *Walker) checkStale() {
	if w.conf.StaleScanTimeout <= 0 {
		return
	}
	since := w.clock.Since(w.lastScan.Load())
	if since <= w.conf.StaleScanTimeout || !w.staleWarned.CompareAndSwap(false, true) {
		return
	}
	state := w.monitor.State()
	w.logger.Warnw("no scan received recently, acting on last collision state",
		"since", since.Round(time.Millisecond).String(), "mode", state.Mode())
}

// State returns the current collision state and mode.
func (w *Walker) State() Status {
	state := w.monitor.State()
	return Status{Mode: state.Mode(), State: state}
}

// Stats returns the walker's counters.
func (w *Walker) Stats() Stats {
	return Stats{
		ScansProcessed:  w.monitor.ScansProcessed(),
		CommandsSent:    w.sent.Load(),
		CommandsSkipped: w.skipped.Load(),
		Transitions:     w.monitor.Transitions(),
	}
}

// Close stops both workers and then stops the base. It is safe to call more than once.
func (w *Walker) Close(ctx context.Context) error {
	w.closeOnce.Do(func() {
		w.workers.Stop()
		if err := w.base.Stop(ctx, nil); err != nil {
			w.closeErr = errors.Wrapf(err, "failed to stop base %q", w.base.Name().String())
		}
		stats := w.Stats()
		w.logger.Infow("walker stopped",
			"scans", stats.ScansProcessed,
			"commands_sent", stats.CommandsSent,
			"commands_skipped", stats.CommandsSkipped,
		)
	})
	return w.closeErr
}
