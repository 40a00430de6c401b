// Package fake implements a fake lidar that sweeps an empty room with an obstacle that
// periodically appears straight ahead.
package fake

import (
	"context"
	"math"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/walker/lidar"
	"go.viam.com/walker/logging"
	"go.viam.com/walker/resource"
	"go.viam.com/walker/utils"
)

// Model is the model name of the fake lidar.
const Model = resource.Model("fake")

func init() {
	resource.Register(lidar.API, Model, resource.Registration[lidar.Source, *Config]{
		Constructor: func(ctx context.Context, conf resource.Config, logger logging.Logger) (lidar.Source, error) {
			native, err := resource.NativeConfig[*Config](conf)
			if err != nil {
				return nil, err
			}
			return NewSource(conf.ResourceName(), native, clock.New(), logger), nil
		},
	})
}

const (
	defaultNumRays   = 360
	defaultRateHz    = 10.
	defaultDistanceM = 5.
	defaultFrontRays = 10
)

// Config describes how to configure the fake lidar. Zero values take defaults.
type Config struct {
	NumRays   int     `json:"num_rays"`
	RateHz    float64 `json:"rate_hz"`
	DistanceM float64 `json:"distance_m"`

	// ObstacleDistanceM places an obstacle ahead of the robot when positive. It covers FrontRays
	// rays on each side of straight ahead for ObstacleFor scans out of every ObstacleEvery.
	ObstacleDistanceM float64 `json:"obstacle_distance_m"`
	ObstacleEvery     int     `json:"obstacle_every"`
	ObstacleFor       int     `json:"obstacle_for"`
	FrontRays         int     `json:"front_rays"`

	// Dropout replaces every n-th ray with NaN when positive.
	Dropout int `json:"dropout"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.NumRays < 0 {
		return utils.NewConfigValidationError(path, errors.New("num_rays must be non-negative"))
	}
	if conf.RateHz < 0 || conf.RateHz > 200 {
		return utils.NewConfigValidationError(path, errors.New("rate_hz must be within (0, 200]"))
	}
	if conf.DistanceM < 0 || conf.ObstacleDistanceM < 0 {
		return utils.NewConfigValidationError(path, errors.New("distances must be non-negative"))
	}
	if conf.ObstacleDistanceM > 0 && conf.ObstacleEvery > 0 && conf.ObstacleFor > conf.ObstacleEvery {
		return utils.NewConfigValidationError(path, errors.New("obstacle_for cannot exceed obstacle_every"))
	}
	return nil
}

func (conf *Config) withDefaults() Config {
	out := *conf
	if out.NumRays == 0 {
		out.NumRays = defaultNumRays
	}
	if out.RateHz == 0 {
		out.RateHz = defaultRateHz
	}
	if out.DistanceM == 0 {
		out.DistanceM = defaultDistanceM
	}
	if out.FrontRays == 0 {
		out.FrontRays = defaultFrontRays
	}
	return out
}

// Source is a fake lidar producing synthetic scans at a fixed rate.
type Source struct {
	resource.Named
	resource.TriviallyCloseable

	conf   Config
	clock  clock.Clock
	logger logging.Logger
}

// NewSource returns a fake lidar paced by clk.
func NewSource(name resource.Name, conf *Config, clk clock.Clock, logger logging.Logger) *Source {
	if conf == nil {
		conf = &Config{}
	}
	return &Source{
		Named:  name.AsNamed(),
		conf:   conf.withDefaults(),
		clock:  clk,
		logger: logger,
	}
}

// Stream emits one scan per period until ctx is done. It never exhausts.
func (s *Source) Stream(ctx context.Context, handler lidar.Handler) error {
	ticker := s.clock.Ticker(utils.HzToPeriod(s.conf.RateHz))
	defer ticker.Stop()

	s.logger.CDebugw(ctx, "fake lidar streaming", "rays", s.conf.NumRays, "rate_hz", s.conf.RateHz)
	var seq uint32
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		handler(ctx, s.ScanAt(seq))
		seq++
	}
}

// ScanAt returns the scan the source emits as its seq-th scan.
func (s *Source) ScanAt(seq uint32) *lidar.Scan {
	scan := lidar.NewUniformScan(s.conf.NumRays, s.conf.DistanceM)
	scan.Seq = seq
	scan.Time = s.clock.Now()
	scan.FrameID = s.Name().Name
	scan.RangeMax = math.Max(s.conf.DistanceM, s.conf.ObstacleDistanceM) * 2

	if s.obstaclePresent(seq) {
		n := scan.Len()
		for i := 0; i < s.conf.FrontRays && i < n; i++ {
			scan.Ranges[i] = s.conf.ObstacleDistanceM
			scan.Ranges[n-1-i] = s.conf.ObstacleDistanceM
		}
	}
	if s.conf.Dropout > 0 {
		for i := 0; i < scan.Len(); i += s.conf.Dropout {
			scan.Ranges[i] = math.NaN()
		}
	}
	return scan
}

func (s *Source) obstaclePresent(seq uint32) bool {
	if s.conf.ObstacleDistanceM <= 0 {
		return false
	}
	if s.conf.ObstacleEvery <= 0 {
		return true
	}
	return int(seq)%s.conf.ObstacleEvery < s.conf.ObstacleFor
}
