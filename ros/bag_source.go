package ros

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/walker/lidar"
	"go.viam.com/walker/logging"
	"go.viam.com/walker/resource"
	"go.viam.com/walker/utils"
)

// Model is the model name of the rosbag replay lidar.
const Model = resource.Model("rosbag")

const (
	defaultTopic  = "/scan"
	defaultRateHz = 10.
)

func init() {
	resource.Register(lidar.API, Model, resource.Registration[lidar.Source, *Config]{
		Constructor: func(ctx context.Context, conf resource.Config, logger logging.Logger) (lidar.Source, error) {
			native, err := resource.NativeConfig[*Config](conf)
			if err != nil {
				return nil, err
			}
			source, err := NewBagSource(conf.ResourceName(), native, clock.New(), logger)
			if err != nil {
				return nil, err
			}
			return source, nil
		},
	})
}

// Config describes how to configure a rosbag replay lidar.
type Config struct {
	Path   string  `json:"path"`
	Topic  string  `json:"topic"`
	RateHz float64 `json:"rate_hz"`
	// Loop restarts the bag from the beginning once it is exhausted.
	Loop bool `json:"loop"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Path == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "path")
	}
	if conf.RateHz < 0 || conf.RateHz > 200 {
		return utils.NewConfigValidationError(path, errors.New("rate_hz must be within (0, 200]"))
	}
	return nil
}

// BagSource replays recorded LaserScan messages at a fixed rate.
type BagSource struct {
	resource.Named
	resource.TriviallyCloseable

	scans  []*lidar.Scan
	rateHz float64
	loop   bool
	clock  clock.Clock
	logger logging.Logger
}

// NewBagSource reads every scan on the configured topic up front.
func NewBagSource(name resource.Name, conf *Config, clk clock.Clock, logger logging.Logger) (*BagSource, error) {
	topic := conf.Topic
	if topic == "" {
		topic = defaultTopic
	}
	rb, err := ReadBag(conf.Path)
	if err != nil {
		return nil, err
	}
	scans, err := LaserScansForTopic(rb, topic)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load scans from %q", conf.Path)
	}
	logger.Infow("loaded rosbag", "path", conf.Path, "topic", topic, "scans", len(scans))
	return newBagSource(name, scans, conf, clk, logger), nil
}

func newBagSource(name resource.Name, scans []*lidar.Scan, conf *Config, clk clock.Clock, logger logging.Logger) *BagSource {
	rate := conf.RateHz
	if rate == 0 {
		rate = defaultRateHz
	}
	for _, scan := range scans {
		if err := scan.Validate(); err != nil {
			logger.Warnw("scan header disagrees with its ranges", "seq", scan.Seq, "error", err)
		}
	}
	return &BagSource{
		Named:  name.AsNamed(),
		scans:  scans,
		rateHz: rate,
		loop:   conf.Loop,
		clock:  clk,
		logger: logger,
	}
}

// Stream replays the scans, one per period. Without looping it returns lidar.ErrSourceExhausted
// after the last scan.
func (bs *BagSource) Stream(ctx context.Context, handler lidar.Handler) error {
	if len(bs.scans) == 0 {
		return lidar.ErrSourceExhausted
	}
	ticker := bs.clock.Ticker(utils.HzToPeriod(bs.rateHz))
	defer ticker.Stop()

	for i := 0; ; i++ {
		if i == len(bs.scans) {
			if !bs.loop {
				return lidar.ErrSourceExhausted
			}
			bs.logger.CDebugw(ctx, "rosbag replay restarting", "scans", len(bs.scans))
			i = 0
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		handler(ctx, bs.scans[i])
	}
}
