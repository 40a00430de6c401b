package walker

import (
	"time"

	"github.com/pkg/errors"

	"go.viam.com/walker/utils"
)

const (
	defaultLinearVelocity  = 0.2
	defaultAngularVelocity = 1.0
	defaultMinDistance     = 0.6
	defaultTickFrequencyHz = 10.
	defaultFrontWindowRays = 15

	maxTickFrequencyHz = 200.
)

// Config describes how to configure the walker. It is read once at startup. A zero numeric field,
// whether omitted or written as 0, takes its default; StaleScanTimeout is the exception.
type Config struct {
	Lidar string `json:"lidar"`
	Base  string `json:"base"`

	// LinearVelocity is the forward speed while exploring, in m/s. Zero means 0.2.
	LinearVelocity float64 `json:"linear_velocity"`
	// AngularVelocity is the in-place turn rate while avoiding, in rad/s. Its sign fixes the turn
	// direction: positive turns left (counter-clockwise). Zero means 1.0.
	AngularVelocity float64 `json:"angular_velocity"`
	// MinDistance is the safety threshold in meters. Zero means 0.6.
	MinDistance float64 `json:"min_distance"`
	// TickFrequencyHz is the command rate, at most 200. Zero means 10.
	TickFrequencyHz float64 `json:"tick_frequency_hz"`
	// FrontWindowRays is the number of rays examined at each end of the scan. Zero means 15.
	FrontWindowRays int `json:"front_window_rays"`
	// StaleScanTimeout enables a warning when no scan has arrived for this long. Zero disables it.
	StaleScanTimeout time.Duration `json:"stale_scan_timeout"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Lidar == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "lidar")
	}
	if conf.Base == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "base")
	}
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"linear_velocity", conf.LinearVelocity},
		{"angular_velocity", conf.AngularVelocity},
		{"min_distance", conf.MinDistance},
		{"tick_frequency_hz", conf.TickFrequencyHz},
	} {
		if !utils.IsFinite(field.value) {
			return utils.NewConfigValidationError(path, errors.Errorf("%s must be finite", field.name))
		}
	}
	if conf.LinearVelocity < 0 {
		return utils.NewConfigValidationError(path, errors.New("linear_velocity must be non-negative"))
	}
	if conf.MinDistance < 0 {
		return utils.NewConfigValidationError(path, errors.New("min_distance must be non-negative"))
	}
	if conf.TickFrequencyHz < 0 || conf.TickFrequencyHz > maxTickFrequencyHz {
		return utils.NewConfigValidationError(path,
			errors.Errorf("tick_frequency_hz shouldn't be negative or above %.0fHz", maxTickFrequencyHz))
	}
	if conf.FrontWindowRays < 0 {
		return utils.NewConfigValidationError(path, errors.New("front_window_rays must be non-negative"))
	}
	if conf.StaleScanTimeout < 0 {
		return utils.NewConfigValidationError(path, errors.New("stale_scan_timeout must be non-negative"))
	}
	return nil
}

// withDefaults returns a copy of the config with zero values replaced by defaults.
func (conf Config) withDefaults() Config {
	if conf.LinearVelocity == 0 {
		conf.LinearVelocity = defaultLinearVelocity
	}
	if conf.AngularVelocity == 0 {
		conf.AngularVelocity = defaultAngularVelocity
	}
	if conf.MinDistance == 0 {
		conf.MinDistance = defaultMinDistance
	}
	if conf.TickFrequencyHz == 0 {
		conf.TickFrequencyHz = defaultTickFrequencyHz
	}
	if conf.FrontWindowRays == 0 {
		conf.FrontWindowRays = defaultFrontWindowRays
	}
	return conf
}

// tickPeriod is the command loop period. The config must be validated and defaulted.
func (conf Config) tickPeriod() time.Duration {
	return utils.HzToPeriod(conf.TickFrequencyHz)
}
