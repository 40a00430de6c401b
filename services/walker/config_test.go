package walker

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/walker/resource"
	"go.viam.com/walker/utils"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{Lidar: "lidar1", Base: "base1"}
	test.That(t, valid.Validate("walker"), test.ShouldBeNil)

	for _, tc := range []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing lidar", func(c *Config) { c.Lidar = "" }, `"lidar" is required`},
		{"missing base", func(c *Config) { c.Base = "" }, `"base" is required`},
		{"negative speed", func(c *Config) { c.LinearVelocity = -1 }, "linear_velocity must be non-negative"},
		{"negative threshold", func(c *Config) { c.MinDistance = -0.1 }, "min_distance must be non-negative"},
		{"nan threshold", func(c *Config) { c.MinDistance = math.NaN() }, "min_distance must be finite"},
		{"tick too fast", func(c *Config) { c.TickFrequencyHz = 201 }, "shouldn't be negative or above 200Hz"},
		{"tick negative", func(c *Config) { c.TickFrequencyHz = -1 }, "shouldn't be negative or above 200Hz"},
		{"negative window", func(c *Config) { c.FrontWindowRays = -3 }, "front_window_rays must be non-negative"},
		{"negative timeout", func(c *Config) { c.StaleScanTimeout = -time.Second }, "stale_scan_timeout must be non-negative"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			conf := valid
			tc.mutate(&conf)
			err := conf.Validate("walker")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errMsg)
		})
	}

	t.Run("first non-finite field is reported", func(t *testing.T) {
		conf := valid
		conf.LinearVelocity = math.Inf(1)
		conf.AngularVelocity = math.NaN()
		conf.MinDistance = math.NaN()
		conf.TickFrequencyHz = math.Inf(-1)
		for i := 0; i < 10; i++ {
			err := conf.Validate("walker")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, "linear_velocity must be finite")
		}
	})

	atMax := valid
	atMax.TickFrequencyHz = 200
	test.That(t, atMax.Validate("walker"), test.ShouldBeNil)
}

func TestConfigDefaults(t *testing.T) {
	conf := Config{Lidar: "lidar1", Base: "base1"}.withDefaults()
	test.That(t, conf.LinearVelocity, test.ShouldEqual, 0.2)
	test.That(t, conf.AngularVelocity, test.ShouldEqual, 1.0)
	test.That(t, conf.MinDistance, test.ShouldEqual, 0.6)
	test.That(t, conf.TickFrequencyHz, test.ShouldEqual, 10.0)
	test.That(t, conf.FrontWindowRays, test.ShouldEqual, 15)
	test.That(t, conf.StaleScanTimeout, test.ShouldEqual, time.Duration(0))
	test.That(t, conf.tickPeriod(), test.ShouldEqual, 100*time.Millisecond)

	custom := Config{AngularVelocity: -0.5, TickFrequencyHz: 50}.withDefaults()
	test.That(t, custom.AngularVelocity, test.ShouldEqual, -0.5)
	test.That(t, custom.tickPeriod(), test.ShouldEqual, 20*time.Millisecond)

	fromAttrs, err := resource.TransformAttributeMap[*Config](utils.AttributeMap{
		"lidar": "lidar1", "base": "base1", "min_distance": 0, "angular_velocity": 0,
	})
	test.That(t, err, test.ShouldBeNil)
	explicitZero := fromAttrs.withDefaults()
	test.That(t, explicitZero.MinDistance, test.ShouldEqual, 0.6)
	test.That(t, explicitZero.AngularVelocity, test.ShouldEqual, 1.0)
}

func TestConfigFromAttributes(t *testing.T) {
	conf, err := resource.TransformAttributeMap[*Config](utils.AttributeMap{
		"lidar":              "lidar1",
		"base":               "base1",
		"min_distance":       0.8,
		"front_window_rays":  10,
		"stale_scan_timeout": "2s",
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Lidar, test.ShouldEqual, "lidar1")
	test.That(t, conf.MinDistance, test.ShouldEqual, 0.8)
	test.That(t, conf.FrontWindowRays, test.ShouldEqual, 10)
	test.That(t, conf.StaleScanTimeout, test.ShouldEqual, 2*time.Second)

	_, err = resource.TransformAttributeMap[*Config](utils.AttributeMap{"lidar": "lidar1", "min_distanse": 0.8})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "min_distanse")
}
