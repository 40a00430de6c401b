// Package config reads the walker's robot configuration.
package config

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/walker/components/base"
	"go.viam.com/walker/lidar"
	"go.viam.com/walker/resource"
	"go.viam.com/walker/services/walker"
	"go.viam.com/walker/utils"
)

// A Config describes the configuration of a robot running the walker.
type Config struct {
	LogFilePath string             `json:"log_file_path,omitempty"`
	Debug       bool               `json:"debug,omitempty"`
	Components  []resource.Config  `json:"components,omitempty"`
	Walker      utils.AttributeMap `json:"walker"`

	ConfigFilePath string `json:"-"`

	// WalkerConfig is the decoded walker section. It is set by Ensure.
	WalkerConfig *walker.Config `json:"-"`
}

// Ensure ensures all parts of the config are valid and decodes the walker section.
func (c *Config) Ensure() error {
	seen := map[resource.Name]bool{}
	for idx := range c.Components {
		path := fmt.Sprintf("%s.%d", "components", idx)
		if err := c.Components[idx].Validate(path); err != nil {
			return err
		}
		name := c.Components[idx].ResourceName()
		if seen[name] {
			return utils.NewConfigValidationError(path, errors.Errorf("duplicate component %q", name))
		}
		seen[name] = true
	}

	if c.Walker == nil {
		return utils.NewConfigValidationFieldRequiredError("", "walker")
	}
	walkerConf, err := resource.TransformAttributeMap[*walker.Config](c.Walker)
	if err != nil {
		return utils.NewConfigValidationError("walker", err)
	}
	if err := walkerConf.Validate("walker"); err != nil {
		return err
	}
	if !seen[lidar.Named(walkerConf.Lidar)] {
		return utils.NewConfigValidationError("walker", errors.Errorf("no lidar component named %q", walkerConf.Lidar))
	}
	if !seen[base.Named(walkerConf.Base)] {
		return utils.NewConfigValidationError("walker", errors.Errorf("no base component named %q", walkerConf.Base))
	}
	c.WalkerConfig = walkerConf
	return nil
}

// FindComponent finds a particular component by name.
func (c Config) FindComponent(name string) *resource.Config {
	for _, cmp := range c.Components {
		if cmp.Name == name {
			return &cmp
		}
	}
	return nil
}
