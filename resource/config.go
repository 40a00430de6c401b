package resource

import (
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/walker/utils"
)

// A ConfigValidator validates a model's native configuration.
type ConfigValidator interface {
	Validate(path string) error
}

// A Config describes the configuration of a resource.
type Config struct {
	Name       string             `json:"name"`
	API        API                `json:"api"`
	Model      Model              `json:"model"`
	Attributes utils.AttributeMap `json:"attributes"`

	ConvertedAttributes ConfigValidator `json:"-"`
}

// ResourceName returns the name of the resource this config describes.
func (conf *Config) ResourceName() Name {
	return NewName(conf.API, conf.Name)
}

// Validate checks the common fields, converts the attributes to the model's native config and
// validates that. It must be called before the config is built.
func (conf *Config) Validate(path string) error {
	if conf.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if err := utils.ValidateName(conf.Name); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if conf.API == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "api")
	}
	if conf.Model == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "model")
	}
	reg, ok := lookup(conf.API, conf.Model)
	if !ok {
		return utils.NewConfigValidationError(path, errors.Errorf("unknown model %q for api %q", conf.Model, conf.API))
	}
	if reg.convert == nil {
		return nil
	}
	converted, err := reg.convert(conf.Attributes)
	if err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if err := converted.Validate(path); err != nil {
		return err
	}
	conf.ConvertedAttributes = converted
	return nil
}

// NativeConfig returns the native config from the given config via its
// converted attributes.
func NativeConfig[T any](conf Config) (T, error) {
	return utils.AssertType[T](conf.ConvertedAttributes)
}

// NoNativeConfig is used by models that take no attributes.
type NoNativeConfig struct{}

// Validate always succeeds.
func (NoNativeConfig) Validate(path string) error {
	return nil
}

// TransformAttributeMap uses an attribute map to transform attributes to the prescribed format.
// Attributes the target type does not know about are rejected.
func TransformAttributeMap[T any](attributes utils.AttributeMap) (T, error) {
	var out T

	var forResult interface{}

	toT := reflect.TypeOf(out)
	if toT != nil && toT.Kind() == reflect.Ptr {
		// needs to be allocated then
		var ok bool
		out, ok = reflect.New(toT.Elem()).Interface().(T)
		if !ok {
			return out, errors.Errorf("failed to allocate default config type %T", out)
		}
		forResult = out
	} else {
		forResult = &out
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     forResult,
		Metadata:   &md,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return out, err
	}
	if len(md.Unused) != 0 {
		sort.Strings(md.Unused)
		return out, errors.Errorf("unknown attributes %v", md.Unused)
	}
	return out, nil
}
