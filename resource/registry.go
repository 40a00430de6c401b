package resource

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/walker/logging"
	"go.viam.com/walker/utils"
)

type (
	// A Create creates a resource from a given config.
	Create[ResourceT Resource] func(
		ctx context.Context,
		conf Config,
		logger logging.Logger,
	) (ResourceT, error)

	// An AttributeMapConverter converts an attribute map into a native config type for a resource.
	AttributeMapConverter[ConfigT ConfigValidator] func(attributes utils.AttributeMap) (ConfigT, error)
)

// A Registration stores construction info for a model. A constructor is mandatory.
// When no AttributeMapConverter is given the attributes are decoded into ConfigT with
// TransformAttributeMap.
type Registration[ResourceT Resource, ConfigT ConfigValidator] struct {
	Constructor           Create[ResourceT]
	AttributeMapConverter AttributeMapConverter[ConfigT]
}

type registration struct {
	constructor func(ctx context.Context, conf Config, logger logging.Logger) (Resource, error)
	convert     func(attributes utils.AttributeMap) (ConfigValidator, error)
}

// APIModel is the tuple that identifies a model implementing an API.
type APIModel struct {
	API   API
	Model Model
}

var (
	registryMu sync.RWMutex
	registry   = map[APIModel]registration{}
)

// Register registers a model for an API. It panics on duplicate or incomplete registrations
// since it is expected to be called from init functions.
func Register[ResourceT Resource, ConfigT ConfigValidator](
	api API,
	model Model,
	reg Registration[ResourceT, ConfigT],
) {
	if reg.Constructor == nil {
		panic(errors.Errorf("cannot register a nil constructor for %s:%s", api, model))
	}
	registryMu.Lock()
	defer registryMu.Unlock()

	key := APIModel{api, model}
	if _, ok := registry[key]; ok {
		panic(errors.Errorf("trying to register two models with the same api and model: %s:%s", api, model))
	}

	converter := reg.AttributeMapConverter
	if converter == nil {
		converter = func(attributes utils.AttributeMap) (ConfigT, error) {
			var zero ConfigT
			if _, ok := any(zero).(NoNativeConfig); ok {
				return zero, nil
			}
			return TransformAttributeMap[ConfigT](attributes)
		}
	}
	registry[key] = registration{
		constructor: func(ctx context.Context, conf Config, logger logging.Logger) (Resource, error) {
			return reg.Constructor(ctx, conf, logger)
		},
		convert: func(attributes utils.AttributeMap) (ConfigValidator, error) {
			return converter(attributes)
		},
	}
}

// Deregister removes a previously registered model. It is meant for tests.
func Deregister(api API, model Model) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, APIModel{api, model})
}

// RegisteredModels returns the models registered for an API.
func RegisteredModels(api API) []Model {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var models []Model
	for key := range registry {
		if key.API == api {
			models = append(models, key.Model)
		}
	}
	return models
}

func lookup(api API, model Model) (registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[APIModel{api, model}]
	return reg, ok
}

// Build validates the config and constructs the resource it describes as a ResourceT.
func Build[ResourceT Resource](ctx context.Context, conf Config, logger logging.Logger) (ResourceT, error) {
	var zero ResourceT
	if conf.ConvertedAttributes == nil {
		if err := conf.Validate(conf.ResourceName().String()); err != nil {
			return zero, err
		}
	}
	reg, ok := lookup(conf.API, conf.Model)
	if !ok {
		return zero, errors.Errorf("unknown model %q for api %q", conf.Model, conf.API)
	}
	res, err := reg.constructor(ctx, conf, logger.Sublogger(conf.ResourceName().String()))
	if err != nil {
		return zero, errors.Wrapf(err, "cannot build %s", conf.ResourceName())
	}
	typed, err := utils.AssertType[ResourceT](res)
	if err != nil {
		return zero, utils.NewConfigValidationError(conf.ResourceName().String(), err)
	}
	return typed, nil
}
