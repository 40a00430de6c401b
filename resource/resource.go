// Package resource contains the naming, configuration and registration of the walker's
// components (scan sources and bases).
package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type (
	// API identifies the kind of a resource, e.g. "lidar" or "base".
	API string

	// Model identifies a specific implementation of an API, e.g. "fake" or "rosbag".
	Model string
)

// String returns the API as a string.
func (a API) String() string {
	return string(a)
}

// String returns the model as a string.
func (m Model) String() string {
	return string(m)
}

// Name represents a named component of a robot.
type Name struct {
	API  API
	Name string
}

// NewName creates a new Name.
func NewName(api API, name string) Name {
	return Name{API: api, Name: name}
}

// NewFromString creates a new Name from a string of the form "<api>/<name>".
func NewFromString(resourceName string) (Name, error) {
	api, name, found := strings.Cut(resourceName, "/")
	if !found || api == "" || name == "" {
		return Name{}, errors.Errorf("string %q is not a valid resource name", resourceName)
	}
	return NewName(API(api), name), nil
}

// String returns "<api>/<name>".
func (n Name) String() string {
	return fmt.Sprintf("%s/%s", n.API, n.Name)
}

// AsNamed is a helper to let this name return itself for embedding in a resource.
func (n Name) AsNamed() Named {
	return selfNamed{n}
}

// A Resource is the fundamental building block of the walker's hardware: a scan source or a base.
type Resource interface {
	Name() Name
	Close(ctx context.Context) error
}

// Named is to be embedded by any resource that just needs to return a name.
type Named interface {
	Name() Name
}

type selfNamed struct {
	name Name
}

func (n selfNamed) Name() Name {
	return n.name
}

// TriviallyCloseable is to be embedded by any resource that does not care about handling Closes.
type TriviallyCloseable struct{}

// Close always returns no error.
func (t TriviallyCloseable) Close(ctx context.Context) error {
	return nil
}

// DependencyNotFoundError is used when a resource is not found in a dependencies.
func DependencyNotFoundError(name Name) error {
	return errors.Errorf("Resource missing from dependencies. Resource: %v", name)
}

// Dependencies are a set of resources that a resource requires for reconfiguration.
type Dependencies map[Name]Resource

// FromDependencies returns a named resource of the given type from the dependencies.
func FromDependencies[T Resource](deps Dependencies, name Name) (T, error) {
	var zero T
	res, ok := deps[name]
	if !ok {
		return zero, DependencyNotFoundError(name)
	}
	typed, ok := res.(T)
	if !ok {
		return zero, errors.Errorf("resource %q has type %T, not %T", name, res, zero)
	}
	return typed, nil
}
