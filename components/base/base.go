// Package base defines the mobile base the walker drives.
package base

import (
	"context"

	"github.com/golang/geo/r3"

	"go.viam.com/walker/resource"
)

// API is the resource API implemented by bases.
const API = resource.API("base")

// Named is a helper for getting the named base's typed resource name.
func Named(name string) resource.Name {
	return resource.NewName(API, name)
}

// A Base represents a physical base of a robot that accepts velocity commands.
type Base interface {
	resource.Resource

	// SetVelocity sets the velocity of the base. linear is in m/s and angular in rad/s.
	// A planar base only honors linear.X and angular.Z.
	SetVelocity(ctx context.Context, linear, angular r3.Vector, extra map[string]interface{}) error

	// Stop stops the base. It is assumed the base stops immediately.
	Stop(ctx context.Context, extra map[string]interface{}) error
}

// Planar returns the linear and angular vectors of a planar velocity command: forward speed on
// x and yaw rate about z.
func Planar(linearX, angularZ float64) (r3.Vector, r3.Vector) {
	return r3.Vector{X: linearX}, r3.Vector{Z: angularZ}
}
