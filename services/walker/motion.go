package walker

import (
	"github.com/golang/geo/r3"

	"go.viam.com/walker/components/base"
)

// Command is a planar velocity command: forward speed in m/s and yaw rate in rad/s.
type Command struct {
	Linear  float64
	Angular float64
}

// Vectors maps the command onto the base's linear and angular velocity vectors.
func (c Command) Vectors() (linear, angular r3.Vector) {
	return base.Planar(c.Linear, c.Angular)
}

// MotionController picks a velocity command from the current collision state.
type MotionController struct {
	state           StateReader
	linearVelocity  float64
	angularVelocity float64
}

// NewMotionController returns a controller that drives forward at linearVelocity while the path
// is clear and spins in place at angularVelocity while an obstacle is close.
func NewMotionController(state StateReader, linearVelocity, angularVelocity float64) *MotionController {
	return &MotionController{
		state:           state,
		linearVelocity:  linearVelocity,
		angularVelocity: angularVelocity,
	}
}

// Tick reads one state snapshot and returns the command for it. The turn direction is always the
// sign of the configured angular velocity, regardless of where the obstacle is.
func (mc *MotionController) Tick() Command {
	return mc.commandFor(mc.state.State())
}

func (mc *MotionController) commandFor(state CollisionState) Command {
	if state.IsCollision {
		return Command{Angular: mc.angularVelocity}
	}
	return Command{Linear: mc.linearVelocity}
}
