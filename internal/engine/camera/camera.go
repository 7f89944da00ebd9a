// Package camera provides the free-flying viewer camera and its key controllers.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed up axis of the scene. The water plane lies in XY.
var WorldUp = mgl32.Vec3{0, 0, 1}

// State is the camera position and view direction. Roll is not tracked.
//
// Direction is a look-at offset, not necessarily a unit vector. It must stay
// non-zero; every controller preserves that.
type State struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
}

// New creates a camera at an absolute world position.
func New(position, direction mgl32.Vec3) State {
	return State{
		Position:  position,
		Direction: direction,
	}
}

// NewNormalized creates a camera whose position is projected onto the unit
// sphere, as the first renderer did. A position is a point rather than a
// direction, so this is kept only for that renderer's behaviour.
func NewNormalized(position, direction mgl32.Vec3) State {
	if position.Len() != 0 {
		position = position.Normalize()
	}
	return New(position, direction)
}

// ViewMatrix returns the world-to-camera transform looking from Position
// towards Position+Direction.
func (s State) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(s.Position, s.Target(), WorldUp)
}

// Target returns the point the camera looks at.
func (s State) Target() mgl32.Vec3 {
	return s.Position.Add(s.Direction)
}
