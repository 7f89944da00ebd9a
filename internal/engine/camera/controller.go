package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/watersim/internal/engine/input"
)

// Camera modes accepted by ControllerForMode.
const (
	ModeNavigate = "navigate"
	ModeAdditive = "additive"
)

// Default step sizes of the navigating controller.
const (
	DefaultPositionSpeed float32 = 0.05
	DefaultRotationSpeed float32 = 0.03 // radians
)

// degenerate is the squared length below which an axis is treated as undefined.
const degenerate = 1e-12

// Controller maps one key press to a camera state transition.
// Keys a controller does not bind leave the state unchanged.
type Controller interface {
	Apply(s State, key input.Key) State
}

// ControllerForMode returns the controller registered under mode.
func ControllerForMode(mode string) (Controller, error) {
	switch mode {
	case "", ModeNavigate:
		return NewNavigator(), nil
	case ModeAdditive:
		return Additive{}, nil
	default:
		return nil, fmt.Errorf("unknown camera mode %q", mode)
	}
}

// Navigator moves along and rotates the view direction.
//
//	W/S    forward/back along Direction
//	D/A    strafe along normalize(Direction x WorldUp)
//	E/Q    along the local up normalize((Direction x WorldUp) x Direction)
//	Up/Down     rotate Direction around normalize(WorldUp x Direction)
//	Left/Right  rotate Direction around WorldUp
type Navigator struct {
	PositionSpeed float32
	RotationSpeed float32
}

// NewNavigator creates a navigating controller with the default speeds.
func NewNavigator() Navigator {
	return Navigator{
		PositionSpeed: DefaultPositionSpeed,
		RotationSpeed: DefaultRotationSpeed,
	}
}

// Apply implements Controller.
func (n Navigator) Apply(s State, key input.Key) State {
	var move mgl32.Vec3
	switch key {
	case input.KeyW:
		move = s.Direction
	case input.KeyS:
		move = s.Direction.Mul(-1)
	case input.KeyD:
		move, _ = right(s.Direction)
	case input.KeyA:
		r, _ := right(s.Direction)
		move = r.Mul(-1)
	case input.KeyE:
		move, _ = localUp(s.Direction)
	case input.KeyQ:
		u, _ := localUp(s.Direction)
		move = u.Mul(-1)
	}
	s.Position = s.Position.Add(move.Mul(n.PositionSpeed))

	switch key {
	case input.KeyUp:
		s.Direction = pitch(s.Direction, n.RotationSpeed)
	case input.KeyDown:
		s.Direction = pitch(s.Direction, -n.RotationSpeed)
	case input.KeyLeft:
		s.Direction = yaw(s.Direction, n.RotationSpeed)
	case input.KeyRight:
		s.Direction = yaw(s.Direction, -n.RotationSpeed)
	}

	return s
}

// right returns the strafe axis. ok is false when dir is parallel to WorldUp,
// in which case the zero vector is returned and strafing does nothing.
func right(dir mgl32.Vec3) (mgl32.Vec3, bool) {
	return safeNormalize(dir.Cross(WorldUp))
}

func localUp(dir mgl32.Vec3) (mgl32.Vec3, bool) {
	return safeNormalize(dir.Cross(WorldUp).Cross(dir))
}

func pitch(dir mgl32.Vec3, angle float32) mgl32.Vec3 {
	axis, ok := safeNormalize(WorldUp.Cross(dir))
	if !ok {
		return dir
	}
	return mgl32.QuatRotate(angle, axis).Rotate(dir)
}

func yaw(dir mgl32.Vec3, angle float32) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, WorldUp).Rotate(dir)
}

func safeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	if v.Dot(v) < degenerate {
		return mgl32.Vec3{}, false
	}
	return v.Normalize(), true
}

// Additive applies raw per-axis deltas with no speed scaling or rotation.
//
//	W/S  position ±X     Up/Down     direction ±Z
//	D/A  position ±Y     Left/Right  direction ±Y
//	E/Q  position ±Z
type Additive struct{}

var additiveTable = map[input.Key]struct{ position, direction mgl32.Vec3 }{
	input.KeyW:     {position: mgl32.Vec3{1, 0, 0}},
	input.KeyS:     {position: mgl32.Vec3{-1, 0, 0}},
	input.KeyD:     {position: mgl32.Vec3{0, 1, 0}},
	input.KeyA:     {position: mgl32.Vec3{0, -1, 0}},
	input.KeyE:     {position: mgl32.Vec3{0, 0, 1}},
	input.KeyQ:     {position: mgl32.Vec3{0, 0, -1}},
	input.KeyUp:    {direction: mgl32.Vec3{0, 0, 1}},
	input.KeyDown:  {direction: mgl32.Vec3{0, 0, -1}},
	input.KeyLeft:  {direction: mgl32.Vec3{0, 1, 0}},
	input.KeyRight: {direction: mgl32.Vec3{0, -1, 0}},
}

// Apply implements Controller. A step that would zero the direction is
// rejected and the state is returned unchanged.
func (Additive) Apply(s State, key input.Key) State {
	delta, ok := additiveTable[key]
	if !ok {
		return s
	}

	dir := s.Direction.Add(delta.direction)
	if dir.Dot(dir) < degenerate {
		return s
	}

	s.Position = s.Position.Add(delta.position)
	s.Direction = dir
	return s
}
