// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default start state of a fly camera.
var (
	DefaultPosition = mgl32.Vec3{0, 0, 3}
	DefaultYaw      = float32(math.Pi / 2) // 90°, looking down +Z
	DefaultPitch    = float32(0)
)

// WorldUp is the fixed up direction. It is never re-orthogonalized against
// the front vector, so there is no roll correction.
var WorldUp = mgl32.Vec3{0, 1, 0}

// FlyCamera is a free-flying first-person camera.
//
// Moves are fixed per-call displacements of Speed world units. They are not
// scaled by frame time, so movement rate follows the frame rate.
type FlyCamera struct {
	Position mgl32.Vec3
	Speed    float32

	// PitchLimit clamps pitch to [-PitchLimit, PitchLimit] radians.
	// Zero leaves pitch unbounded; past ±90° the view flips.
	PitchLimit float32

	yaw   float32 // Radians
	pitch float32 // Radians
	front mgl32.Vec3
}

// NewFlyCamera creates a fly camera at the default position and orientation.
func NewFlyCamera(speed float32) *FlyCamera {
	return NewFlyCameraAt(DefaultPosition, DefaultYaw, DefaultPitch, speed)
}

// NewFlyCameraAt creates a fly camera with the given position and orientation.
func NewFlyCameraAt(position mgl32.Vec3, yaw, pitch, speed float32) *FlyCamera {
	c := &FlyCamera{
		Position: position,
		Speed:    speed,
	}
	c.SetOrientation(yaw, pitch)
	return c
}

// Yaw returns the horizontal angle in radians.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the vertical angle in radians.
func (c *FlyCamera) Pitch() float32 { return c.pitch }

// Front returns the unit look direction.
func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }

// Up returns the fixed up direction.
func (c *FlyCamera) Up() mgl32.Vec3 { return WorldUp }

// Right returns the unit right direction, normalize(front × up).
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.front.Cross(WorldUp).Normalize()
}

// SetOrientation sets yaw and pitch (radians) and recomputes the front vector.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = c.clampPitch(pitch)
	c.updateFront()
}

// Look rotates the camera by the given yaw and pitch deltas in radians.
func (c *FlyCamera) Look(dYaw, dPitch float32) {
	c.SetOrientation(c.yaw+dYaw, c.pitch+dPitch)
}

func (c *FlyCamera) clampPitch(pitch float32) float32 {
	if c.PitchLimit <= 0 {
		return pitch
	}
	return mgl32.Clamp(pitch, -c.PitchLimit, c.PitchLimit)
}

func (c *FlyCamera) updateFront() {
	yaw, pitch := float64(c.yaw), float64(c.pitch)
	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// MoveForward moves the camera along its look direction.
func (c *FlyCamera) MoveForward() {
	c.Position = c.Position.Add(c.front.Mul(c.Speed))
}

// MoveBackward moves the camera against its look direction.
func (c *FlyCamera) MoveBackward() {
	c.Position = c.Position.Sub(c.front.Mul(c.Speed))
}

// MoveLeft strafes left.
func (c *FlyCamera) MoveLeft() {
	c.Position = c.Position.Sub(c.Right().Mul(c.Speed))
}

// MoveRight strafes right.
func (c *FlyCamera) MoveRight() {
	c.Position = c.Position.Add(c.Right().Mul(c.Speed))
}

// MoveUp moves the camera along world up.
func (c *FlyCamera) MoveUp() {
	c.Position = c.Position.Add(WorldUp.Mul(c.Speed))
}

// MoveDown moves the camera against world up.
func (c *FlyCamera) MoveDown() {
	c.Position = c.Position.Sub(WorldUp.Mul(c.Speed))
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), WorldUp)
}
