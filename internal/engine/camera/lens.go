package camera

import "github.com/go-gl/mathgl/mgl32"

// Lens holds perspective projection settings.
type Lens struct {
	FOV  float32 // Vertical field of view in degrees
	Near float32
	Far  float32
}

// DefaultLens returns a 45° lens with a 0.1–100 depth range.
func DefaultLens() Lens {
	return Lens{FOV: 45, Near: 0.1, Far: 100}
}

// Projection returns the projection matrix for the given width/height ratio.
// A non-positive aspect (minimized window) falls back to 1.
func (l Lens) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(l.FOV), aspect, l.Near, l.Far)
}
