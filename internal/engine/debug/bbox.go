// Package debug provides debug visualization and capture utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/excavator/internal/engine/terrain"
)

// BoundsLineVertexCount is the number of vertices of a bounds wireframe (12 edges × 2).
const BoundsLineVertexCount = 24

// DefaultBoundsPadding keeps the box from z-fighting with a flat mesh.
const DefaultBoundsPadding = 0.05

// BoundsLines returns line-list vertices outlining b, grown by padding on
// every side. Draw them with GL_LINES.
func BoundsLines(b terrain.Bounds, padding float32) []mgl32.Vec3 {
	pad := mgl32.Vec3{padding, padding, padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)

	corner := func(x, y, z bool) mgl32.Vec3 {
		c := lo
		if x {
			c[0] = hi[0]
		}
		if y {
			c[1] = hi[1]
		}
		if z {
			c[2] = hi[2]
		}
		return c
	}

	lines := make([]mgl32.Vec3, 0, BoundsLineVertexCount)
	for _, y := range []bool{false, true} {
		// Bottom and top faces
		lines = append(lines,
			corner(false, y, false), corner(true, y, false),
			corner(true, y, false), corner(true, y, true),
			corner(true, y, true), corner(false, y, true),
			corner(false, y, true), corner(false, y, false),
		)
	}
	// Vertical edges
	for _, xz := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		lines = append(lines, corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]))
	}
	return lines
}
