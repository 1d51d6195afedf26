package debug

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/excavator/internal/engine/terrain"
)

func TestBoundsLines(t *testing.T) {
	b := terrain.Bounds{Min: mgl32.Vec3{0, -1, 0}, Max: mgl32.Vec3{4, 2, 4}}
	lines := BoundsLines(b, 0)

	if len(lines) != BoundsLineVertexCount {
		t.Fatalf("expected %d vertices, got %d", BoundsLineVertexCount, len(lines))
	}

	for i := 0; i < len(lines); i += 2 {
		a, c := lines[i], lines[i+1]
		for _, v := range []mgl32.Vec3{a, c} {
			for axis := 0; axis < 3; axis++ {
				if v[axis] != b.Min[axis] && v[axis] != b.Max[axis] {
					t.Fatalf("vertex %v is not a box corner", v)
				}
			}
		}

		// Every edge is axis-aligned: its endpoints differ in exactly one axis
		diff := 0
		for axis := 0; axis < 3; axis++ {
			if a[axis] != c[axis] {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("edge %d (%v -> %v) is not an axis-aligned box edge", i/2, a, c)
		}
	}
}

func TestBoundsLinesPadding(t *testing.T) {
	b := terrain.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 0, 1}}
	lines := BoundsLines(b, 0.5)

	lo, hi := lines[0], lines[0]
	for _, v := range lines {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], v[axis])
			hi[axis] = max(hi[axis], v[axis])
		}
	}

	if want := (mgl32.Vec3{-0.5, -0.5, -0.5}); lo != want {
		t.Errorf("min: got %v, want %v", lo, want)
	}
	if want := (mgl32.Vec3{1.5, 0.5, 1.5}); hi != want {
		t.Errorf("max: got %v, want %v", hi, want)
	}
}
