package terrain

import (
	"math"
	"testing"
)

func TestHeightAt(t *testing.T) {
	g := NewHeightGrid(3)
	g[0][0], g[0][1], g[0][2] = 0, 4, 8
	g[1][0], g[1][1], g[1][2] = 2, 6, 10
	g[2][0], g[2][1], g[2][2] = 4, 8, 12

	tests := []struct {
		name   string
		x, z   float32
		expect float32
	}{
		{"corner", 0, 0, 0},
		{"grid point", 2, 2, 6},
		{"far corner", 4, 4, 12},
		{"mid column", 0, 1, 2},
		{"mid row", 1, 0, 1},
		{"cell center", 1, 1, 3},
		{"clamped negative", -5, -5, 0},
		{"clamped beyond", 100, 100, 12},
		{"clamped one axis", 2, 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// spacing 2: world 2 is one cell
			got := g.HeightAt(tt.x, tt.z, 2)
			if math.Abs(float64(got-tt.expect)) > 1e-5 {
				t.Errorf("HeightAt(%v, %v): got %v, want %v", tt.x, tt.z, got, tt.expect)
			}
		})
	}
}

func TestHeightAtMatchesMeshVertices(t *testing.T) {
	g := NewHeightGrid(4)
	for row := range g {
		for col := range g[row] {
			g[row][col] = int32(row*7 - col*3)
		}
	}

	mesh, err := BuildMesh(g, 1.5)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	for i, v := range mesh.Vertices {
		if got := g.HeightAt(v.X(), v.Z(), 1.5); math.Abs(float64(got-v.Y())) > 1e-4 {
			t.Errorf("vertex %d: HeightAt %v, vertex Y %v", i, got, v.Y())
		}
	}
}

func TestHeightAtInvalid(t *testing.T) {
	nan := float32(math.NaN())

	if got := NewHeightGrid(1).HeightAt(0, 0, 1); got != 0 {
		t.Errorf("1x1 grid: got %v", got)
	}
	if got := NewHeightGrid(3).HeightAt(0, 0, 0); got != 0 {
		t.Errorf("zero spacing: got %v", got)
	}

	g := NewHeightGrid(2)
	g[0][0] = 5
	if got := g.HeightAt(nan, nan, 1); got != 5 {
		t.Errorf("NaN position should clamp to the origin cell, got %v", got)
	}
}
