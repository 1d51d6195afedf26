// Package terrain builds renderable triangle meshes from height-field grids.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// HeightGrid is a square grid of integer elevation samples indexed [row][col].
type HeightGrid [][]int32

// NewHeightGrid returns an all-zero n×n grid.
func NewHeightGrid(n int) HeightGrid {
	cells := make([]int32, n*n)
	grid := make(HeightGrid, n)
	for row := range n {
		grid[row] = cells[row*n : (row+1)*n : (row+1)*n]
	}
	return grid
}

// Size returns the number of rows in the grid.
func (g HeightGrid) Size() int {
	return len(g)
}

// Mesh holds the terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []mgl32.Vec3 // One position per grid cell, row-major
	Indices  []uint32     // Six per interior quad
	Bounds   Bounds
}

// TriangleCount returns the number of triangles described by Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}
