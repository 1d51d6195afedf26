package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxGridSize is the largest N whose N*N vertices are addressable by uint32 indices.
const MaxGridSize = 1 << 16

// Validate checks that the grid is square, at least 2×2 and at most
// MaxGridSize on a side.
func (g HeightGrid) Validate() error {
	n := len(g)
	if n < 2 {
		return &ConfigError{Reason: fmt.Sprintf("need at least 2 rows, got %d", n), Err: ErrInvalidGrid}
	}
	if n > MaxGridSize {
		return &ConfigError{Reason: fmt.Sprintf("%d rows overflow uint32 indices, max %d", n, MaxGridSize), Err: ErrInvalidGrid}
	}
	for row, cols := range g {
		if len(cols) != n {
			return &ConfigError{
				Reason: fmt.Sprintf("row %d has %d columns, want %d", row, len(cols), n),
				Err:    ErrInvalidGrid,
			}
		}
	}
	return nil
}

// BuildMesh creates a terrain mesh from a height grid.
// Grid rows map to world X, columns to world Z and elevation to world Y;
// spacing is the world distance between adjacent rows and columns.
// The whole mesh is rebuilt on every call.
func BuildMesh(grid HeightGrid, spacing float32) (*Mesh, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if !(spacing > 0) {
		return nil, &ConfigError{Reason: fmt.Sprintf("spacing must be positive, got %v", spacing), Err: ErrInvalidSpacing}
	}

	n := grid.Size()
	vertices := make([]mgl32.Vec3, 0, n*n)
	indices := make([]uint32, 0, 6*(n-1)*(n-1))

	bounds := Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}

	for row := range n {
		for col := range n {
			p := mgl32.Vec3{
				float32(row) * spacing,
				float32(grid[row][col]),
				float32(col) * spacing,
			}
			updateBounds(&bounds, p)
			vertices = append(vertices, p)
		}
	}

	// Fixed diagonal from top-left to bottom-right; winding must not change
	// or back-face culling flips.
	for row := range n - 1 {
		for col := range n - 1 {
			topLeft := uint32(row*n + col)
			topRight := topLeft + 1
			bottomLeft := uint32((row+1)*n + col)
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, bottomRight,
				topLeft, bottomRight, topRight,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}, nil
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
