package terrain

// HeightAt returns the surface elevation at a world position, bilinearly
// interpolated between the four surrounding grid cells. World X runs along
// rows and world Z along columns, as in BuildMesh. Positions outside the
// grid are clamped to its edge. An invalid grid or spacing yields 0.
func (g HeightGrid) HeightAt(worldX, worldZ, spacing float32) float32 {
	if g.Validate() != nil || !(spacing > 0) {
		return 0
	}
	n := len(g)

	// Convert world coordinates to cell coordinates
	fr := clampf(worldX/spacing, 0, float32(n-1))
	fc := clampf(worldZ/spacing, 0, float32(n-1))

	row := min(int(fr), n-2)
	col := min(int(fc), n-2)

	// Fractional position within the cell (0-1)
	tr := fr - float32(row)
	tc := fc - float32(col)

	h00 := float32(g[row][col])
	h01 := float32(g[row][col+1])
	h10 := float32(g[row+1][col])
	h11 := float32(g[row+1][col+1])

	near := h00*(1-tc) + h01*tc
	far := h10*(1-tc) + h11*tc
	return near*(1-tr) + far*tr
}

// clampf maps NaN to lo.
func clampf(v, lo, hi float32) float32 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
