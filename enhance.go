package img2bead

// Gradient enhancement constants. A cell whose mean neighbor contrast
// falls below flatThreshold is left untouched so smooth gradients (skies,
// skin tones) do not pick up ringing; everything else gets the unsharp
// cross kernel.
const (
	flatThreshold  = 15.0
	centerWeight   = 2.2
	neighborWeight = -0.3
)

// enhanceGradients sharpens the boundaries a block-average pass blurred
// away. For each cell it measures the mean L1 distance to the existing
// axis-aligned neighbors; flat cells pass through unchanged, contrasty
// cells get an unsharp cross kernel (center 2.2, neighbors -0.3 each).
// Missing border neighbors are treated as equal to the center, which
// keeps edge and corner cells from darkening relative to the interior.
// Returns a freshly allocated grid of the same shape.
func enhanceGradients(grid [][]RGB) [][]RGB {
	rows := len(grid)
	if rows == 0 {
		return nil
	}
	cols := len(grid[0])

	out := make([][]RGB, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]RGB, cols)
		for c := 0; c < cols; c++ {
			out[r][c] = enhanceCell(grid, r, c, rows, cols)
		}
	}
	return out
}

func enhanceCell(grid [][]RGB, r, c, rows, cols int) RGB {
	center := grid[r][c]

	var neighbors []RGB
	if c > 0 {
		neighbors = append(neighbors, grid[r][c-1])
	}
	if c < cols-1 {
		neighbors = append(neighbors, grid[r][c+1])
	}
	if r > 0 {
		neighbors = append(neighbors, grid[r-1][c])
	}
	if r < rows-1 {
		neighbors = append(neighbors, grid[r+1][c])
	}

	avgDiff := 0.0
	if len(neighbors) > 0 {
		for _, n := range neighbors {
			avgDiff += center.DistanceL1(n)
		}
		avgDiff /= float64(len(neighbors))
	}

	if avgDiff < flatThreshold {
		return center
	}

	missing := 4 - len(neighbors)
	sharpened := RGB{
		R: center.R * (centerWeight + float64(missing)*neighborWeight),
		G: center.G * (centerWeight + float64(missing)*neighborWeight),
		B: center.B * (centerWeight + float64(missing)*neighborWeight),
	}
	for _, n := range neighbors {
		sharpened.R += n.R * neighborWeight
		sharpened.G += n.G * neighborWeight
		sharpened.B += n.B * neighborWeight
	}
	return sharpened.Clamp()
}
