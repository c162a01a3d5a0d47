// Package img2bead converts photographs into bead-pattern charts. A source
// image is center-cropped to the target aspect ratio, reduced to a fixed
// grid of colors by one of three sampling algorithms, matched cell by cell
// against a bead color catalog, and rendered as a printable chart with
// coordinate rulers and a per-color usage legend.
//
// The pipeline is a sequence of pure transformations:
//
//	source -> PlanCrop -> sample -> (enhance) -> resolve -> chart -> PNG
//
// Each stage allocates a fresh grid rather than mutating its input, so the
// individual stages can be exercised in isolation. Repeated runs with
// identical inputs produce byte-identical output.
package img2bead

import (
	"fmt"
)

// MaxTargetSize is the largest supported grid edge, in beads. A standard
// pegboard is 29x29; four boards joined make 116, so 120 leaves headroom.
const MaxTargetSize = 120

// BrightnessStep is the per-level channel offset applied before sampling
// math. Level -2..2 maps to -30..+30.
const BrightnessStep = 15.0

// Algorithm selects the sampling strategy that reduces the cropped source
// region to the bead grid.
type Algorithm int

const (
	// AlgorithmAverage averages every source pixel inside each grid
	// cell's block. Best general-purpose choice for photos.
	AlgorithmAverage Algorithm = iota

	// AlgorithmNearest takes a single source sample per grid cell.
	// Preserves hard pixel-art edges, noisy on photos.
	AlgorithmNearest

	// AlgorithmGradientEnhanced is block averaging followed by a
	// selective unsharp pass that re-sharpens high-contrast boundaries
	// the averaging blurred away.
	AlgorithmGradientEnhanced
)

// String returns the wire identifier for the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmNearest:
		return "nearest"
	case AlgorithmGradientEnhanced:
		return "gradient_enhanced"
	default:
		return "average"
	}
}

// ParseAlgorithm maps a wire identifier to an Algorithm. Unknown
// identifiers are an error.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "nearest":
		return AlgorithmNearest, nil
	case "average":
		return AlgorithmAverage, nil
	case "gradient_enhanced":
		return AlgorithmGradientEnhanced, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want nearest, average, or gradient_enhanced)", s)
	}
}
