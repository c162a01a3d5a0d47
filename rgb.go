package img2bead

import (
	"image/color"
	"math"
)

// RGB is a raw color triple with float64 channels in the nominal range
// [0, 255]. Sampling and enhancement do their arithmetic in float64 and
// clamp back to the nominal range at stage boundaries.
type RGB struct {
	R, G, B float64
}

// rgbFromColor converts a color.Color to an RGB with 8-bit-scaled channels.
func rgbFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r >> 8),
		G: float64(g >> 8),
		B: float64(b >> 8),
	}
}

// Clamp returns the color with each channel limited to [0, 255].
func (c RGB) Clamp() RGB {
	return RGB{
		R: clampChannel(c.R),
		G: clampChannel(c.G),
		B: clampChannel(c.B),
	}
}

// Offset returns the color with delta added to every channel. The result
// is not clamped; callers clamp at the point the stage contract requires.
func (c RGB) Offset(delta float64) RGB {
	return RGB{R: c.R + delta, G: c.G + delta, B: c.B + delta}
}

// DistanceL1 returns the Manhattan distance between two colors,
// |dR| + |dG| + |dB|. The gradient enhancer uses it as a cheap local
// contrast measure.
func (c RGB) DistanceL1(other RGB) float64 {
	return math.Abs(c.R-other.R) + math.Abs(c.G-other.G) + math.Abs(c.B-other.B)
}

// Luminance returns the ITU-R BT.601 luma of the color,
// 0.299R + 0.587G + 0.114B.
func (c RGB) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
