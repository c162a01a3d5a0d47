package imageutil

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// PrepareOptions selects the optional preprocessing applied to a source
// image before it enters the sampling pipeline.
type PrepareOptions struct {
	// Grayscale drops color before sampling, for monochrome patterns.
	Grayscale bool

	// BlurRadius applies a Gaussian blur when > 0. Softens noise that
	// block averaging would otherwise pass into small grids.
	BlurRadius float64

	// Sharpen applies an unsharp mask to the source.
	Sharpen bool

	// Outline replaces the image with its Canny edge line art.
	Outline bool
}

// IsZero reports whether no preprocessing is requested.
func (o PrepareOptions) IsZero() bool {
	return !o.Grayscale && o.BlurRadius <= 0 && !o.Sharpen && !o.Outline
}

// Prepare applies the selected preprocessing steps in a fixed order:
// grayscale, blur, sharpen, outline. The input image is not modified.
func Prepare(img image.Image, opts PrepareOptions) image.Image {
	out := img
	if opts.Grayscale {
		out = effect.Grayscale(out)
	}
	if opts.BlurRadius > 0 {
		out = blur.Gaussian(out, opts.BlurRadius)
	}
	if opts.Sharpen {
		out = effect.UnsharpMask(out, 6.0, 1.2)
	}
	if opts.Outline {
		out = Outline(out)
	}
	return out
}
