package img2bead

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/wbrown/img2bead/imageutil"
)

// sampleNearest reduces the crop region to a targetW x targetH grid with a
// single source sample per grid cell, using nearest-neighbor resampling.
// The brightness offset is applied per cell after sampling and the result
// is clamped to [0, 255].
func sampleNearest(src image.Image, crop CropRect, targetW, targetH int, offset float64) [][]RGB {
	cropped := imaging.Crop(src, crop.Bounds())
	small := imageutil.Resize(
		imageutil.RGBAImageFromImage(cropped),
		targetW, targetH,
		imageutil.InterpolationNearest,
	)

	grid := make([][]RGB, targetH)
	for r := 0; r < targetH; r++ {
		grid[r] = make([]RGB, targetW)
		for c := 0; c < targetW; c++ {
			px := small.GetRGB(c, r)
			grid[r][c] = RGB{
				R: float64(px.R),
				G: float64(px.G),
				B: float64(px.B),
			}.Offset(offset).Clamp()
		}
	}
	return grid
}

// sampleAverage reduces the crop region to a targetW x targetH grid by
// partitioning it into non-overlapping blocks and averaging every source
// pixel in each block. The brightness offset is applied and clamped per
// source pixel before accumulation, so saturated pixels do not drag the
// block mean past the channel range.
func sampleAverage(src image.Image, crop CropRect, targetW, targetH int, offset float64) [][]RGB {
	region := imageutil.RGBAImageFromImage(imaging.Crop(src, crop.Bounds()))
	cropW, cropH := region.Width(), region.Height()

	blockW := float64(cropW) / float64(targetW)
	blockH := float64(cropH) / float64(targetH)

	grid := make([][]RGB, targetH)
	for r := 0; r < targetH; r++ {
		grid[r] = make([]RGB, targetW)

		y0 := int(math.Floor(float64(r) * blockH))
		y1 := int(math.Floor(float64(r+1) * blockH))
		if y1 > cropH {
			y1 = cropH
		}

		for c := 0; c < targetW; c++ {
			x0 := int(math.Floor(float64(c) * blockW))
			x1 := int(math.Floor(float64(c+1) * blockW))
			if x1 > cropW {
				x1 = cropW
			}

			var sum RGB
			count := 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					px := region.GetRGB(x, y)
					shifted := RGB{
						R: float64(px.R),
						G: float64(px.G),
						B: float64(px.B),
					}.Offset(offset).Clamp()
					sum.R += shifted.R
					sum.G += shifted.G
					sum.B += shifted.B
					count++
				}
			}

			// Unreachable under a valid crop plan, but a rounding
			// degenerate block averages as one implicit pixel
			// rather than dividing by zero.
			if count == 0 {
				count = 1
			}
			grid[r][c] = RGB{
				R: sum.R / float64(count),
				G: sum.G / float64(count),
				B: sum.B / float64(count),
			}
		}
	}
	return grid
}
