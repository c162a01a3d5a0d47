package imageutil

import (
	"image"
	"math"
)

// Canny runs Canny edge detection over a grayscale image: Gaussian
// blur, Sobel gradients, non-maximum suppression, double thresholding,
// and edge tracking by hysteresis. Typical thresholds are 50 and 150.
func Canny(gray *GrayImage, lowThreshold, highThreshold float64) *GrayImage {
	width, height := gray.Width(), gray.Height()

	blurred := gaussianBlurGray(gray)
	gx, gy := sobelGradients(blurred)

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			magnitude[y][x] = math.Sqrt(gx[y][x]*gx[y][x] + gy[y][x]*gy[y][x])
			direction[y][x] = math.Atan2(gy[y][x], gx[y][x])
		}
	}

	suppressed := nonMaxSuppression(magnitude, direction, width, height)
	strong, weak := doubleThreshold(suppressed, lowThreshold, highThreshold, width, height)
	return hysteresis(strong, weak, width, height)
}

// Outline converts an image to a line-art rendering: Canny edges drawn
// dark on a white background, ready for the sampling pipeline.
func Outline(img image.Image) *RGBAImage {
	gray := GrayImageFromImage(img)
	edges := Canny(gray, 50, 150)

	width, height := gray.Width(), gray.Height()
	out := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.GetGray(x, y) > 128 {
				out.SetRGB(x, y, RGB{R: 26, G: 26, B: 26})
			} else {
				out.SetRGB(x, y, RGB{R: 250, G: 250, B: 250})
			}
		}
	}
	return out
}

// gaussian5x5 is a 5x5 Gaussian kernel with sigma ~1.4.
var gaussian5x5 = [5][5]float64{
	{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
	{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
	{5.0 / 159, 12.0 / 159, 15.0 / 159, 12.0 / 159, 5.0 / 159},
	{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
	{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
}

// gaussianBlurGray blurs with the 5x5 Gaussian kernel, replicating edge
// pixels at the border.
func gaussianBlurGray(img *GrayImage) *GrayImage {
	width, height := img.Width(), img.Height()
	dst := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for ky := 0; ky < 5; ky++ {
				for kx := 0; kx < 5; kx++ {
					sx := clampInt(x+kx-2, 0, width-1)
					sy := clampInt(y+ky-2, 0, height-1)
					sum += float64(img.GetGray(sx, sy)) * gaussian5x5[ky][kx]
				}
			}
			dst.SetGrayValue(x, y, clampUint8(sum))
		}
	}
	return dst
}

// sobelGradients computes horizontal and vertical Sobel gradients with
// border replication.
func sobelGradients(img *GrayImage) (gx, gy [][]float64) {
	width, height := img.Width(), img.Height()

	sobelX := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	gx = make([][]float64, height)
	gy = make([][]float64, height)
	for y := 0; y < height; y++ {
		gx[y] = make([]float64, width)
		gy[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sx, sy float64
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					px := clampInt(x+kx-1, 0, width-1)
					py := clampInt(y+ky-1, 0, height-1)
					v := float64(img.GetGray(px, py))
					sx += v * sobelX[ky][kx]
					sy += v * sobelY[ky][kx]
				}
			}
			gx[y][x] = sx
			gy[y][x] = sy
		}
	}
	return gx, gy
}

// nonMaxSuppression keeps only pixels that are local maxima along their
// gradient direction.
func nonMaxSuppression(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			// Quantize the angle to one of four directions.
			angle := direction[y][x] * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q, r = magnitude[y][x+1], magnitude[y][x-1]
			case angle < 67.5:
				q, r = magnitude[y+1][x+1], magnitude[y-1][x-1]
			case angle < 112.5:
				q, r = magnitude[y+1][x], magnitude[y-1][x]
			default:
				q, r = magnitude[y+1][x-1], magnitude[y-1][x+1]
			}

			if magnitude[y][x] >= q && magnitude[y][x] >= r {
				suppressed[y][x] = magnitude[y][x]
			}
		}
	}
	return suppressed
}

// doubleThreshold classifies edge pixels as strong or weak.
func doubleThreshold(suppressed [][]float64, low, high float64, width, height int) (strong, weak [][]bool) {
	strong = make([][]bool, height)
	weak = make([][]bool, height)
	for y := 0; y < height; y++ {
		strong[y] = make([]bool, width)
		weak[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			switch v := suppressed[y][x]; {
			case v >= high:
				strong[y][x] = true
			case v >= low:
				weak[y][x] = true
			}
		}
	}
	return strong, weak
}

// hysteresis promotes weak edges that connect to strong edges, iterating
// until the edge map stops changing.
func hysteresis(strong, weak [][]bool, width, height int) *GrayImage {
	edges := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if strong[y][x] {
				edges.SetGrayValue(x, y, 255)
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for y := 1; y < height-1; y++ {
			for x := 1; x < width-1; x++ {
				if !weak[y][x] || edges.GetGray(x, y) != 0 {
					continue
				}
				for dy := -1; dy <= 1 && edges.GetGray(x, y) == 0; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if edges.GetGray(x+dx, y+dy) == 255 {
							edges.SetGrayValue(x, y, 255)
							changed = true
							break
						}
					}
				}
			}
		}
	}
	return edges
}

// clampInt clamps an integer to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
