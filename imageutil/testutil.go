package imageutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateGradientImage creates a horizontal grayscale gradient test image.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern for edge testing.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			isWhite := ((x/squareSize)+(y/squareSize))%2 == 0
			if isWhite {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			} else {
				img.SetRGB(x, y, RGB{R: 0, G: 0, B: 0})
			}
		}
	}
	return img
}

// CreateQuadrantImage creates an image split into four solid quadrants,
// ordered top-left, top-right, bottom-left, bottom-right. Width and
// height should be even so the quadrants are exact.
func CreateQuadrantImage(width, height int, quadrants [4]RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	midX, midY := width/2, height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := 0
			if x >= midX {
				idx++
			}
			if y >= midY {
				idx += 2
			}
			img.SetRGB(x, y, quadrants[idx])
		}
	}
	return img
}

// CreateEdgeImage creates an image with a sharp vertical edge down the
// middle for edge detection testing.
func CreateEdgeImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.SetRGB(x, y, RGB{R: 30, G: 30, B: 30})
			} else {
				img.SetRGB(x, y, RGB{R: 225, G: 225, B: 225})
			}
		}
	}
	return img
}

// CalculateMaxDiff calculates the maximum per-channel pixel difference
// between two images of identical dimensions.
func CalculateMaxDiff(img1, img2 *RGBAImage) int {
	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			c1 := img1.GetRGB(x, y)
			c2 := img2.GetRGB(x, y)
			for _, d := range []int{
				absInt(int(c1.R) - int(c2.R)),
				absInt(int(c1.G) - int(c2.G)),
				absInt(int(c1.B) - int(c2.B)),
			} {
				if d > maxDiff {
					maxDiff = d
				}
			}
		}
	}
	return maxDiff
}

// DumpPNG writes an intermediate test image to the directory named by
// the IMG2BEAD_TEST_DUMP environment variable. A no-op when the variable
// is unset, so tests stay quiet by default.
func DumpPNG(img *RGBAImage, name string) error {
	dir := os.Getenv("IMG2BEAD_TEST_DUMP")
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dump dir: %w", err)
	}
	return SavePNG(img.RGBA, filepath.Join(dir, name))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
