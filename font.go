package img2bead

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// chartFont carries the faces the chart renderer draws with. The bold
// face marks every 10th ruler index; the built-in bitmap face has no
// true bold, so it fakes one with a double strike.
type chartFont struct {
	regular      font.Face
	bold         font.Face
	doubleStrike bool
}

// defaultChartFont returns the built-in bitmap faces. Always available,
// no files required.
func defaultChartFont() chartFont {
	return chartFont{
		regular:      basicfont.Face7x13,
		bold:         basicfont.Face7x13,
		doubleStrike: true,
	}
}

// loadChartFont loads a TrueType font and derives a regular and a larger
// bold-weight face sized relative to the cell size.
func loadChartFont(path string, cellSize int) (chartFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chartFont{}, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return chartFont{}, fmt.Errorf("failed to parse font: %w", err)
	}

	size := float64(cellSize) / 3
	if size < 10 {
		size = 10
	}
	regular := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	bold := truetype.NewFace(ttf, &truetype.Options{
		Size:    size * 1.4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return chartFont{regular: regular, bold: bold}, nil
}

// face returns the face for the requested weight.
func (cf chartFont) face(bold bool) font.Face {
	if bold {
		return cf.bold
	}
	return cf.regular
}

// drawCenteredString draws s centered on (cx, cy) using fixed-point font
// metrics. With doubleStrike set and bold requested, the string is drawn
// twice one pixel apart to thicken the bitmap face.
func (cf chartFont) drawCenteredString(dst *image.RGBA, s string, cx, cy int, col color.Color, bold bool) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: cf.face(bold),
	}
	width := d.MeasureString(s)
	metrics := d.Face.Metrics()

	x := fixed.I(cx) - width/2
	y := fixed.I(cy) + (metrics.Ascent-metrics.Descent)/2

	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(s)

	if bold && cf.doubleStrike {
		d.Dot = fixed.Point26_6{X: x + fixed.I(1), Y: y}
		d.DrawString(s)
	}
}

// drawString draws s left-aligned at x, vertically centered on cy.
func (cf chartFont) drawString(dst *image.RGBA, s string, x, cy int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: cf.regular,
	}
	metrics := d.Face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: fixed.I(cy) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(s)
}
