package img2bead

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/wbrown/img2bead/imageutil"
	"github.com/wbrown/img2bead/palette"
)

const (
	// heavyLineEvery is the cell interval of the thick guide lines and
	// the bold ruler labels.
	heavyLineEvery = 10

	legendItemSpacing = 10
	legendMinItemW    = 120
	rulerLabelOffset  = 16
)

var (
	chartBackground = imageutil.RGB{R: 248, G: 248, B: 248}
	cellBorderColor = imageutil.RGB{R: 168, G: 168, B: 168}
	heavyLineColor  = imageutil.RGB{R: 40, G: 40, B: 40}

	darkText  = color.RGBA{R: 26, G: 26, B: 26, A: 255}
	lightText = color.RGBA{R: 245, G: 245, B: 245, A: 255}
)

// chartLayout holds the computed geometry of a chart: the grid placement
// and the row-wrapped legend below it. All values are integer pixels.
type chartLayout struct {
	rows, cols int
	cellSize   int
	margin     int

	gridW, gridH int

	itemWidth       int
	itemsPerRow     int
	legendRows      int
	legendRowHeight int
	legendTop       int

	width, height int
}

// planChart computes the canvas layout for a rows x cols grid with
// statCount legend items. Legend items wrap into rows of a
// width-dependent count; the canvas widens past the grid only when a
// single legend row is wider than the grid itself.
func planChart(rows, cols, cellSize, margin, statCount int) chartLayout {
	l := chartLayout{
		rows:     rows,
		cols:     cols,
		cellSize: cellSize,
		margin:   margin,
		gridW:    cols * cellSize,
		gridH:    rows * cellSize,
	}

	l.itemWidth = cellSize * 3
	if l.itemWidth < legendMinItemW {
		l.itemWidth = legendMinItemW
	}
	l.itemsPerRow = l.gridW / (l.itemWidth + legendItemSpacing)
	if l.itemsPerRow < 1 {
		l.itemsPerRow = 1
	}
	l.legendRows = (statCount + l.itemsPerRow - 1) / l.itemsPerRow
	l.legendRowHeight = cellSize + 12
	l.legendTop = margin + l.gridH + margin/2

	widestRow := 0
	if statCount > 0 {
		rowItems := statCount
		if rowItems > l.itemsPerRow {
			rowItems = l.itemsPerRow
		}
		widestRow = rowItems*(l.itemWidth+legendItemSpacing) - legendItemSpacing
	}

	content := l.gridW
	if widestRow > content {
		content = widestRow
	}
	l.width = 2*margin + content
	l.height = 2*margin + l.gridH + l.legendRows*l.legendRowHeight + margin/2
	return l
}

// renderChart draws the resolved grid and its legend onto a fresh canvas:
// color-filled cells labeled with their catalog code, thick guide lines
// every 10 cells, 1-based rulers on all four sides, and the
// frequency-sorted legend centered below the grid.
func renderChart(grid [][]palette.Entry, stats []ColorStat, cellSize, margin int, fonts chartFont) *imageutil.RGBAImage {
	rows := len(grid)
	cols := len(grid[0])
	l := planChart(rows, cols, cellSize, margin, len(stats))

	img := imageutil.NewRGBAImage(l.width, l.height)
	img.FillRect(0, 0, l.width, l.height, chartBackground)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := margin + c*cellSize
			y := margin + r*cellSize
			drawBead(img, x, y, cellSize, grid[r][c], fonts)
		}
	}

	drawGuides(img, l)
	drawRulers(img, l, fonts)
	drawLegend(img, l, stats, fonts)

	return img
}

// drawBead fills one cell with the entry's display color, outlines it,
// and centers the catalog code in a contrast-picked text color.
func drawBead(img *imageutil.RGBAImage, x, y, size int, entry palette.Entry, fonts chartFont) {
	fill := imageutil.RGB{R: entry.R, G: entry.G, B: entry.B}
	img.FillRect(x, y, size, size, fill)
	img.Border(x, y, size, size, 1, cellBorderColor)
	fonts.drawCenteredString(img.RGBA, entry.Code, x+size/2, y+size/2, textColorFor(entry), false)
}

// textColorFor picks light text on dark beads and dark text on light
// beads, splitting on BT.601 luma 128.
func textColorFor(entry palette.Entry) color.Color {
	lum := RGB{
		R: float64(entry.R),
		G: float64(entry.G),
		B: float64(entry.B),
	}.Luminance()
	if lum <= 128 {
		return lightText
	}
	return darkText
}

// drawGuides overlays the thick counting lines every 10 cells and the
// outer border around the whole grid.
func drawGuides(img *imageutil.RGBAImage, l chartLayout) {
	for c := heavyLineEvery; c < l.cols; c += heavyLineEvery {
		x := l.margin + c*l.cellSize
		img.VLine(x-1, l.margin, l.margin+l.gridH, 2, heavyLineColor)
	}
	for r := heavyLineEvery; r < l.rows; r += heavyLineEvery {
		y := l.margin + r*l.cellSize
		img.HLine(l.margin, l.margin+l.gridW, y-1, 2, heavyLineColor)
	}
	img.Border(l.margin-2, l.margin-2, l.gridW+4, l.gridH+4, 2, heavyLineColor)
}

// drawRulers writes 1-based row and column indices on all four sides,
// centered on their cells, with every 10th index in the bold face.
func drawRulers(img *imageutil.RGBAImage, l chartLayout, fonts chartFont) {
	for c := 0; c < l.cols; c++ {
		label := strconv.Itoa(c + 1)
		bold := (c+1)%heavyLineEvery == 0
		cx := l.margin + c*l.cellSize + l.cellSize/2
		fonts.drawCenteredString(img.RGBA, label, cx, l.margin-rulerLabelOffset, darkText, bold)
		fonts.drawCenteredString(img.RGBA, label, cx, l.margin+l.gridH+rulerLabelOffset, darkText, bold)
	}
	for r := 0; r < l.rows; r++ {
		label := strconv.Itoa(r + 1)
		bold := (r+1)%heavyLineEvery == 0
		cy := l.margin + r*l.cellSize + l.cellSize/2
		fonts.drawCenteredString(img.RGBA, label, l.margin-rulerLabelOffset, cy, darkText, bold)
		fonts.drawCenteredString(img.RGBA, label, l.margin+l.gridW+rulerLabelOffset, cy, darkText, bold)
	}
}

// drawLegend lays the usage legend out below the grid: one swatch per
// distinct code in stats order, wrapped into rows and centered when a
// row is narrower than the grid.
func drawLegend(img *imageutil.RGBAImage, l chartLayout, stats []ColorStat, fonts chartFont) {
	contentW := l.width - 2*l.margin

	for i, stat := range stats {
		row := i / l.itemsPerRow
		col := i % l.itemsPerRow

		rowItems := len(stats) - row*l.itemsPerRow
		if rowItems > l.itemsPerRow {
			rowItems = l.itemsPerRow
		}
		rowWidth := rowItems*(l.itemWidth+legendItemSpacing) - legendItemSpacing
		startX := l.margin + (contentW-rowWidth)/2

		x := startX + col*(l.itemWidth+legendItemSpacing)
		y := l.legendTop + row*l.legendRowHeight

		drawBead(img, x, y, l.cellSize, stat.Entry, fonts)
		fonts.drawString(img.RGBA, fmt.Sprintf(" * %d", stat.Count),
			x+l.cellSize+2, y+l.cellSize/2, darkText)
	}
}
