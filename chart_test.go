package img2bead

import (
	"testing"

	"github.com/wbrown/img2bead/imageutil"
	"github.com/wbrown/img2bead/palette"
)

func TestPlanChartLayout(t *testing.T) {
	t.Parallel()

	l := planChart(29, 29, 40, 60, 10)

	if l.gridW != 1160 || l.gridH != 1160 {
		t.Errorf("grid = %dx%d, want 1160x1160", l.gridW, l.gridH)
	}
	if l.itemWidth != 120 {
		t.Errorf("itemWidth = %d, want 120", l.itemWidth)
	}
	// 1160 / (120+10) = 8 items per legend row, 10 items -> 2 rows.
	if l.itemsPerRow != 8 {
		t.Errorf("itemsPerRow = %d, want 8", l.itemsPerRow)
	}
	if l.legendRows != 2 {
		t.Errorf("legendRows = %d, want 2", l.legendRows)
	}
	if l.legendRowHeight != 52 {
		t.Errorf("legendRowHeight = %d, want 52", l.legendRowHeight)
	}

	// The widest legend row (1030) is narrower than the grid, so the
	// grid alone sets the canvas width.
	if l.width != 2*60+1160 {
		t.Errorf("width = %d, want %d", l.width, 2*60+1160)
	}
	wantHeight := 2*60 + 1160 + 2*52 + 30
	if l.height != wantHeight {
		t.Errorf("height = %d, want %d", l.height, wantHeight)
	}
}

func TestPlanChartNarrowGridWidensForLegend(t *testing.T) {
	t.Parallel()

	// A 2-cell-wide grid cannot fit even one standard legend item; the
	// item count floors at 1 and the canvas stretches to the item width.
	l := planChart(2, 2, 40, 60, 3)

	if l.itemsPerRow != 1 {
		t.Errorf("itemsPerRow = %d, want 1", l.itemsPerRow)
	}
	if l.legendRows != 3 {
		t.Errorf("legendRows = %d, want 3", l.legendRows)
	}
	if l.width != 2*60+120 {
		t.Errorf("width = %d, want %d", l.width, 2*60+120)
	}
}

func TestPlanChartLargeCellsScaleLegendItems(t *testing.T) {
	t.Parallel()

	l := planChart(10, 10, 50, 60, 4)
	if l.itemWidth != 150 {
		t.Errorf("itemWidth = %d, want cellSize*3 = 150", l.itemWidth)
	}
}

func TestTextColorContrast(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		entry palette.Entry
		want  string
	}{
		{"black bead gets light text", palette.Entry{R: 26, G: 26, B: 26}, "light"},
		{"white bead gets dark text", palette.Entry{R: 244, G: 244, B: 244}, "dark"},
		{"mid gray at the boundary gets light text", palette.Entry{R: 128, G: 128, B: 128}, "light"},
		{"saturated blue is dark despite high B", palette.Entry{R: 16, G: 38, B: 74}, "light"},
		{"yellow is bright despite low B", palette.Entry{R: 245, G: 208, B: 0}, "dark"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := "dark"
			if textColorFor(tc.entry) == lightText {
				got = "light"
			}
			if got != tc.want {
				t.Errorf("textColorFor(%+v) picked %s text, want %s", tc.entry, got, tc.want)
			}
		})
	}
}

func TestRenderChartDimensionsAndCells(t *testing.T) {
	t.Parallel()

	red := palette.Entry{Code: "R", Name: "Red", R: 200, G: 16, B: 46}
	blue := palette.Entry{Code: "B", Name: "Blue", R: 31, G: 95, B: 168}
	grid := [][]palette.Entry{
		{red, blue},
		{blue, red},
	}
	stats := TallyStats(grid)

	cellSize, margin := 40, 60
	img := renderChart(grid, stats, cellSize, margin, defaultChartFont())

	l := planChart(2, 2, cellSize, margin, len(stats))
	if img.Width() != l.width || img.Height() != l.height {
		t.Fatalf("canvas = %dx%d, want %dx%d", img.Width(), img.Height(), l.width, l.height)
	}

	// Probe a point inside each cell away from the border and the
	// centered code text.
	probe := func(r, c int) imageutil.RGB {
		return img.GetRGB(margin+c*cellSize+5, margin+r*cellSize+5)
	}
	if got := probe(0, 0); got != (imageutil.RGB{R: 200, G: 16, B: 46}) {
		t.Errorf("cell (0,0) fill = %+v, want red", got)
	}
	if got := probe(0, 1); got != (imageutil.RGB{R: 31, G: 95, B: 168}) {
		t.Errorf("cell (0,1) fill = %+v, want blue", got)
	}

	// A corner pixel is background.
	if got := img.GetRGB(0, 0); got != chartBackground {
		t.Errorf("corner = %+v, want background %+v", got, chartBackground)
	}
}
