package img2bead

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/wbrown/img2bead/palette"
)

// Renderer carries the configuration for one conversion pipeline. A
// Renderer is cheap to create and holds no per-run state, so the same
// instance can generate any number of charts; the injected Resolver may
// memoize across runs.
type Renderer struct {
	// Configuration options
	TargetWidth  int
	TargetHeight int
	Algorithm    Algorithm
	Brightness   int
	PaletteID    string
	CellSize     int
	Margin       int
	FontPath     string

	// Collaborators (private)
	resolver Resolver

	// Font state (private, loaded on first use)
	font       chartFont
	fontLoaded bool
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a Renderer with the given options.
// Defaults: 29x29 grid (one pegboard), average sampling, brightness 0,
// the classic48 palette, 40px cells, 60px margin, and a shared
// palette.Resolver with redmean matching.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		TargetWidth:  29,
		TargetHeight: 29,
		Algorithm:    AlgorithmAverage,
		Brightness:   0,
		PaletteID:    "classic48",
		CellSize:     40,
		Margin:       60,
		resolver:     palette.NewResolver(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithDimensions sets the bead grid size, in beads.
func WithDimensions(width, height int) RendererOption {
	return func(r *Renderer) {
		r.TargetWidth = width
		r.TargetHeight = height
	}
}

// WithAlgorithm sets the sampling algorithm.
func WithAlgorithm(a Algorithm) RendererOption {
	return func(r *Renderer) {
		r.Algorithm = a
	}
}

// WithBrightness sets the brightness level, an integer in [-2, 2]. Each
// level shifts every sampled channel by 15 before clamping.
func WithBrightness(level int) RendererOption {
	return func(r *Renderer) {
		r.Brightness = level
	}
}

// WithPalette sets the bead catalog id to resolve against.
func WithPalette(id string) RendererOption {
	return func(r *Renderer) {
		r.PaletteID = id
	}
}

// WithResolver injects the palette resolver. Tests use this to replace
// the catalog search with a deterministic stub.
func WithResolver(res Resolver) RendererOption {
	return func(r *Renderer) {
		r.resolver = res
	}
}

// WithCellSize sets the rendered size of one bead cell, in pixels.
func WithCellSize(size int) RendererOption {
	return func(r *Renderer) {
		r.CellSize = size
	}
}

// WithMargin sets the chart margin, in pixels.
func WithMargin(margin int) RendererOption {
	return func(r *Renderer) {
		r.Margin = margin
	}
}

// WithFontPath sets a TrueType font for chart text. Without it the
// built-in bitmap face is used.
func WithFontPath(path string) RendererOption {
	return func(r *Renderer) {
		r.FontPath = path
	}
}

// validate checks the configuration before a generation run.
func (r *Renderer) validate() error {
	if r.TargetWidth < 1 || r.TargetWidth > MaxTargetSize ||
		r.TargetHeight < 1 || r.TargetHeight > MaxTargetSize {
		return fmt.Errorf("target dimensions must be in [1, %d], got %dx%d",
			MaxTargetSize, r.TargetWidth, r.TargetHeight)
	}
	if r.Brightness < -2 || r.Brightness > 2 {
		return fmt.Errorf("brightness level must be in [-2, 2], got %d", r.Brightness)
	}
	if r.CellSize < 1 {
		return fmt.Errorf("cell size must be positive, got %d", r.CellSize)
	}
	if r.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %d", r.Margin)
	}
	if r.resolver == nil {
		return fmt.Errorf("no palette resolver configured")
	}
	return nil
}

// Generate runs the full pipeline on the source image and returns the
// chart as PNG-encoded bytes. Identical inputs produce byte-identical
// output.
func (r *Renderer) Generate(src image.Image) ([]byte, error) {
	chart, _, err := r.GenerateImage(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, chart); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateImage runs the full pipeline and returns the chart image plus
// the per-color usage tally, for callers that want the statistics or a
// different encoding.
func (r *Renderer) GenerateImage(src image.Image) (image.Image, []ColorStat, error) {
	if err := r.validate(); err != nil {
		return nil, nil, err
	}

	bounds := src.Bounds()
	crop, err := PlanCrop(bounds.Dx(), bounds.Dy(), r.TargetWidth, r.TargetHeight)
	if err != nil {
		return nil, nil, err
	}

	raw := r.sample(src, crop)
	if r.Algorithm == AlgorithmGradientEnhanced {
		raw = enhanceGradients(raw)
	}

	grid, err := r.resolveGrid(raw)
	if err != nil {
		return nil, nil, err
	}
	stats := TallyStats(grid)

	fonts, err := r.chartFont()
	if err != nil {
		return nil, nil, err
	}

	chart := renderChart(grid, stats, r.CellSize, r.Margin, fonts)
	return chart.RGBA, stats, nil
}

// SampleGrid runs the geometry and sampling stages only, returning the
// raw color grid before palette resolution. Exposed so callers can
// inspect or re-resolve a pattern without rendering.
func (r *Renderer) SampleGrid(src image.Image) ([][]RGB, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	crop, err := PlanCrop(bounds.Dx(), bounds.Dy(), r.TargetWidth, r.TargetHeight)
	if err != nil {
		return nil, err
	}
	raw := r.sample(src, crop)
	if r.Algorithm == AlgorithmGradientEnhanced {
		raw = enhanceGradients(raw)
	}
	return raw, nil
}

// sample dispatches to the configured sampling strategy. The gradient
// enhanced algorithm shares the average sampler's raw grid.
func (r *Renderer) sample(src image.Image, crop CropRect) [][]RGB {
	offset := float64(r.Brightness) * BrightnessStep
	switch r.Algorithm {
	case AlgorithmNearest:
		return sampleNearest(src, crop, r.TargetWidth, r.TargetHeight, offset)
	default:
		return sampleAverage(src, crop, r.TargetWidth, r.TargetHeight, offset)
	}
}

// resolveGrid maps every raw cell to its nearest catalog entry.
func (r *Renderer) resolveGrid(raw [][]RGB) ([][]palette.Entry, error) {
	grid := make([][]palette.Entry, len(raw))
	for row, cells := range raw {
		grid[row] = make([]palette.Entry, len(cells))
		for col, c := range cells {
			entry, err := r.resolver.Resolve(c.R, c.G, c.B, r.PaletteID)
			if err != nil {
				return nil, fmt.Errorf("resolving cell (%d,%d): %w", row, col, err)
			}
			grid[row][col] = entry
		}
	}
	return grid, nil
}

// chartFont returns the configured font faces, loading a TrueType file
// once on first use.
func (r *Renderer) chartFont() (chartFont, error) {
	if r.fontLoaded {
		return r.font, nil
	}
	if r.FontPath == "" {
		r.font = defaultChartFont()
	} else {
		f, err := loadChartFont(r.FontPath, r.CellSize)
		if err != nil {
			return chartFont{}, err
		}
		r.font = f
	}
	r.fontLoaded = true
	return r.font, nil
}
