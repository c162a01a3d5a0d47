package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// ExtractMethod selects how adaptive palette candidates are gathered
// from a source image.
type ExtractMethod int

const (
	// ExtractMethodDominant ranks colors by how much of the image they
	// cover. Good for posterized or flat sources.
	ExtractMethodDominant ExtractMethod = iota

	// ExtractMethodKMeans clusters a pixel subsample and takes cluster
	// centers weighted by population. Better for photographs.
	ExtractMethodKMeans
)

func (m ExtractMethod) String() string {
	switch m {
	case ExtractMethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseExtractMethod maps a wire identifier to an ExtractMethod.
func ParseExtractMethod(s string) (ExtractMethod, error) {
	switch s {
	case "dominant":
		return ExtractMethodDominant, nil
	case "kmeans":
		return ExtractMethodKMeans, nil
	default:
		return 0, fmt.Errorf("unknown extract method %q (want dominant or kmeans)", s)
	}
}

// weightedColor pairs a candidate color with its strength in the image.
type weightedColor struct {
	col    colorful.Color
	weight float64
}

// Extract builds a size-color palette from the source image, registers
// it under id, and returns it. Candidates come from the chosen method,
// a greedy diversity pass in Lab space picks the final set so near
// duplicates do not crowd out minority colors, and the result is ordered
// darkest to brightest with codes D01..Dnn.
func Extract(img image.Image, id string, size int, method ExtractMethod) (*Palette, error) {
	if size <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", size)
	}

	var cands []weightedColor
	switch method {
	case ExtractMethodKMeans:
		cands = kmeansCandidates(img, size)
		if len(cands) == 0 {
			// kmeans can come up empty on tiny or fully transparent
			// sources; dominant sampling still works there.
			cands = dominantCandidates(img, size)
		}
	default:
		cands = dominantCandidates(img, size)
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("no colors could be extracted from the image")
	}

	selected := selectDiverse(cands, size)
	sortByBrightness(selected)

	p := &Palette{
		ID:      id,
		Name:    fmt.Sprintf("Extracted (%s)", method),
		Entries: make([]Entry, 0, len(selected)),
	}
	for i, col := range selected {
		r, g, b := col.RGB255()
		p.Entries = append(p.Entries, Entry{
			Code: fmt.Sprintf("D%02d", i+1),
			Name: fmt.Sprintf("Extracted %02d", i+1),
			R:    r,
			G:    g,
			B:    b,
		})
	}
	if err := Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

// dominantCandidates gathers weighted dominant colors, oversampling so
// the diversity pass has something to choose from.
func dominantCandidates(img image.Image, k int) []weightedColor {
	n := k * 8
	if n < 24 {
		n = 24
	}
	found := dominantcolor.FindWeight(img, n)
	if len(found) == 0 {
		// Avoid an empty palette on degenerate input.
		found = append(found, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	cands := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		cands = append(cands, weightedColor{col: col.Clamped(), weight: w})
	}
	return cands
}

// kmeansCandidates clusters a subsample of the image's pixels and
// returns cluster centers weighted by population.
func kmeansCandidates(img image.Image, k int) []weightedColor {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	const maxSamples = 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	var dataset clusters.Observations
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	// Work with more clusters than requested so the diversity pass can
	// reject near duplicates.
	workK := k * 4
	if workK < k+2 {
		workK = k + 2
	}
	if workK > len(dataset) {
		workK = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	sort.SliceStable(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	cands := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{
			R: c.Center[0],
			G: c.Center[1],
			B: c.Center[2],
		}.Clamped()
		w := float64(len(c.Observations))
		if w <= 0 {
			w = 1e-6
		}
		cands = append(cands, weightedColor{col: col, weight: w})
	}
	return cands
}

// selectDiverse greedily picks k colors maximizing the minimum Lab
// distance to the already-selected set, weighted by candidate strength
// so strong near duplicates do not beat distinct minority colors.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k > len(cands) {
		k = len(cands)
	}

	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, len(cands))
	maxW := 0.0
	for i, c := range cands {
		l, a, b := c.col.Lab()
		items[i] = item{col: c.col, lab: [3]float64{l, a, b}, w: c.weight}
		if c.weight > maxW {
			maxW = c.weight
		}
	}
	if maxW <= 0 {
		maxW = 1.0
	}

	selected := make([]bool, len(items))
	selectedIdx := make([]int, 0, k)

	// Seed with the strongest candidate to stay close to dominant tones.
	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	selectedIdx = append(selectedIdx, seed)
	selected[seed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				dist2 := d0*d0 + d1*d1 + d2*d2
				if dist2 < minD2 {
					minD2 = dist2
				}
			}
			normW := items[i].w / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

// sortByBrightness orders colors darkest to brightest so the chart
// legend reads from background to highlights.
func sortByBrightness(palette []colorful.Color) {
	sort.SliceStable(palette, func(i, j int) bool {
		ri, gi, bi := palette[i].LinearRgb()
		rj, gj, bj := palette[j].LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		return yi < yj
	})
}
