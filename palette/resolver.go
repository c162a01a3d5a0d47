package palette

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Resolver maps raw colors to their nearest catalog entry. Lookups go
// through an exact-match memo cache first; on a miss the resolver either
// walks a k-d tree for candidates and re-scores them with the configured
// distance method, or, with KdSearch disabled, scans the whole catalog.
// Either path breaks ties toward the earliest catalog entry, so results
// are independent of the search strategy.
//
// A Resolver is safe for use from a single goroutine per call chain; the
// internal mutex only guards the memo cache and tree map so one resolver
// may be shared across renderers.
type Resolver struct {
	method   DistanceMethod
	kdSearch int

	mu     sync.Mutex
	cache  map[cacheKey]Entry
	trees  map[string]*colorNode
	hits   int
	misses int
}

// cacheKey is an exact memo key: the palette id plus the quantized color.
type cacheKey struct {
	paletteID string
	color     uint32
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// NewResolver creates a Resolver. Defaults: RedmeanMethod, KdSearch 8.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		method:   RedmeanMethod{},
		kdSearch: 8,
		cache:    make(map[cacheKey]Entry),
		trees:    make(map[string]*colorNode),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithMethod sets the distance method used to score candidates.
func WithMethod(m DistanceMethod) ResolverOption {
	return func(r *Resolver) {
		r.method = m
	}
}

// WithKdSearch sets how many k-d tree candidates are re-scored per
// lookup. 0 disables the tree and scans the full catalog.
func WithKdSearch(k int) ResolverOption {
	return func(r *Resolver) {
		r.kdSearch = k
	}
}

// Resolve returns the catalog entry of palette paletteID closest to the
// given color. Channels are clamped to [0, 255] and rounded to whole
// values before matching, which also serves as the memo cache key.
func (rv *Resolver) Resolve(r, g, b float64, paletteID string) (Entry, error) {
	qr := quantizeChannel(r)
	qg := quantizeChannel(g)
	qb := quantizeChannel(b)
	key := cacheKey{
		paletteID: paletteID,
		color:     uint32(qr)<<16 | uint32(qg)<<8 | uint32(qb),
	}

	rv.mu.Lock()
	if entry, ok := rv.cache[key]; ok {
		rv.hits++
		rv.mu.Unlock()
		return entry, nil
	}
	rv.mu.Unlock()

	p, err := Load(paletteID)
	if err != nil {
		return Entry{}, err
	}

	target := colorful.Color{
		R: float64(qr) / 255,
		G: float64(qg) / 255,
		B: float64(qb) / 255,
	}

	var best int
	if rv.kdSearch > 0 {
		best = rv.kdResolve(p, paletteID, [3]float64{float64(qr), float64(qg), float64(qb)}, target)
	} else {
		best = rv.scanResolve(p, target)
	}
	entry := p.Entries[best]

	rv.mu.Lock()
	rv.misses++
	rv.cache[key] = entry
	rv.mu.Unlock()
	return entry, nil
}

// kdResolve gathers kdSearch candidates from the palette's k-d tree and
// re-scores them with the configured method.
func (rv *Resolver) kdResolve(p *Palette, paletteID string, rgbTarget [3]float64, target colorful.Color) int {
	rv.mu.Lock()
	tree, ok := rv.trees[paletteID]
	if !ok {
		tree = buildTree(p)
		rv.trees[paletteID] = tree
	}
	rv.mu.Unlock()

	k := rv.kdSearch
	if k > len(p.Entries) {
		k = len(p.Entries)
	}
	candidates := tree.kNearest(rgbTarget, k)

	best := candidates[0]
	bestDist := math.MaxFloat64
	for _, idx := range candidates {
		d := rv.method.Distance(entryColor(p.Entries[idx]), target)
		if d < bestDist || (d == bestDist && idx < best) {
			best = idx
			bestDist = d
		}
	}
	return best
}

// scanResolve scores every catalog entry with the configured method.
func (rv *Resolver) scanResolve(p *Palette, target colorful.Color) int {
	best := 0
	bestDist := math.MaxFloat64
	for idx, e := range p.Entries {
		d := rv.method.Distance(entryColor(e), target)
		if d < bestDist {
			best = idx
			bestDist = d
		}
	}
	return best
}

// CacheStats returns memo cache hit/miss counts and the hit rate.
func (rv *Resolver) CacheStats() (hits, misses int, hitRate float64) {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	total := rv.hits + rv.misses
	if total == 0 {
		return 0, 0, 0
	}
	return rv.hits, rv.misses, float64(rv.hits) / float64(total)
}

func entryColor(e Entry) colorful.Color {
	return colorful.Color{
		R: float64(e.R) / 255,
		G: float64(e.G) / 255,
		B: float64(e.B) / 255,
	}
}

func quantizeChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
