package palette

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestResolveExactCatalogColors(t *testing.T) {
	p, err := Load("classic48")
	if err != nil {
		t.Fatal(err)
	}

	rv := NewResolver()
	for _, e := range p.Entries {
		got, err := rv.Resolve(float64(e.R), float64(e.G), float64(e.B), "classic48")
		if err != nil {
			t.Fatal(err)
		}
		if got.Code != e.Code {
			t.Errorf("exact color of %s resolved to %s", e.Code, got.Code)
		}
	}
}

func TestResolveQuantizesInput(t *testing.T) {
	rv := NewResolver()

	// Out-of-range channels clamp to the catalog's darkest and brightest
	// codes, fractional channels round.
	dark, err := rv.Resolve(-40, -3.2, -500, "classic48")
	if err != nil {
		t.Fatal(err)
	}
	if dark.Code != "A01" {
		t.Errorf("clamped black resolved to %s, want A01", dark.Code)
	}

	a, err := rv.Resolve(25.6, 26.4, 26.0, "classic48")
	if err != nil {
		t.Fatal(err)
	}
	b, err := rv.Resolve(26, 26, 26, "classic48")
	if err != nil {
		t.Fatal(err)
	}
	if a.Code != b.Code {
		t.Errorf("rounded lookup resolved to %s, exact to %s", a.Code, b.Code)
	}
}

func TestKdSearchMatchesFullScan(t *testing.T) {
	// With the RGB method the re-scoring metric matches the tree's own
	// metric, so both search strategies must always agree.
	kd := NewResolver(WithMethod(RGBMethod{}))
	scan := NewResolver(WithMethod(RGBMethod{}), WithKdSearch(0))

	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				got, err := kd.Resolve(float64(r), float64(g), float64(b), "classic48")
				if err != nil {
					t.Fatal(err)
				}
				want, err := scan.Resolve(float64(r), float64(g), float64(b), "classic48")
				if err != nil {
					t.Fatal(err)
				}
				if got.Code != want.Code {
					t.Errorf("(%d,%d,%d): kd picked %s, scan picked %s",
						r, g, b, got.Code, want.Code)
				}
			}
		}
	}
}

func TestResolverCacheStats(t *testing.T) {
	rv := NewResolver()

	hits, misses, rate := rv.CacheStats()
	if hits != 0 || misses != 0 || rate != 0 {
		t.Errorf("fresh resolver stats = (%d, %d, %f), want zeros", hits, misses, rate)
	}

	if _, err := rv.Resolve(100, 110, 120, "classic48"); err != nil {
		t.Fatal(err)
	}
	if _, err := rv.Resolve(100, 110, 120, "classic48"); err != nil {
		t.Fatal(err)
	}
	if _, err := rv.Resolve(100, 110, 120, "classic48"); err != nil {
		t.Fatal(err)
	}

	hits, misses, rate = rv.CacheStats()
	if hits != 2 || misses != 1 {
		t.Errorf("stats = (%d hits, %d misses), want (2, 1)", hits, misses)
	}
	if rate < 0.66 || rate > 0.67 {
		t.Errorf("hit rate = %f, want 2/3", rate)
	}
}

func TestResolverCacheIsPerPalette(t *testing.T) {
	rv := NewResolver()

	a, err := rv.Resolve(26, 26, 26, "classic48")
	if err != nil {
		t.Fatal(err)
	}
	m, err := rv.Resolve(26, 26, 26, "mini24")
	if err != nil {
		t.Fatal(err)
	}
	if a.Code != "A01" || m.Code != "M01" {
		t.Errorf("got %s and %s, want A01 and M01", a.Code, m.Code)
	}

	_, misses, _ := rv.CacheStats()
	if misses != 2 {
		t.Errorf("misses = %d, want 2 (one per palette)", misses)
	}
}

func TestResolveUnknownPalette(t *testing.T) {
	rv := NewResolver()
	if _, err := rv.Resolve(0, 0, 0, "no-such-catalog"); err == nil {
		t.Fatal("expected an error for an unknown palette id")
	}
}

func TestDistanceMethods(t *testing.T) {
	t.Parallel()

	black := colorful.Color{R: 0, G: 0, B: 0}
	white := colorful.Color{R: 1, G: 1, B: 1}

	methods := []DistanceMethod{RGBMethod{}, LABMethod{}, RedmeanMethod{}}
	wantNames := []string{"RGB", "LAB", "Redmean"}

	for i, m := range methods {
		if m.Name() != wantNames[i] {
			t.Errorf("method name = %q, want %q", m.Name(), wantNames[i])
		}
		if d := m.Distance(black, black); d != 0 {
			t.Errorf("%s: distance of a color to itself = %f, want 0", m.Name(), d)
		}
		if d := m.Distance(black, white); d <= 0 {
			t.Errorf("%s: black/white distance = %f, want > 0", m.Name(), d)
		}
		if d1, d2 := m.Distance(black, white), m.Distance(white, black); d1 != d2 {
			t.Errorf("%s: distance not symmetric (%f vs %f)", m.Name(), d1, d2)
		}
	}
}

func TestKNearestFindsExactColor(t *testing.T) {
	p, err := Load("mini24")
	if err != nil {
		t.Fatal(err)
	}
	tree := buildTree(p)

	for i, e := range p.Entries {
		target := [3]float64{float64(e.R), float64(e.G), float64(e.B)}
		got := tree.kNearest(target, 1)
		if len(got) != 1 {
			t.Fatalf("kNearest returned %d indices, want 1", len(got))
		}
		found := p.Entries[got[0]]
		if found.R != e.R || found.G != e.G || found.B != e.B {
			t.Errorf("entry %d (%s): nearest was %s with a different color", i, e.Code, found.Code)
		}
	}
}

func TestKNearestOrdersByDistance(t *testing.T) {
	p, err := Load("classic48")
	if err != nil {
		t.Fatal(err)
	}
	tree := buildTree(p)

	target := [3]float64{128, 128, 128}
	got := tree.kNearest(target, 5)
	if len(got) != 5 {
		t.Fatalf("kNearest returned %d indices, want 5", len(got))
	}
	prev := -1.0
	for _, idx := range got {
		e := p.Entries[idx]
		d := euclidean([3]float64{float64(e.R), float64(e.G), float64(e.B)}, target)
		if d < prev {
			t.Errorf("candidates not ordered closest first: %f after %f", d, prev)
		}
		prev = d
	}
}
