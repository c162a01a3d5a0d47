package palette

import (
	"fmt"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/img2bead/imageutil"
)

func TestExtractDominantFromQuadrants(t *testing.T) {
	src := imageutil.CreateQuadrantImage(64, 64, [4]imageutil.RGB{
		{R: 20, G: 20, B: 20},
		{R: 220, G: 30, B: 30},
		{R: 30, G: 90, B: 200},
		{R: 240, G: 240, B: 240},
	})

	p, err := Extract(src, "test-quadrants", 4, ExtractMethodDominant)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "test-quadrants" {
		t.Errorf("palette id = %q, want test-quadrants", p.ID)
	}
	if len(p.Entries) == 0 || len(p.Entries) > 4 {
		t.Fatalf("got %d entries, want 1..4", len(p.Entries))
	}

	assertAdaptiveShape(t, p)

	// The extracted palette registers itself and is immediately usable
	// by a resolver.
	loaded, err := Load("test-quadrants")
	if err != nil {
		t.Fatal(err)
	}
	if loaded != p {
		t.Error("Load did not return the extracted palette")
	}
	if _, err := NewResolver().Resolve(20, 20, 20, "test-quadrants"); err != nil {
		t.Errorf("resolving against the extracted palette: %v", err)
	}
}

func TestExtractKMeansFromGradient(t *testing.T) {
	src := imageutil.CreateGradientImage(96, 32)

	p, err := Extract(src, "test-gradient", 6, ExtractMethodKMeans)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Entries) == 0 || len(p.Entries) > 6 {
		t.Fatalf("got %d entries, want 1..6", len(p.Entries))
	}
	assertAdaptiveShape(t, p)
}

func TestExtractRejectsBadSize(t *testing.T) {
	src := imageutil.CreateSolidImage(8, 8, imageutil.RGB{R: 100, G: 100, B: 100})
	for _, size := range []int{0, -3} {
		if _, err := Extract(src, "test-bad-size", size, ExtractMethodDominant); err == nil {
			t.Errorf("Extract with size %d: expected an error", size)
		}
	}
}

func TestExtractSolidImage(t *testing.T) {
	src := imageutil.CreateSolidImage(16, 16, imageutil.RGB{R: 60, G: 120, B: 180})

	// Asking for more colors than the image has collapses to what is
	// actually there instead of failing.
	p, err := Extract(src, "test-solid", 8, ExtractMethodDominant)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Entries) == 0 || len(p.Entries) > 8 {
		t.Fatalf("got %d entries, want 1..8", len(p.Entries))
	}
	assertAdaptiveShape(t, p)
}

func TestParseExtractMethod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    ExtractMethod
		wantErr bool
	}{
		{"dominant", ExtractMethodDominant, false},
		{"kmeans", ExtractMethodKMeans, false},
		{"median-cut", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseExtractMethod(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseExtractMethod(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseExtractMethod(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want || got.String() != tc.in {
			t.Errorf("ParseExtractMethod(%q) = %v (%q)", tc.in, got, got.String())
		}
	}
}

// assertAdaptiveShape checks the invariants every extracted palette must
// hold: sequential D-codes and a darkest-to-brightest entry order.
func assertAdaptiveShape(t *testing.T, p *Palette) {
	t.Helper()

	prev := -1.0
	for i, e := range p.Entries {
		wantCode := fmt.Sprintf("D%02d", i+1)
		if e.Code != wantCode {
			t.Errorf("entry %d code = %q, want %q", i, e.Code, wantCode)
		}
		// Small slack for the float-to-uint8 round trip of the stored
		// display colors.
		lum := linearLuminance(e)
		if lum < prev-0.01 {
			t.Errorf("entry %s (%d,%d,%d) is darker than its predecessor",
				e.Code, e.R, e.G, e.B)
		}
		if lum > prev {
			prev = lum
		}
	}
}

func linearLuminance(e Entry) float64 {
	c := colorful.Color{
		R: float64(e.R) / 255,
		G: float64(e.G) / 255,
		B: float64(e.B) / 255,
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
