package imageutil

import (
	"image/color"
	"testing"
)

func TestRGBColorRoundTrip(t *testing.T) {
	t.Parallel()

	orig := RGB{R: 12, G: 200, B: 99}
	got := RGBFromColor(orig.ToColor())
	if got != orig {
		t.Errorf("round trip gave %+v, want %+v", got, orig)
	}

	if c := (RGB{R: 255}).ToColor(); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("ToColor gave %+v", c)
	}
}

func TestSetGetRGB(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(4, 4)
	want := RGB{R: 10, G: 20, B: 30}
	img.SetRGB(2, 3, want)
	if got := img.GetRGB(2, 3); got != want {
		t.Errorf("GetRGB = %+v, want %+v", got, want)
	}
	if got := img.GetRGB(0, 0); got != (RGB{}) {
		t.Errorf("untouched pixel = %+v, want zero", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	img := CreateSolidImage(3, 3, RGB{R: 50, G: 60, B: 70})
	clone := img.Clone()

	clone.SetRGB(1, 1, RGB{R: 255})
	if got := img.GetRGB(1, 1); got != (RGB{R: 50, G: 60, B: 70}) {
		t.Errorf("mutating the clone changed the original: %+v", got)
	}
}

func TestFillRectClips(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(4, 4)
	fill := RGB{R: 100, G: 100, B: 100}

	// Partially off-canvas rectangles fill only the overlap.
	img.FillRect(2, 2, 10, 10, fill)
	if got := img.GetRGB(3, 3); got != fill {
		t.Errorf("inside overlap = %+v, want %+v", got, fill)
	}
	if got := img.GetRGB(1, 1); got != (RGB{}) {
		t.Errorf("outside rect = %+v, want zero", got)
	}

	// Fully off-canvas is a no-op, not a panic.
	img.FillRect(-20, -20, 5, 5, fill)
	img.FillRect(100, 100, 5, 5, fill)
}

func TestLinesAndBorder(t *testing.T) {
	t.Parallel()

	c := RGB{R: 1, G: 2, B: 3}

	img := NewRGBAImage(10, 10)
	img.HLine(2, 8, 4, 2, c)
	if img.GetRGB(2, 4) != c || img.GetRGB(7, 5) != c {
		t.Error("HLine did not cover its span and thickness")
	}
	if img.GetRGB(8, 4) == c || img.GetRGB(2, 6) == c {
		t.Error("HLine painted past its end or thickness")
	}

	img = NewRGBAImage(10, 10)
	img.VLine(4, 2, 8, 2, c)
	if img.GetRGB(4, 2) != c || img.GetRGB(5, 7) != c {
		t.Error("VLine did not cover its span and thickness")
	}
	if img.GetRGB(4, 8) == c || img.GetRGB(6, 2) == c {
		t.Error("VLine painted past its end or thickness")
	}

	img = NewRGBAImage(10, 10)
	img.Border(1, 1, 8, 8, 1, c)
	for _, p := range [][2]int{{1, 1}, {8, 1}, {1, 8}, {8, 8}, {4, 1}, {1, 4}, {8, 4}, {4, 8}} {
		if img.GetRGB(p[0], p[1]) != c {
			t.Errorf("border missing at (%d, %d)", p[0], p[1])
		}
	}
	if img.GetRGB(4, 4) == c {
		t.Error("border painted the interior")
	}
	if img.GetRGB(0, 0) == c {
		t.Error("border painted outside the rectangle")
	}
}

func TestResizeNearestKeepsPaletteExact(t *testing.T) {
	t.Parallel()

	src := CreateCheckerboardImage(32, 32, 4)
	dst := Resize(src, 8, 8, InterpolationNearest)

	if dst.Width() != 8 || dst.Height() != 8 {
		t.Fatalf("resized to %dx%d, want 8x8", dst.Width(), dst.Height())
	}
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := dst.GetRGB(x, y)
			if got != black && got != white {
				t.Fatalf("pixel (%d,%d) = %+v: nearest neighbor introduced a new color", x, y, got)
			}
		}
	}
}

func TestResizeSolidStaysSolid(t *testing.T) {
	t.Parallel()

	c := RGB{R: 90, G: 140, B: 200}
	src := CreateSolidImage(40, 40, c)

	for _, interp := range []Interpolation{InterpolationArea, InterpolationLinear, InterpolationNearest} {
		dst := Resize(src, 7, 13, interp)
		want := CreateSolidImage(7, 13, c)
		if diff := CalculateMaxDiff(dst, want); diff > 1 {
			t.Errorf("interp %d: max channel drift %d on a solid image", interp, diff)
		}
	}
}

func TestGrayImageAccessors(t *testing.T) {
	t.Parallel()

	img := NewGrayImage(3, 3)
	img.SetGrayValue(1, 2, 200)
	if got := img.GetGray(1, 2); got != 200 {
		t.Errorf("GetGray = %d, want 200", got)
	}
	if img.Width() != 3 || img.Height() != 3 {
		t.Errorf("dimensions = %dx%d, want 3x3", img.Width(), img.Height())
	}
}

func TestGrayImageFromImageUsesLuma(t *testing.T) {
	t.Parallel()

	src := CreateSolidImage(2, 2, RGB{R: 255, G: 0, B: 0})
	gray := GrayImageFromImage(src)

	// Pure red lands well below mid-gray under any standard luma weighting.
	if got := gray.GetGray(0, 0); got < 40 || got > 100 {
		t.Errorf("red converted to gray %d, want a dark value", got)
	}
}
