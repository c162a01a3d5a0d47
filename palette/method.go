package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DistanceMethod scores how far apart two colors are. Smaller is closer.
// The resolver is generic over the method so callers can trade accuracy
// for speed, or plug in their own metric.
type DistanceMethod interface {
	Name() string
	Distance(c1, c2 colorful.Color) float64
}

// RGBMethod is plain Euclidean distance in 255-scaled RGB space. Fast and
// predictable, but weights the channels equally even though the eye does
// not.
type RGBMethod struct{}

func (RGBMethod) Name() string { return "RGB" }

func (RGBMethod) Distance(c1, c2 colorful.Color) float64 {
	dr := (c1.R - c2.R) * 255
	dg := (c1.G - c2.G) * 255
	db := (c1.B - c2.B) * 255
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// LABMethod measures distance in CIE-Lab space, which tracks perceived
// color difference much better than raw RGB at the cost of the
// colorspace conversion.
type LABMethod struct{}

func (LABMethod) Name() string { return "LAB" }

func (LABMethod) Distance(c1, c2 colorful.Color) float64 {
	return c1.DistanceLab(c2)
}

// RedmeanMethod is the "redmean" weighted RGB approximation of perceptual
// distance. Nearly as cheap as plain RGB with most of Lab's perceptual
// benefit, so it is the default.
type RedmeanMethod struct{}

func (RedmeanMethod) Name() string { return "Redmean" }

func (RedmeanMethod) Distance(c1, c2 colorful.Color) float64 {
	r1, g1, b1 := c1.R*255, c1.G*255, c1.B*255
	r2, g2, b2 := c2.R*255, c2.G*255, c2.B*255

	rMean := (r1 + r2) / 2
	dr := r1 - r2
	dg := g1 - g2
	db := b1 - b2

	return math.Sqrt(
		(2+rMean/256)*dr*dr +
			4*dg*dg +
			(2+(255-rMean)/256)*db*db)
}
