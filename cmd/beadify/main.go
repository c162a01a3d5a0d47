// Command beadify converts a photo into a printable bead-pattern chart.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wbrown/img2bead"
	"github.com/wbrown/img2bead/imageutil"
	"github.com/wbrown/img2bead/palette"
)

const version = "1.0.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("beadify: ")

	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "chart.png",
		"Path to save the chart image")
	width := flag.Int("width", 29,
		"Pattern width in beads (clamped to [1, 120])")
	height := flag.Int("height", 29,
		"Pattern height in beads (clamped to [1, 120])")
	algorithm := flag.String("algorithm", "average",
		"Sampling algorithm: nearest, average, or gradient_enhanced")
	brightness := flag.Int("brightness", 0,
		"Brightness level in [-2, 2]")
	paletteID := flag.String("palette", "classic48",
		"Bead palette id (embedded: classic48, mini24)")
	colorMethod := flag.String("colormethod", "redmean",
		"Color distance method: rgb, lab, or redmean")
	kdSearch := flag.Int("kdsearch", 8,
		"Number of k-d tree candidates per lookup, 0 for a full scan")
	cellSize := flag.Int("cellsize", 40,
		"Rendered cell size in pixels")
	margin := flag.Int("margin", 60,
		"Chart margin in pixels")
	fontPath := flag.String("font", "",
		"Path to a TTF font for chart text (default: built-in bitmap font)")
	grayscale := flag.Bool("grayscale", false,
		"Convert the source to grayscale before sampling")
	blurRadius := flag.Float64("blur", 0,
		"Gaussian blur radius applied to the source, 0 to disable")
	sharpen := flag.Bool("sharpen", false,
		"Apply an unsharp mask to the source")
	outline := flag.Bool("outline", false,
		"Convert the source to edge line art before sampling")
	adaptive := flag.Int("adaptive", 0,
		"Build an N-color palette from the input image instead of -palette")
	adaptiveMethod := flag.String("adaptive-method", "kmeans",
		"Adaptive palette extraction method: kmeans or dominant")
	showStats := flag.Bool("stats", false,
		"Print the per-color bead tally")
	showVersion := flag.Bool("version", false,
		"Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("beadify %s\n", version)
		return
	}
	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	alg, err := img2bead.ParseAlgorithm(strings.ToLower(*algorithm))
	if err != nil {
		log.Fatal(err)
	}

	var method palette.DistanceMethod
	switch strings.ToLower(*colorMethod) {
	case "rgb":
		method = palette.RGBMethod{}
	case "lab":
		method = palette.LABMethod{}
	case "redmean":
		method = palette.RedmeanMethod{}
	default:
		log.Fatalf("invalid color distance method %q, options are rgb, lab, or redmean", *colorMethod)
	}

	begin := time.Now()
	src, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		log.Fatalf("error loading image: %v", err)
	}

	prep := imageutil.PrepareOptions{
		Grayscale:  *grayscale,
		BlurRadius: *blurRadius,
		Sharpen:    *sharpen,
		Outline:    *outline,
	}
	if !prep.IsZero() {
		src = imageutil.Prepare(src, prep)
	}
	loadDone := time.Now()

	useID := *paletteID
	if *adaptive > 0 {
		extractMethod, err := palette.ParseExtractMethod(strings.ToLower(*adaptiveMethod))
		if err != nil {
			log.Fatal(err)
		}
		useID = "adaptive"
		if _, err := palette.Extract(src, useID, *adaptive, extractMethod); err != nil {
			log.Fatalf("error extracting palette: %v", err)
		}
		log.Printf("extracted %d-color palette from %s (%s)",
			*adaptive, *inputFile, extractMethod)
	}

	resolver := palette.NewResolver(
		palette.WithMethod(method),
		palette.WithKdSearch(*kdSearch),
	)
	renderer := img2bead.NewRenderer(
		img2bead.WithDimensions(clampSize(*width), clampSize(*height)),
		img2bead.WithAlgorithm(alg),
		img2bead.WithBrightness(*brightness),
		img2bead.WithPalette(useID),
		img2bead.WithResolver(resolver),
		img2bead.WithCellSize(*cellSize),
		img2bead.WithMargin(*margin),
		img2bead.WithFontPath(*fontPath),
	)

	chart, stats, err := renderer.GenerateImage(src)
	if err != nil {
		log.Fatalf("error generating chart: %v", err)
	}
	generateDone := time.Now()

	if err := imageutil.SaveImage(chart, *outputFile); err != nil {
		log.Fatalf("error writing chart: %v", err)
	}

	log.Printf("chart written to %s", *outputFile)
	log.Printf("load time: %v", loadDone.Sub(begin))
	log.Printf("generation time: %v", generateDone.Sub(loadDone))

	hits, misses, hitRate := resolver.CacheStats()
	log.Printf("resolver cache: %d hits, %d misses (%.1f%% hit rate)",
		hits, misses, hitRate*100)

	if *showStats {
		total := 0
		for _, s := range stats {
			total += s.Count
		}
		fmt.Printf("%d beads, %d colors:\n", total, len(stats))
		for _, s := range stats {
			fmt.Printf("  %-4s %-16s %5d\n", s.Entry.Code, s.Entry.Name, s.Count)
		}
	}
}

// clampSize limits a requested pattern edge to the supported range.
func clampSize(v int) int {
	if v < 1 {
		return 1
	}
	if v > img2bead.MaxTargetSize {
		return img2bead.MaxTargetSize
	}
	return v
}
