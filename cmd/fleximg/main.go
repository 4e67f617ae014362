// Command fleximg is the reference CLI harness for the pixel-format DAG
// rendering pipeline (spec §6 "Command surface (reference CLI)"). It is
// not part of the core specification: it exists only to exercise the
// pipeline end to end, decoding an input image, running it through an
// optional affine transform and filter chain, and writing the result.
package main

import (
	"flag"
	"fmt"
	"os"

	agg "agg_go"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fleximg: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("fleximg", flag.ContinueOnError)
	output := fs.String("o", "", "output path (required)")
	brightness := fs.Float64("brightness", 1.0, "brightness multiplier filter")
	grayscale := fs.Bool("grayscale", false, "grayscale filter")
	alpha := fs.Float64("alpha", 1.0, "alpha-scale filter")
	blur := fs.Int("blur", 0, "box-blur radius in pixels")
	rotate := fs.Float64("rotate", 0, "affine rotation in degrees around canvas center")
	scale := fs.Float64("scale", 1.0, "affine uniform scale factor")
	preview := fs.Bool("preview", false, "open a window and show the result before exit")
	verbose := fs.Bool("verbose", false, "print per-tile and pool allocator statistics to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("missing required -o output path")
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing input path")
	}
	inputPath := fs.Arg(0)

	src, err := decodeToImage(inputPath)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inputPath, err)
	}

	root := agg.Source("input", src)

	if *rotate != 0 || *scale != 1.0 {
		root = agg.Affine("rotate-scale", root, rotateScaleMatrix(*rotate, *scale, src.Width(), src.Height()))
	}
	if *brightness != 1.0 {
		root = agg.Brightness("brightness", root, *brightness)
	}
	if *grayscale {
		root = agg.Grayscale("grayscale", root)
	}
	if *alpha != 1.0 {
		root = agg.Alpha("alpha", root, *alpha)
	}
	if *blur > 0 {
		root = agg.BoxBlur("blur", root, *blur)
	}

	out := agg.NewImage(agg.RGBA8Straight, src.Width(), src.Height())
	const tileSize = 64
	pipe := agg.NewPipeline(agg.DefaultPoolConfig(tileSize))
	sink := pipe.Sink("output", root, out)

	sched, err := pipe.Execute(sink, src.Width(), src.Height(), tileSize)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	if *verbose {
		failed := 0
		for _, ok := range sched.TileStatus {
			if !ok {
				failed++
			}
		}
		stats := pipe.PoolStats()
		fmt.Fprintf(os.Stderr, "fleximg: %d tiles (%d failed), pool hits=%d misses=%d\n",
			len(sched.TileStatus), failed, stats.Hits, stats.Misses)
	}

	if err := encodeImage(*output, out); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}

	if *preview {
		if err := showPreview(out); err != nil {
			fmt.Fprintf(os.Stderr, "fleximg: preview: %v\n", err)
		}
	}

	return nil
}

func rotateScaleMatrix(degrees, scale float64, w, h int) agg.AffineMatrix {
	m := agg.Identity()
	cx, cy := float64(w)/2, float64(h)/2
	m = translate(m, -cx, -cy)
	if degrees != 0 {
		m = rotate(m, degrees)
	}
	if scale != 1.0 {
		m = scaleMatrix(m, scale)
	}
	m = translate(m, cx, cy)
	return m
}
