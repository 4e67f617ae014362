package kernel

import (
	"testing"

	"agg_go/internal/format"
)

func solidGrid(width, height int, r, g, b, a uint8) [][]format.RGBA16 {
	p := format.ToPremulRGBA16Pixel(r, g, b, a)
	grid := make([][]format.RGBA16, height)
	for y := range grid {
		grid[y] = make([]format.RGBA16, width)
		for x := range grid[y] {
			grid[y][x] = p
		}
	}
	return grid
}

func TestBoxBlurExpandsDimensions(t *testing.T) {
	grid := solidGrid(8, 8, 100, 100, 100, 255)
	out := BoxBlur(grid, 2)
	if len(out) != 12 {
		t.Fatalf("height = %d, want 12 (8 + 2*2)", len(out))
	}
	if len(out[0]) != 12 {
		t.Fatalf("width = %d, want 12 (8 + 2*2)", len(out[0]))
	}
}

func TestBoxBlurUniformInteriorUnchanged(t *testing.T) {
	grid := solidGrid(10, 10, 50, 60, 70, 255)
	out := BoxBlur(grid, 1)
	// Interior pixels fully surrounded by same-colored samples should
	// reproduce the source color exactly; only the transparent-padded
	// border differs.
	center := out[5][5]
	straight := format.FromPremulRGBA16Pixel(center)
	if straight.R != 50 || straight.G != 60 || straight.B != 70 || straight.A != 255 {
		t.Fatalf("interior blurred pixel = %+v, want {50,60,70,255}", straight)
	}
}

func TestBoxBlurEdgeFadesTowardTransparent(t *testing.T) {
	grid := solidGrid(4, 4, 255, 0, 0, 255)
	out := BoxBlur(grid, 2)
	corner := out[0][0]
	straight := format.FromPremulRGBA16Pixel(corner)
	if straight.A >= 255 {
		t.Fatalf("corner pixel alpha = %d, want < 255 (transparent padding should dilute it)", straight.A)
	}
}

func TestBoxBlurZeroRadiusNoop(t *testing.T) {
	grid := solidGrid(3, 3, 1, 2, 3, 255)
	out := BoxBlur(grid, 0)
	if len(out) != 3 || len(out[0]) != 3 {
		t.Fatalf("zero radius should not resize grid, got %dx%d", len(out[0]), len(out))
	}
}
