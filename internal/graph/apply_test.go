package graph

import (
	"testing"

	"agg_go/internal/format"
	"agg_go/internal/imagebuf"
	"agg_go/internal/transform"
)

func newTestEvaluator(t *testing.T, tile int) *Evaluator {
	t.Helper()
	pool := NewEntryPool(8, tile*tile*8, 8)
	return NewEvaluator(pool)
}

func fillRGBA8(buf *imagebuf.Buffer, r, g, b, a byte) {
	for y := 0; y < buf.Height(); y++ {
		row := buf.Row(y)
		for x := 0; x < buf.Width(); x++ {
			o := x * 4
			row[o], row[o+1], row[o+2], row[o+3] = r, g, b, a
		}
	}
}

// Scenario A (spec §8): brightness(1.0) is an identity.
func TestScenarioBrightnessIdentity(t *testing.T) {
	src := imagebuf.New(format.RGBA8Straight, 4, 4)
	fillRGBA8(src, 128, 128, 128, 128)

	root := NewSource("input", src)
	filt := NewFilter("brightness", root, FilterBrightness, 1.0)
	out := imagebuf.New(format.RGBA8Straight, 4, 4)
	sink := NewSink("out", filt, out)

	e := newTestEvaluator(t, 4)
	if err := DetectCycle(sink); err != nil {
		t.Fatalf("unexpected cycle: %v", err)
	}
	res, err := e.Apply(sink, RenderRequest{Width: 4, Height: 4})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	for y := 0; y < 4; y++ {
		row := out.Row(y)
		for x := 0; x < 4; x++ {
			o := x * 4
			if row[o] != 128 || row[o+1] != 128 || row[o+2] != 128 || row[o+3] != 128 {
				t.Fatalf("pixel (%d,%d) = %v, want 128,128,128,128", x, y, row[o:o+4])
			}
		}
	}
}

// Scenario B (spec §8): brightness(2.0) clamps RGB, preserves alpha.
func TestScenarioBrightnessClamp(t *testing.T) {
	src := imagebuf.New(format.RGBA8Straight, 4, 4)
	fillRGBA8(src, 128, 128, 128, 128)

	root := NewSource("input", src)
	filt := NewFilter("brightness", root, FilterBrightness, 2.0)
	out := imagebuf.New(format.RGBA8Straight, 4, 4)
	sink := NewSink("out", filt, out)

	e := newTestEvaluator(t, 4)
	res, err := e.Apply(sink, RenderRequest{Width: 4, Height: 4})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	row := out.Row(0)
	if row[0] != 255 || row[1] != 255 || row[2] != 255 {
		t.Fatalf("brightness x2 should clamp RGB to 255, got %v", row[0:3])
	}
	if row[3] != 128 {
		t.Fatalf("brightness must not touch alpha, got %d", row[3])
	}
}

// Scenario D (spec §8): grayscale of (200,100,50,255) -> y=124.
func TestScenarioGrayscale(t *testing.T) {
	src := imagebuf.New(format.RGBA8Straight, 1, 1)
	fillRGBA8(src, 200, 100, 50, 255)

	root := NewSource("input", src)
	filt := NewFilter("gray", root, FilterGrayscale, 0)
	out := imagebuf.New(format.RGBA8Straight, 1, 1)
	sink := NewSink("out", filt, out)

	e := newTestEvaluator(t, 1)
	res, err := e.Apply(sink, RenderRequest{Width: 1, Height: 1})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	row := out.Row(0)
	if row[0] != 124 || row[1] != 124 || row[2] != 124 {
		t.Fatalf("grayscale = %v, want 124,124,124", row[0:3])
	}
	if row[3] != 255 {
		t.Fatalf("grayscale must preserve alpha, got %d", row[3])
	}
}

// Scenario E (spec §8): opaque-over-transparent composite.
func TestScenarioCompositeOpaqueOverTransparent(t *testing.T) {
	base := imagebuf.New(format.RGBA8Straight, 2, 2) // zero-filled: fully transparent
	overlay := imagebuf.New(format.RGBA8Straight, 2, 2)
	fillRGBA8(overlay, 255, 0, 0, 128)

	baseNode := NewSource("base", base)
	overlayNode := NewSource("overlay", overlay)
	comp := NewComposite("composite", baseNode, overlayNode)
	out := imagebuf.New(format.RGBA8Straight, 2, 2)
	sink := NewSink("out", comp, out)

	e := newTestEvaluator(t, 2)
	res, err := e.Apply(sink, RenderRequest{Width: 2, Height: 2})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	row := out.Row(0)
	if row[0] != 255 || row[1] != 0 || row[2] != 0 {
		t.Fatalf("composite RGB = %v, want 255,0,0", row[0:3])
	}
	if row[3] < 126 || row[3] > 130 {
		t.Fatalf("composite alpha = %d, want ~128", row[3])
	}
}

func TestDetectCycleRejectsSelfReferencingComposite(t *testing.T) {
	a := &Node{Kind: KindComposite, Name: "a"}
	a.CompositeInputs = []*Node{a}
	if err := DetectCycle(a); err == nil {
		t.Fatal("expected a cycle error, got nil")
	}
}

// TestDistributorEvaluatesUpstreamOnce verifies the fan-out cache: a
// composite whose two inputs both reference the same Distributor wrapper
// observes the shared upstream's RenderResult without re-running it twice
// per tile (spec §4.3 expansion).
func TestDistributorEvaluatesUpstreamOnce(t *testing.T) {
	src := imagebuf.New(format.RGBA8Straight, 2, 2)
	fillRGBA8(src, 10, 20, 30, 255)

	base := NewSource("shared", src)
	dist := NewDistributor("dist", base)
	comp := NewComposite("composite", dist, dist)
	out := imagebuf.New(format.RGBA8Straight, 2, 2)
	sink := NewSink("out", comp, out)

	e := newTestEvaluator(t, 2)
	res, err := e.Apply(sink, RenderRequest{Width: 2, Height: 2})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	if dist.distCache == nil {
		t.Fatal("expected the distributor to have cached a result")
	}
	row := out.Row(0)
	if row[0] != 10 || row[1] != 20 || row[2] != 30 {
		t.Fatalf("composited pixel = %v, want 10,20,30", row[0:3])
	}
}

// TestMatteReplacesAlphaWithMaskLuminance verifies the matte node's core
// contract: output alpha tracks the mask's luminance, color comes from
// the color input untouched (spec §4.3 expansion).
func TestMatteReplacesAlphaWithMaskLuminance(t *testing.T) {
	color := imagebuf.New(format.RGBA8Straight, 1, 1)
	fillRGBA8(color, 200, 100, 50, 255)
	mask := imagebuf.New(format.RGBA8Straight, 1, 1)
	fillRGBA8(mask, 124, 124, 124, 255) // luminance of 124 everywhere

	colorNode := NewSource("color", color)
	maskNode := NewSource("mask", mask)
	matte := NewMatte("matte", colorNode, maskNode)
	out := imagebuf.New(format.RGBA8Straight, 1, 1)
	sink := NewSink("out", matte, out)

	e := newTestEvaluator(t, 1)
	res, err := e.Apply(sink, RenderRequest{Width: 1, Height: 1})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	row := out.Row(0)
	if row[3] < 122 || row[3] > 126 {
		t.Fatalf("matte alpha = %d, want ~124", row[3])
	}
}

// TestNinePatchKeepsBorderUnscaled verifies that a nine-patch stretch
// leaves the border region's content addressable at native scale while
// the interior maps through a per-region scale factor (spec §4.3
// expansion).
func TestNinePatchKeepsBorderUnscaled(t *testing.T) {
	src := imagebuf.New(format.RGBA8Straight, 6, 6)
	// Distinct corner marker so we can check the top-left 2x2 border
	// survives untouched at the destination's own top-left corner.
	fillRGBA8(src, 9, 9, 9, 255)
	cornerRow := src.Row(0)
	cornerRow[0], cornerRow[1], cornerRow[2], cornerRow[3] = 1, 2, 3, 255

	srcNode := NewSource("chrome", src)
	border := NinePatchBorder{Left: 2, Right: 2, Top: 2, Bottom: 2}
	np := NewNinePatch("ninepatch", srcNode, border, 12, 12)
	out := imagebuf.New(format.RGBA8Straight, 12, 12)
	sink := NewSink("out", np, out)

	e := newTestEvaluator(t, 12)
	res, err := e.Apply(sink, RenderRequest{Width: 12, Height: 12})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	row := out.Row(0)
	if row[0] != 1 || row[1] != 2 || row[2] != 3 {
		t.Fatalf("nine-patch corner pixel = %v, want 1,2,3", row[0:3])
	}
}

func TestPoolExhaustionPropagatesAsInvalid(t *testing.T) {
	// A pool with one slot and a single 16-byte block cannot hold the
	// filter's 64x64 destination buffer, so its acquisition misses.
	pool := NewEntryPool(1, 16, 1)
	e := NewEvaluator(pool)

	src := imagebuf.New(format.RGBA8Straight, 64, 64)
	root := NewSource("s", src)
	filt := NewFilter("f", root, FilterBrightness, 1.0)

	res, err := e.Apply(filt, RenderRequest{Width: 64, Height: 64})
	if err != nil || res.Valid {
		t.Fatalf("pool exhaustion gave (valid=%v, err=%v), want an invalid result and no error", res.Valid, err)
	}
}

func TestAffineIdentityIsExact(t *testing.T) {
	src := imagebuf.New(format.RGBA8Straight, 4, 4)
	for y := 0; y < 4; y++ {
		row := src.Row(y)
		for x := 0; x < 4; x++ {
			o := x * 4
			row[o], row[o+1], row[o+2], row[o+3] = byte(x*50), byte(y*50), 128, 255
		}
	}

	root := NewSource("input", src)
	aff := NewAffine("identity", root, transform.Identity())
	out := imagebuf.New(format.RGBA8Straight, 4, 4)
	sink := NewSink("out", aff, out)

	e := newTestEvaluator(t, 4)
	res, err := e.Apply(sink, RenderRequest{Width: 4, Height: 4})
	if err != nil || !res.Valid {
		t.Fatalf("apply failed: valid=%v err=%v", res.Valid, err)
	}
	for y := 0; y < 4; y++ {
		gotRow := out.Row(y)
		wantRow := src.Row(y)
		for x := 0; x < 4*4; x++ {
			if gotRow[x] != wantRow[x] {
				t.Fatalf("identity affine mismatch at byte %d, row %d: got %d want %d", x, y, gotRow[x], wantRow[x])
			}
		}
	}
}
