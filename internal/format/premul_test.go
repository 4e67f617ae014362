package format

import (
	"testing"

	"agg_go/internal/basics"
)

func TestPremulRoundTripZeroAlpha(t *testing.T) {
	p := ToPremulRGBA16Pixel(200, 100, 50, 0)
	out := FromPremulRGBA16Pixel(p)
	if out.A != 0 {
		t.Fatalf("zero-alpha input produced nonzero recovered alpha %d", out.A)
	}
}

func TestPremulRoundTripOpaqueAlpha(t *testing.T) {
	p := ToPremulRGBA16Pixel(200, 100, 50, 255)
	out := FromPremulRGBA16Pixel(p)
	if out.A != 255 {
		t.Fatalf("opaque-alpha input recovered alpha %d, want 255", out.A)
	}
	if !IsOpaquePremulAlpha(p.A) {
		t.Fatalf("IsOpaquePremulAlpha false for fully opaque source")
	}
}

func TestPremulRoundTripWithinTolerance(t *testing.T) {
	const tolerance = 1
	total, within := 0, 0
	for a := 1; a < 256; a++ {
		for _, r := range []basics.Int8u{0, 1, 17, 63, 64, 128, 200, 254, 255} {
			p := ToPremulRGBA16Pixel(r, r, r, basics.Int8u(a))
			out := FromPremulRGBA16Pixel(p)
			total++
			diff := int(out.R) - int(r)
			if diff < 0 {
				diff = -diff
			}
			if diff <= tolerance {
				within++
			}
		}
	}
	if ratio := float64(within) / float64(total); ratio < 0.999 {
		t.Fatalf("round-trip within +-%d: %d/%d = %.4f, want >= 0.999", tolerance, within, total, ratio)
	}
}

func TestBlendUnderPremulTransparentSourceNoop(t *testing.T) {
	dst := RGBA16{R: 10, G: 20, B: 30, A: 40}
	src := ToPremulRGBA16Pixel(1, 2, 3, 0)
	want := dst
	BlendUnderPremulPixel(&dst, src)
	if dst != want {
		t.Fatalf("transparent source mutated dst: got %+v, want %+v", dst, want)
	}
}

func TestBlendUnderPremulOpaqueSourceOverwrites(t *testing.T) {
	dst := RGBA16{R: 10, G: 20, B: 30, A: 40}
	src := ToPremulRGBA16Pixel(5, 6, 7, 255)
	BlendUnderPremulPixel(&dst, src)
	if dst != src {
		t.Fatalf("opaque source did not overwrite dst: got %+v, want %+v", dst, src)
	}
}
