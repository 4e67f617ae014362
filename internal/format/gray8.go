package format

import "agg_go/internal/basics"

// Gray8 stores one luminance byte per pixel with no alpha channel; every
// pixel is treated as fully opaque on conversion (spec §3 format list).

func gray8ToStraightRGBA8(src []byte, dst []RGBA8, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		g := basics.Int8u(src[i])
		dst[i] = RGBA8{R: g, G: g, B: g, A: 255}
	}
}

func gray8FromStraightRGBA8(src []RGBA8, dst []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		dst[i] = byte(grayFromRGB(src[i].R, src[i].G, src[i].B))
	}
}

func gray8ToPremulRGBA16(src []byte, dst []RGBA16, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		g := basics.Int8u(src[i])
		dst[i] = opaqueToPremulRGBA16(g, g, g)
	}
}

func gray8FromPremulRGBA16(src []RGBA16, dst []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		p := FromPremulRGBA16Pixel(src[i])
		dst[i] = byte(grayFromRGB(p.R, p.G, p.B))
	}
}

// grayFromRGB uses the ITU-R BT.601 luma weights as integer per-mille
// coefficients (299/587/114), rounded to the nearest value.
func grayFromRGB(r, g, b basics.Int8u) basics.Int8u {
	return basics.Int8u((299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000)
}

var gray8Descriptor = &Descriptor{
	ID:                Gray8,
	Name:              "Gray8",
	BitsPerPixel:      8,
	HasAlpha:          false,
	ToStraightRGBA8:   gray8ToStraightRGBA8,
	FromStraightRGBA8: gray8FromStraightRGBA8,
	ToPremulRGBA16:    gray8ToPremulRGBA16,
	FromPremulRGBA16:  gray8FromPremulRGBA16,
}
