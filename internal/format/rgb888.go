package format

import "agg_go/internal/basics"

// RGB888 and BGR888 store three full-precision opaque channel bytes per
// pixel, differing only in byte order (spec §3 format list).

func rgb888ToStraightRGBA8(bgr bool) func(src []byte, dst []RGBA8, count int, pal *Palette) {
	return func(src []byte, dst []RGBA8, count int, _ *Palette) {
		for i := 0; i < count; i++ {
			o := i * 3
			if bgr {
				dst[i] = RGBA8{R: basics.Int8u(src[o+2]), G: basics.Int8u(src[o+1]), B: basics.Int8u(src[o]), A: 255}
			} else {
				dst[i] = RGBA8{R: basics.Int8u(src[o]), G: basics.Int8u(src[o+1]), B: basics.Int8u(src[o+2]), A: 255}
			}
		}
	}
}

func rgb888FromStraightRGBA8(bgr bool) func(src []RGBA8, dst []byte, count int, pal *Palette) {
	return func(src []RGBA8, dst []byte, count int, _ *Palette) {
		for i := 0; i < count; i++ {
			o := i * 3
			p := src[i]
			if bgr {
				dst[o], dst[o+1], dst[o+2] = byte(p.B), byte(p.G), byte(p.R)
			} else {
				dst[o], dst[o+1], dst[o+2] = byte(p.R), byte(p.G), byte(p.B)
			}
		}
	}
}

func rgb888ToPremulRGBA16(bgr bool) func(src []byte, dst []RGBA16, count int, pal *Palette) {
	toStraight := rgb888ToStraightRGBA8(bgr)
	return func(src []byte, dst []RGBA16, count int, _ *Palette) {
		straight := make([]RGBA8, count)
		toStraight(src, straight, count, nil)
		for i := 0; i < count; i++ {
			dst[i] = opaqueToPremulRGBA16(straight[i].R, straight[i].G, straight[i].B)
		}
	}
}

func rgb888FromPremulRGBA16(bgr bool) func(src []RGBA16, dst []byte, count int, pal *Palette) {
	fromStraight := rgb888FromStraightRGBA8(bgr)
	return func(src []RGBA16, dst []byte, count int, _ *Palette) {
		straight := make([]RGBA8, count)
		for i := 0; i < count; i++ {
			straight[i] = FromPremulRGBA16Pixel(src[i])
		}
		fromStraight(straight, dst, count, nil)
	}
}

var rgb888Descriptor = &Descriptor{
	ID:                RGB888,
	Name:              "RGB888",
	BitsPerPixel:      24,
	HasAlpha:          false,
	ToStraightRGBA8:   rgb888ToStraightRGBA8(false),
	FromStraightRGBA8: rgb888FromStraightRGBA8(false),
	ToPremulRGBA16:    rgb888ToPremulRGBA16(false),
	FromPremulRGBA16:  rgb888FromPremulRGBA16(false),
}

var bgr888Descriptor = &Descriptor{
	ID:                BGR888,
	Name:              "BGR888",
	BitsPerPixel:      24,
	HasAlpha:          false,
	ToStraightRGBA8:   rgb888ToStraightRGBA8(true),
	FromStraightRGBA8: rgb888FromStraightRGBA8(true),
	ToPremulRGBA16:    rgb888ToPremulRGBA16(true),
	FromPremulRGBA16:  rgb888FromPremulRGBA16(true),
}
