package format

import "agg_go/internal/basics"

// RGB565 packs one opaque pixel into a 16-bit word as RRRRRGGGGGGBBBBB,
// in either byte order.

func rgb565Unpack(word uint16) RGBA8 {
	r := basics.Int8u(word>>11) & 0x1F
	g := basics.Int8u(word>>5) & 0x3F
	b := basics.Int8u(word) & 0x1F
	return RGBA8{R: expandBits(r, 5), G: expandBits(g, 6), B: expandBits(b, 5), A: 255}
}

func rgb565Pack(p RGBA8) uint16 {
	r := uint16(compressBits(p.R, 5))
	g := uint16(compressBits(p.G, 6))
	b := uint16(compressBits(p.B, 5))
	return (r << 11) | (g << 5) | b
}

func rgb565ToStraightRGBA8(le bool) func(src []byte, dst []RGBA8, count int, pal *Palette) {
	return func(src []byte, dst []RGBA8, count int, _ *Palette) {
		for i := 0; i < count; i++ {
			o := i * 2
			var word uint16
			if le {
				word = uint16(src[o]) | uint16(src[o+1])<<8
			} else {
				word = uint16(src[o])<<8 | uint16(src[o+1])
			}
			dst[i] = rgb565Unpack(word)
		}
	}
}

func rgb565FromStraightRGBA8(le bool) func(src []RGBA8, dst []byte, count int, pal *Palette) {
	return func(src []RGBA8, dst []byte, count int, _ *Palette) {
		for i := 0; i < count; i++ {
			word := rgb565Pack(src[i])
			o := i * 2
			if le {
				dst[o], dst[o+1] = byte(word), byte(word>>8)
			} else {
				dst[o], dst[o+1] = byte(word>>8), byte(word)
			}
		}
	}
}

func rgb565ToPremulRGBA16(le bool) func(src []byte, dst []RGBA16, count int, pal *Palette) {
	toStraight := rgb565ToStraightRGBA8(le)
	return func(src []byte, dst []RGBA16, count int, _ *Palette) {
		straight := make([]RGBA8, count)
		toStraight(src, straight, count, nil)
		for i := 0; i < count; i++ {
			dst[i] = opaqueToPremulRGBA16(straight[i].R, straight[i].G, straight[i].B)
		}
	}
}

func rgb565FromPremulRGBA16(le bool) func(src []RGBA16, dst []byte, count int, pal *Palette) {
	fromStraight := rgb565FromStraightRGBA8(le)
	return func(src []RGBA16, dst []byte, count int, _ *Palette) {
		straight := make([]RGBA8, count)
		for i := 0; i < count; i++ {
			straight[i] = FromPremulRGBA16Pixel(src[i])
		}
		fromStraight(straight, dst, count, nil)
	}
}

var rgb565LEDescriptor = &Descriptor{
	ID:                RGB565LE,
	Name:              "RGB565LE",
	BitsPerPixel:      16,
	HasAlpha:          false,
	IsPacked:          true,
	ToStraightRGBA8:   rgb565ToStraightRGBA8(true),
	FromStraightRGBA8: rgb565FromStraightRGBA8(true),
	ToPremulRGBA16:    rgb565ToPremulRGBA16(true),
	FromPremulRGBA16:  rgb565FromPremulRGBA16(true),
}

var rgb565BEDescriptor = &Descriptor{
	ID:                RGB565BE,
	Name:              "RGB565BE",
	BitsPerPixel:      16,
	HasAlpha:          false,
	IsPacked:          true,
	ToStraightRGBA8:   rgb565ToStraightRGBA8(false),
	FromStraightRGBA8: rgb565FromStraightRGBA8(false),
	ToPremulRGBA16:    rgb565ToPremulRGBA16(false),
	FromPremulRGBA16:  rgb565FromPremulRGBA16(false),
}
