package format

import "agg_go/internal/basics"

// RGB332 packs one opaque pixel into a byte as RRRGGGBB.

func rgb332ToStraightRGBA8(src []byte, dst []RGBA8, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		b := src[i]
		dst[i] = RGBA8{
			R: expandBits(basics.Int8u(b>>5)&0x07, 3),
			G: expandBits(basics.Int8u(b>>2)&0x07, 3),
			B: expandBits(basics.Int8u(b)&0x03, 2),
			A: 255,
		}
	}
}

func rgb332FromStraightRGBA8(src []RGBA8, dst []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		p := src[i]
		r := compressBits(p.R, 3)
		g := compressBits(p.G, 3)
		b := compressBits(p.B, 2)
		dst[i] = byte(r<<5) | byte(g<<2) | byte(b)
	}
}

func rgb332ToPremulRGBA16(src []byte, dst []RGBA16, count int, _ *Palette) {
	straight := make([]RGBA8, count)
	rgb332ToStraightRGBA8(src, straight, count, nil)
	for i := 0; i < count; i++ {
		dst[i] = opaqueToPremulRGBA16(straight[i].R, straight[i].G, straight[i].B)
	}
}

func rgb332FromPremulRGBA16(src []RGBA16, dst []byte, count int, _ *Palette) {
	straight := make([]RGBA8, count)
	for i := 0; i < count; i++ {
		straight[i] = FromPremulRGBA16Pixel(src[i])
	}
	rgb332FromStraightRGBA8(straight, dst, count, nil)
}

var rgb332Descriptor = &Descriptor{
	ID:                RGB332,
	Name:              "RGB332",
	BitsPerPixel:      8,
	HasAlpha:          false,
	IsPacked:          true,
	ToStraightRGBA8:   rgb332ToStraightRGBA8,
	FromStraightRGBA8: rgb332FromStraightRGBA8,
	ToPremulRGBA16:    rgb332ToPremulRGBA16,
	FromPremulRGBA16:  rgb332FromPremulRGBA16,
}
