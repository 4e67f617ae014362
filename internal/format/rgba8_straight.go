package format

import "agg_go/internal/basics"

func rgba8StraightToStraightRGBA8(src []byte, dst []RGBA8, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		o := i * 4
		dst[i] = RGBA8{R: basics.Int8u(src[o]), G: basics.Int8u(src[o+1]), B: basics.Int8u(src[o+2]), A: basics.Int8u(src[o+3])}
	}
}

func rgba8StraightFromStraightRGBA8(src []RGBA8, dst []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		o := i * 4
		dst[o], dst[o+1], dst[o+2], dst[o+3] = byte(src[i].R), byte(src[i].G), byte(src[i].B), byte(src[i].A)
	}
}

func rgba8StraightToPremulRGBA16(src []byte, dst []RGBA16, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		o := i * 4
		dst[i] = ToPremulRGBA16Pixel(basics.Int8u(src[o]), basics.Int8u(src[o+1]), basics.Int8u(src[o+2]), basics.Int8u(src[o+3]))
	}
}

func rgba8StraightFromPremulRGBA16(src []RGBA16, dst []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		o := i * 4
		p := FromPremulRGBA16Pixel(src[i])
		dst[o], dst[o+1], dst[o+2], dst[o+3] = byte(p.R), byte(p.G), byte(p.B), byte(p.A)
	}
}

func rgba8StraightBlendUnderPremul(dst []RGBA16, src []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		o := i * 4
		p := ToPremulRGBA16Pixel(basics.Int8u(src[o]), basics.Int8u(src[o+1]), basics.Int8u(src[o+2]), basics.Int8u(src[o+3]))
		BlendUnderPremulPixel(&dst[i], p)
	}
}

func rgba8StraightBlendUnderStraight(dst []RGBA8, src []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		o := i * 4
		s := RGBA8{R: basics.Int8u(src[o]), G: basics.Int8u(src[o+1]), B: basics.Int8u(src[o+2]), A: basics.Int8u(src[o+3])}
		sp := ToPremulRGBA16Pixel(s.R, s.G, s.B, s.A)
		dp := ToPremulRGBA16Pixel(dst[i].R, dst[i].G, dst[i].B, dst[i].A)
		BlendUnderPremulPixel(&dp, sp)
		dst[i] = FromPremulRGBA16Pixel(dp)
	}
}

var rgba8StraightDescriptor = &Descriptor{
	ID:                 RGBA8Straight,
	Name:               "RGBA8Straight",
	BitsPerPixel:       32,
	HasAlpha:           true,
	IsPremultiplied:    false,
	ToStraightRGBA8:    rgba8StraightToStraightRGBA8,
	FromStraightRGBA8:  rgba8StraightFromStraightRGBA8,
	ToPremulRGBA16:     rgba8StraightToPremulRGBA16,
	FromPremulRGBA16:   rgba8StraightFromPremulRGBA16,
	BlendUnderPremul:   rgba8StraightBlendUnderPremul,
	BlendUnderStraight: rgba8StraightBlendUnderStraight,
}
