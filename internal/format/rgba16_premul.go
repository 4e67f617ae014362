package format

import "agg_go/internal/basics"

func rgba16PremulToStraightRGBA8(src []byte, dst []RGBA8, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		o := i * 8
		p := rgba16Read(src, o)
		dst[i] = FromPremulRGBA16Pixel(p)
	}
}

func rgba16PremulFromStraightRGBA8(src []RGBA8, dst []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		p := ToPremulRGBA16Pixel(src[i].R, src[i].G, src[i].B, src[i].A)
		rgba16Write(dst, i*8, p)
	}
}

func rgba16PremulToPremulRGBA16(src []byte, dst []RGBA16, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		dst[i] = rgba16Read(src, i*8)
	}
}

func rgba16PremulFromPremulRGBA16(src []RGBA16, dst []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		rgba16Write(dst, i*8, src[i])
	}
}

func rgba16PremulBlendUnderPremul(dst []RGBA16, src []byte, count int, _ *Palette) {
	for i := 0; i < count; i++ {
		BlendUnderPremulPixel(&dst[i], rgba16Read(src, i*8))
	}
}

func rgba16Read(buf []byte, o int) RGBA16 {
	return RGBA16{
		R: basics.Int16u(buf[o]) | basics.Int16u(buf[o+1])<<8,
		G: basics.Int16u(buf[o+2]) | basics.Int16u(buf[o+3])<<8,
		B: basics.Int16u(buf[o+4]) | basics.Int16u(buf[o+5])<<8,
		A: basics.Int16u(buf[o+6]) | basics.Int16u(buf[o+7])<<8,
	}
}

func rgba16Write(buf []byte, o int, p RGBA16) {
	buf[o], buf[o+1] = byte(p.R), byte(p.R>>8)
	buf[o+2], buf[o+3] = byte(p.G), byte(p.G>>8)
	buf[o+4], buf[o+5] = byte(p.B), byte(p.B>>8)
	buf[o+6], buf[o+7] = byte(p.A), byte(p.A>>8)
}

// rgba16PremulDescriptor is the canonical internal working format (spec §1).
// Filter, Composite and Matte nodes write their intermediates in this
// layout; Source and Sink buffers keep whatever registered format they were
// given, and Affine and NinePatch intermediates keep their input's format.
var rgba16PremulDescriptor = &Descriptor{
	ID:                RGBA16Premultiplied,
	Name:              "RGBA16Premultiplied",
	BitsPerPixel:      64,
	HasAlpha:          true,
	IsPremultiplied:   true,
	ToStraightRGBA8:   rgba16PremulToStraightRGBA8,
	FromStraightRGBA8: rgba16PremulFromStraightRGBA8,
	ToPremulRGBA16:    rgba16PremulToPremulRGBA16,
	FromPremulRGBA16:  rgba16PremulFromPremulRGBA16,
	BlendUnderPremul:  rgba16PremulBlendUnderPremul,
}
