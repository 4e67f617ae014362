package format

// genericBlendUnderPremul composites count source pixels (native desc
// format) under an existing RGBA16_Premultiplied row, for descriptors that
// don't register a fused fast path in their BlendUnderPremul field
// (spec §4.1: "direct path or compose via RGBA16Premultiplied intermediate").
func genericBlendUnderPremul(desc *Descriptor, dst []RGBA16, src []byte, count int, pal *Palette) {
	scratch := make([]RGBA16, count)
	desc.ToPremulRGBA16(src, scratch, count, pal)
	for i := 0; i < count; i++ {
		BlendUnderPremulPixel(&dst[i], scratch[i])
	}
}

// genericBlendUnderStraight composites count source pixels (native desc
// format) under an existing straight-alpha RGBA8 row, by round-tripping
// both sides through the premultiplied working format. This is the
// fallback used by every format except RGBA8Straight itself, which has a
// direct path.
func genericBlendUnderStraight(desc *Descriptor, dst []RGBA8, src []byte, count int, pal *Palette) {
	srcPremul := make([]RGBA16, count)
	desc.ToPremulRGBA16(src, srcPremul, count, pal)
	dstPremul := make([]RGBA16, count)
	for i := 0; i < count; i++ {
		dstPremul[i] = ToPremulRGBA16Pixel(dst[i].R, dst[i].G, dst[i].B, dst[i].A)
	}
	for i := 0; i < count; i++ {
		BlendUnderPremulPixel(&dstPremul[i], srcPremul[i])
	}
	for i := 0; i < count; i++ {
		dst[i] = FromPremulRGBA16Pixel(dstPremul[i])
	}
}
