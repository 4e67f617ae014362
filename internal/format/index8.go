package format

import "agg_go/internal/basics"

// Index8 stores one palette index byte per pixel. An index at or past the
// palette's end (or any index with a nil palette) reads as transparent
// black; FromStraightRGBA8 performs a
// brute-force nearest-color search, since the small palette sizes this
// format targets make a k-d tree or octree unwarranted (spec §4.1:
// "optional palette pointer + size").

func index8ToStraightRGBA8(src []byte, dst []RGBA8, count int, pal *Palette) {
	for i := 0; i < count; i++ {
		dst[i] = paletteLookup(pal, src[i])
	}
}

func index8FromStraightRGBA8(src []RGBA8, dst []byte, count int, pal *Palette) {
	for i := 0; i < count; i++ {
		dst[i] = byte(nearestPaletteIndex(pal, src[i]))
	}
}

func index8ToPremulRGBA16(src []byte, dst []RGBA16, count int, pal *Palette) {
	for i := 0; i < count; i++ {
		p := paletteLookup(pal, src[i])
		dst[i] = ToPremulRGBA16Pixel(p.R, p.G, p.B, p.A)
	}
}

func index8FromPremulRGBA16(src []RGBA16, dst []byte, count int, pal *Palette) {
	for i := 0; i < count; i++ {
		p := FromPremulRGBA16Pixel(src[i])
		dst[i] = byte(nearestPaletteIndex(pal, p))
	}
}

func paletteLookup(pal *Palette, index byte) RGBA8 {
	if pal == nil || int(index) >= len(pal.Entries) {
		return RGBA8{}
	}
	return pal.Entries[index]
}

func nearestPaletteIndex(pal *Palette, c RGBA8) basics.Int8u {
	if pal == nil || len(pal.Entries) == 0 {
		return 0
	}
	best, bestDist := 0, -1
	for i, e := range pal.Entries {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		da := int(e.A) - int(c.A)
		dist := dr*dr + dg*dg + db*db + da*da
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return basics.Int8u(best)
}

var index8Descriptor = &Descriptor{
	ID:                Index8,
	Name:              "Index8",
	BitsPerPixel:      8,
	HasAlpha:          true,
	IsPaletted:        true,
	ToStraightRGBA8:   index8ToStraightRGBA8,
	FromStraightRGBA8: index8FromStraightRGBA8,
	ToPremulRGBA16:    index8ToPremulRGBA16,
	FromPremulRGBA16:  index8FromPremulRGBA16,
}
