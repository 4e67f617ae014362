package format

import "fmt"

var registry = map[ID]*Descriptor{
	RGB332:              rgb332Descriptor,
	RGB565LE:            rgb565LEDescriptor,
	RGB565BE:            rgb565BEDescriptor,
	RGB888:              rgb888Descriptor,
	BGR888:              bgr888Descriptor,
	RGBA8Straight:       rgba8StraightDescriptor,
	RGBA16Premultiplied: rgba16PremulDescriptor,
	Gray8:               gray8Descriptor,
	Index8:              index8Descriptor,
	BitPackedIndex1:     bitPackedIndex1Descriptor,
	BitPackedIndex2:     bitPackedIndex2Descriptor,
	BitPackedIndex4:     bitPackedIndex4Descriptor,
}

// Lookup returns the registered Descriptor for id. It panics on an unknown
// id: every value of the ID enum above must have a registered descriptor,
// so an unknown id indicates a programming error, not a runtime condition
// callers should recover from.
func Lookup(id ID) *Descriptor {
	d, ok := registry[id]
	if !ok {
		panic(fmt.Sprintf("format: no descriptor registered for id %d", id))
	}
	return d
}

// BlendUnderPremul composites count source pixels in srcID's native layout
// under an existing row of the RGBA16Premultiplied working buffer, using
// the source descriptor's fused fast path when one is registered and
// falling back to a generic convert-then-blend otherwise (spec §4.1).
func BlendUnderPremul(dst []RGBA16, srcID ID, src []byte, count int, pal *Palette) {
	desc := Lookup(srcID)
	if desc.BlendUnderPremul != nil {
		desc.BlendUnderPremul(dst, src, count, pal)
		return
	}
	genericBlendUnderPremul(desc, dst, src, count, pal)
}

// BlendUnderStraight composites count source pixels in srcID's native
// layout under an existing straight-alpha RGBA8 row.
func BlendUnderStraight(dst []RGBA8, srcID ID, src []byte, count int, pal *Palette) {
	desc := Lookup(srcID)
	if desc.BlendUnderStraight != nil {
		desc.BlendUnderStraight(dst, src, count, pal)
		return
	}
	genericBlendUnderStraight(desc, dst, src, count, pal)
}
