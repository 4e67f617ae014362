package format

import "agg_go/internal/basics"

// BitPackedIndex1/2/4 store multiple palette indices per byte, packed
// MSB-first (the first pixel in a row occupies the highest-order bits of
// the first byte), matching the embedded frame-buffer convention the rest
// of this format's sibling packed formats (RGB332, RGB565) follow for bit
// layout. Sub-byte rows are not required to be byte-aligned in length;
// Descriptor.Stride rounds the trailing partial byte up.

func bitPackedGet(src []byte, index, bits int) byte {
	perByte := 8 / bits
	byteIdx := index / perByte
	slot := index % perByte
	shift := uint(8 - bits - slot*bits)
	mask := byte((1 << uint(bits)) - 1)
	return (src[byteIdx] >> shift) & mask
}

func bitPackedSet(dst []byte, index, bits int, v byte) {
	perByte := 8 / bits
	byteIdx := index / perByte
	slot := index % perByte
	shift := uint(8 - bits - slot*bits)
	mask := byte((1 << uint(bits)) - 1)
	dst[byteIdx] = (dst[byteIdx] &^ (mask << shift)) | ((v & mask) << shift)
}

func bitPackedToStraightRGBA8(bits int) func(src []byte, dst []RGBA8, count int, pal *Palette) {
	return func(src []byte, dst []RGBA8, count int, pal *Palette) {
		for i := 0; i < count; i++ {
			dst[i] = paletteLookup(pal, bitPackedGet(src, i, bits))
		}
	}
}

func bitPackedFromStraightRGBA8(bits int) func(src []RGBA8, dst []byte, count int, pal *Palette) {
	return func(src []RGBA8, dst []byte, count int, pal *Palette) {
		maxIndex := byte((1 << uint(bits)) - 1)
		for i := 0; i < count; i++ {
			idx := nearestPaletteIndex(pal, src[i])
			if basics.Int8u(maxIndex) < idx {
				idx = basics.Int8u(maxIndex)
			}
			bitPackedSet(dst, i, bits, byte(idx))
		}
	}
}

func bitPackedToPremulRGBA16(bits int) func(src []byte, dst []RGBA16, count int, pal *Palette) {
	toStraight := bitPackedToStraightRGBA8(bits)
	return func(src []byte, dst []RGBA16, count int, pal *Palette) {
		straight := make([]RGBA8, count)
		toStraight(src, straight, count, pal)
		for i := 0; i < count; i++ {
			dst[i] = ToPremulRGBA16Pixel(straight[i].R, straight[i].G, straight[i].B, straight[i].A)
		}
	}
}

func bitPackedFromPremulRGBA16(bits int) func(src []RGBA16, dst []byte, count int, pal *Palette) {
	fromStraight := bitPackedFromStraightRGBA8(bits)
	return func(src []RGBA16, dst []byte, count int, pal *Palette) {
		straight := make([]RGBA8, count)
		for i := 0; i < count; i++ {
			straight[i] = FromPremulRGBA16Pixel(src[i])
		}
		fromStraight(straight, dst, count, pal)
	}
}

func newBitPackedDescriptor(id ID, name string, bits int) *Descriptor {
	return &Descriptor{
		ID:                id,
		Name:              name,
		BitsPerPixel:      bits,
		HasAlpha:          true,
		IsPaletted:        true,
		IsPacked:          true,
		ToStraightRGBA8:   bitPackedToStraightRGBA8(bits),
		FromStraightRGBA8: bitPackedFromStraightRGBA8(bits),
		ToPremulRGBA16:    bitPackedToPremulRGBA16(bits),
		FromPremulRGBA16:  bitPackedFromPremulRGBA16(bits),
	}
}

var bitPackedIndex1Descriptor = newBitPackedDescriptor(BitPackedIndex1, "BitPackedIndex1", 1)
var bitPackedIndex2Descriptor = newBitPackedDescriptor(BitPackedIndex2, "BitPackedIndex2", 2)
var bitPackedIndex4Descriptor = newBitPackedDescriptor(BitPackedIndex4, "BitPackedIndex4", 4)
