package format

import "agg_go/internal/basics"

// Palette is a lookup table of straight-alpha RGBA8 entries backing an
// indexed format (spec §4.1 "For paletted formats: optional palette
// pointer + size"). The zero value is an empty, always-transparent-black
// palette.
type Palette struct {
	Entries []RGBA8
}

// RGBA8 is one straight-alpha 8-bit-per-channel color. It is the canonical
// external representation spec §4.1 describes, and the element type of a
// Palette.
type RGBA8 struct {
	R, G, B, A basics.Int8u
}

// RGBA16 is one premultiplied-alpha 16-bit-per-channel color: the internal
// working format spec §1 calls out as canonical.
type RGBA16 struct {
	R, G, B, A basics.Int16u
}

// Descriptor is a process-lifetime singleton value describing one pixel
// format's storage layout and conversion functions (spec §4.1). Descriptors
// are registered once at init and never mutated afterward.
type Descriptor struct {
	ID   ID
	Name string

	// BitsPerPixel may be less than 8 for packed indexed formats; Stride
	// must be used instead of a flat width*bytesPerPixel computation
	// whenever a format may be sub-byte.
	BitsPerPixel int

	HasAlpha        bool
	IsPremultiplied bool
	IsPaletted      bool
	IsPacked bool

	// ToStraightRGBA8 unpacks count pixels from a native-format row (src)
	// into a straight-alpha RGBA8 row (dst, len==count). pal is nil for
	// non-paletted formats.
	ToStraightRGBA8 func(src []byte, dst []RGBA8, count int, pal *Palette)

	// FromStraightRGBA8 packs count straight-alpha RGBA8 pixels (src) into
	// a native-format row (dst). Paletted formats perform nearest-color
	// palette matching; see index8.go.
	FromStraightRGBA8 func(src []RGBA8, dst []byte, count int, pal *Palette)

	// ToPremulRGBA16 unpacks count pixels from a native-format row into the
	// internal premultiplied working format.
	ToPremulRGBA16 func(src []byte, dst []RGBA16, count int, pal *Palette)

	// FromPremulRGBA16 packs count premultiplied pixels into a native-
	// format row.
	FromPremulRGBA16 func(src []RGBA16, dst []byte, count int, pal *Palette)

	// BlendUnderPremul composites count source pixels (native format) under
	// an existing premultiplied destination row, in place. A nil function
	// means no direct premul blend path exists and the registry's generic
	// compose path must be used.
	BlendUnderPremul func(dst []RGBA16, src []byte, count int, pal *Palette)

	// BlendUnderStraight composites count source pixels under an existing
	// straight-alpha destination row, in place. Nil means no direct path.
	BlendUnderStraight func(dst []RGBA8, src []byte, count int, pal *Palette)
}

// Stride returns the number of bytes needed to store `width` pixels of this
// format in one row, rounding sub-byte-packed formats up to a whole byte
// (spec §3 "bytesPerPixel (may be fractional...)").
func (d *Descriptor) Stride(width int) int {
	bits := width * d.BitsPerPixel
	return (bits + 7) / 8
}

// BytesPerPixel returns the integral bytes-per-pixel for non-packed
// formats. Callers must use Stride instead for BitsPerPixel < 8.
func (d *Descriptor) BytesPerPixel() int {
	return d.BitsPerPixel / 8
}
