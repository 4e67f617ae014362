// Package format implements the pixel-format descriptor registry and
// conversion matrix of spec §4.1: every supported pixel layout is a value
// carrying pack/unpack, straight<->premultiplied conversion, and
// format-pair blend functions, looked up by a small stable ID rather than
// dispatched through an interface hierarchy (spec §9: "avoid hierarchical
// type hierarchies").
package format

// ID is a small, stable enum identifying a pixel format. Values must never
// be renumbered once released, since host code may persist them.
type ID uint8

const (
	RGB332 ID = iota
	RGB565LE
	RGB565BE
	RGB888
	BGR888
	RGBA8Straight
	RGBA16Premultiplied
	Gray8
	Index8
	BitPackedIndex1
	BitPackedIndex2
	BitPackedIndex4
)

func (id ID) String() string {
	switch id {
	case RGB332:
		return "RGB332"
	case RGB565LE:
		return "RGB565LE"
	case RGB565BE:
		return "RGB565BE"
	case RGB888:
		return "RGB888"
	case BGR888:
		return "BGR888"
	case RGBA8Straight:
		return "RGBA8Straight"
	case RGBA16Premultiplied:
		return "RGBA16Premultiplied"
	case Gray8:
		return "Gray8"
	case Index8:
		return "Index8"
	case BitPackedIndex1:
		return "BitPackedIndex1"
	case BitPackedIndex2:
		return "BitPackedIndex2"
	case BitPackedIndex4:
		return "BitPackedIndex4"
	default:
		return "unknown"
	}
}
