package imagebuf

import "agg_go/internal/format"

// Copy transfers a width x height region from src to dst, converting pixel
// formats through the registry when src and dst differ. Both rectangles
// are clipped to their buffers first; a fully clipped-away copy is a no-op
// (spec's tile-stitching scheduler relies on this: out-of-range tiles at
// the image edge are silently skipped, not treated as errors).
func Copy(dst *Buffer, dstX, dstY int, src *Buffer, srcX, srcY, width, height int) {
	if !dst.Valid() || !src.Valid() {
		return
	}
	dstX, dstY, srcX, srcY, width, height = clipRect(dst, dstX, dstY, src, srcX, srcY, width, height)
	if width <= 0 || height <= 0 {
		return
	}

	if src.id == dst.id {
		srcDesc := format.Lookup(src.id)
		stride := srcDesc.Stride(width)
		for y := 0; y < height; y++ {
			s := src.RowPixels(srcX, srcY+y, width)
			d := dst.RowPixels(dstX, dstY+y, width)
			n := stride
			if len(s) < n {
				n = len(s)
			}
			if len(d) < n {
				n = len(d)
			}
			copy(d[:n], s[:n])
		}
		return
	}

	straight := make([]format.RGBA8, width)
	srcDesc := format.Lookup(src.id)
	dstDesc := format.Lookup(dst.id)
	for y := 0; y < height; y++ {
		s := src.RowPixels(srcX, srcY+y, width)
		d := dst.RowPixels(dstX, dstY+y, width)
		srcDesc.ToStraightRGBA8(s, straight, width, src.palette)
		dstDesc.FromStraightRGBA8(straight, d, width, dst.palette)
	}
}

// Clear zeroes a width x height region of dst. A zero-filled
// RGBA16Premultiplied pixel is fully transparent by construction, so this
// also implements "clear to transparent" for the working format.
func Clear(dst *Buffer, x, y, width, height int) {
	if !dst.Valid() {
		return
	}
	for row := 0; row < height; row++ {
		dy := y + row
		if dy < 0 || dy >= dst.Height() {
			continue
		}
		d := dst.RowPixels(x, dy, width)
		for i := range d {
			d[i] = 0
		}
	}
}

// BlendFirst draws src onto an assumed-empty dst region: the first write
// to a fresh tile can always use a plain copy instead of alpha blending.
func BlendFirst(dst *Buffer, dstX, dstY int, src *Buffer, srcX, srcY, width, height int) {
	Copy(dst, dstX, dstY, src, srcX, srcY, width, height)
}

// BlendOnto alpha-composites src over an existing dst region using the
// premultiplied "over" operator when both buffers are
// RGBA16Premultiplied, the node graph's working format; any other format
// pairing falls back to a plain Copy, matching the reference
// implementation's own fallback for unsupported format combinations.
func BlendOnto(dst *Buffer, dstX, dstY int, src *Buffer, srcX, srcY, width, height int) {
	if !dst.Valid() || !src.Valid() {
		return
	}
	if dst.id != format.RGBA16Premultiplied || src.id != format.RGBA16Premultiplied {
		Copy(dst, dstX, dstY, src, srcX, srcY, width, height)
		return
	}

	dstX, dstY, srcX, srcY, width, height = clipRect(dst, dstX, dstY, src, srcX, srcY, width, height)
	if width <= 0 || height <= 0 {
		return
	}

	for y := 0; y < height; y++ {
		srcBytes := src.RowPixels(srcX, srcY+y, width)
		dstBytes := dst.RowPixels(dstX, dstY+y, width)
		srcPixels := bytesToRGBA16(srcBytes, width)
		dstPixels := bytesToRGBA16(dstBytes, width)
		for x := 0; x < width; x++ {
			format.BlendUnderPremulPixel(&dstPixels[x], srcPixels[x])
		}
		rgba16ToBytes(dstPixels, dstBytes)
	}
}

func bytesToRGBA16(b []byte, count int) []format.RGBA16 {
	out := make([]format.RGBA16, count)
	format.Lookup(format.RGBA16Premultiplied).ToPremulRGBA16(b, out, count, nil)
	return out
}

func rgba16ToBytes(p []format.RGBA16, b []byte) {
	format.Lookup(format.RGBA16Premultiplied).FromPremulRGBA16(p, b, len(p), nil)
}

// clipRect clips a copy rectangle so both the source and destination reads
// stay in bounds, translating the opposite rectangle's origin to match
// whenever one side is clipped (spec's tile scheduler requests regions
// that may legitimately straddle a buffer edge at the image border).
func clipRect(dst *Buffer, dstX, dstY int, src *Buffer, srcX, srcY, width, height int) (int, int, int, int, int, int) {
	if srcX < 0 {
		dstX -= srcX
		width += srcX
		srcX = 0
	}
	if srcY < 0 {
		dstY -= srcY
		height += srcY
		srcY = 0
	}
	if dstX < 0 {
		srcX -= dstX
		width += dstX
		dstX = 0
	}
	if dstY < 0 {
		srcY -= dstY
		height += dstY
		dstY = 0
	}
	width = minInt(width, minInt(src.Width()-srcX, dst.Width()-dstX))
	height = minInt(height, minInt(src.Height()-srcY, dst.Height()-dstY))
	return dstX, dstY, srcX, srcY, width, height
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
