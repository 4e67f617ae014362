// Package imagebuf implements the pixel-format-aware raster buffer and
// viewport copy/clear/blend operations the node graph schedules tiles
// against, grounded on the row-accessor buffer abstraction the rest of
// this module uses and the viewport compositing routines that drive
// tile stitching.
package imagebuf

import (
	"agg_go/internal/buffer"
	"agg_go/internal/format"
)

// Buffer is a pixel-format-tagged raster buffer: a row-accessor over raw
// bytes (reused from the rendering buffer abstraction) plus the format ID
// needed to interpret those bytes and an optional palette for indexed
// formats.
type Buffer struct {
	rb      *buffer.RenderingBuffer[byte]
	id      format.ID
	palette *format.Palette
}

// New allocates a zero-filled Buffer of the given format, width, and
// height, with a tightly packed row stride, taken directly from the
// system allocator.
func New(id format.ID, width, height int) *Buffer {
	desc := format.Lookup(id)
	stride := desc.Stride(width)
	data := make([]byte, stride*height)
	rb := buffer.NewRenderingBufferWithData(data, width, height, stride)
	return &Buffer{rb: rb, id: id}
}

// NewFromSlice wraps a caller-provided, already zeroed byte slice as a
// Buffer of the given format, width, and height, with a tightly packed row
// stride. slice must be at least desc.Stride(width)*height bytes. Used by
// EntryPool to back intermediates with memory carved from the bitmap
// allocator (spec §4.4/§4.5) instead of a fresh system allocation.
func NewFromSlice(id format.ID, width, height int, slice []byte) *Buffer {
	desc := format.Lookup(id)
	stride := desc.Stride(width)
	rb := buffer.NewRenderingBufferWithData(slice[:stride*height], width, height, stride)
	return &Buffer{rb: rb, id: id}
}

// Attach wraps existing pixel data as a Buffer without copying it.
func Attach(id format.ID, data []byte, width, height, stride int) *Buffer {
	rb := buffer.NewRenderingBufferWithData(data, width, height, stride)
	return &Buffer{rb: rb, id: id}
}

func (b *Buffer) Format() format.ID  { return b.id }
func (b *Buffer) Width() int         { return b.rb.Width() }
func (b *Buffer) Height() int        { return b.rb.Height() }
func (b *Buffer) Stride() int        { return b.rb.Stride() }
func (b *Buffer) Palette() *format.Palette { return b.palette }

// SetPalette attaches the palette indexed formats need for conversion.
func (b *Buffer) SetPalette(p *format.Palette) { b.palette = p }

// Row returns the raw backing bytes of row y, or nil if y is out of range.
func (b *Buffer) Row(y int) []byte {
	return b.rb.Row(y)
}

// RowPixels returns a window of row y starting at pixel x, sized for
// `count` pixels in this buffer's native format.
func (b *Buffer) RowPixels(x, y, count int) []byte {
	desc := format.Lookup(b.id)
	byteOff := desc.Stride(x)
	length := desc.Stride(count)
	return b.rb.RowPtr(byteOff, y, length)
}

// Valid reports whether the buffer has nonzero dimensions, matching the
// reference implementation's isValid() guard at the top of every viewport
// operation.
func (b *Buffer) Valid() bool {
	return b != nil && b.rb != nil && b.Width() > 0 && b.Height() > 0
}
