package graph

import (
	"agg_go/internal/format"
	"agg_go/internal/imagebuf"
)

// bufferToGrid decodes a width x height window starting at (0,0) of buf
// into a premultiplied RGBA16 grid, the shape kernel.BoxBlur operates on.
func bufferToGrid(buf *imagebuf.Buffer, width, height int) [][]format.RGBA16 {
	desc := format.Lookup(buf.Format())
	grid := make([][]format.RGBA16, height)
	for y := 0; y < height; y++ {
		row := make([]format.RGBA16, width)
		desc.ToPremulRGBA16(buf.RowPixels(0, y, width), row, width, buf.Palette())
		grid[y] = row
	}
	return grid
}

// gridToBuffer encodes a premultiplied RGBA16 grid into dst, which must
// already be sized to the grid's dimensions and in RGBA16Premultiplied
// format (dst is always pool-acquired that way by the caller).
func gridToBuffer(grid [][]format.RGBA16, dst *imagebuf.Buffer) {
	desc := format.Lookup(dst.Format())
	for y, row := range grid {
		desc.FromPremulRGBA16(row, dst.RowPixels(0, y, len(row)), len(row), nil)
	}
}
