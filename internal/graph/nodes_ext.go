package graph

import (
	"agg_go/internal/basics"
	"agg_go/internal/format"
	"agg_go/internal/imagebuf"
	"agg_go/internal/transform"
)

// applyMatte replaces MatteColor's alpha channel with the luminance of
// MatteMask, used to apply an externally authored mask onto a color
// source (spec §4.3 expansion). Both inputs are pulled for the same
// request window; a pixel absent from either input (a gap at a tile edge)
// is treated as fully transparent rather than propagating invalidity, so
// a mask sized smaller than its color input still mattes the overlap.
func (e *Evaluator) applyMatte(n *Node, req RenderRequest) (RenderResult, error) {
	color, err := e.Apply(n.MatteColor, req)
	if err != nil {
		return RenderResult{}, err
	}
	mask, err := e.Apply(n.MatteMask, req)
	if err != nil {
		return RenderResult{}, err
	}
	if !color.Valid {
		return RenderResult{Valid: false}, nil
	}

	_, dst, err := e.Pool.Acquire(format.RGBA16Premultiplied, req.Width, req.Height)
	if err != nil {
		return RenderResult{}, err
	}

	colorDesc := format.Lookup(color.Buffer.Format())
	var maskDesc *format.Descriptor
	if mask.Valid {
		maskDesc = format.Lookup(mask.Buffer.Format())
	}

	colorRow := make([]format.RGBA8, req.Width)
	maskRow := make([]format.RGBA8, req.Width)
	for y := 0; y < req.Height; y++ {
		cx, cy := req.OriginX-color.OriginX, req.OriginY+y-color.OriginY
		if cx < 0 || cy < 0 || cy >= color.Buffer.Height() {
			continue
		}
		colorDesc.ToStraightRGBA8(color.Buffer.RowPixels(cx, cy, req.Width), colorRow, req.Width, color.Buffer.Palette())

		haveMask := false
		if mask.Valid {
			mx, my := req.OriginX-mask.OriginX, req.OriginY+y-mask.OriginY
			if mx >= 0 && my >= 0 && my < mask.Buffer.Height() {
				maskDesc.ToStraightRGBA8(mask.Buffer.RowPixels(mx, my, req.Width), maskRow, req.Width, mask.Buffer.Palette())
				haveMask = true
			}
		}

		dstRow := dst.RowPixels(0, y, req.Width)
		pixels := make([]format.RGBA16, req.Width)
		for i := 0; i < req.Width; i++ {
			var a basics.Int8u
			if haveMask {
				m := maskRow[i]
				a = basics.Int8u((77*int(m.R) + 150*int(m.G) + 29*int(m.B)) >> 8)
			}
			c := colorRow[i]
			pixels[i] = format.ToPremulRGBA16Pixel(c.R, c.G, c.B, a)
		}
		format.Lookup(format.RGBA16Premultiplied).FromPremulRGBA16(pixels, dstRow, req.Width, nil)
	}

	return RenderResult{Buffer: dst, OriginX: req.OriginX, OriginY: req.OriginY, Valid: true}, nil
}

// applyDistributor evaluates DistUpstream once per distinct RenderRequest
// and serves repeat requests for the same tile from a one-entry cache, so
// a single upstream feeding several Composite inputs in the same tile
// evaluation is not recomputed once per consumer (spec §4.3 expansion).
// The cache holds exactly one entry because the scheduler evaluates tiles
// strictly sequentially (spec §5 "Ordering guarantees") — no two distinct
// requests are ever in flight for the same Distributor at once.
func (e *Evaluator) applyDistributor(n *Node, req RenderRequest) (RenderResult, error) {
	if n.distCache != nil && n.distCache.req == req {
		return n.distCache.result, nil
	}
	res, err := e.Apply(n.DistUpstream, req)
	if err != nil {
		return RenderResult{}, err
	}
	n.distCache = &distCacheEntry{req: req, result: res}
	return res, nil
}

// applyNinePatch stretches NinePatchSource's interior to fill a
// NinePatchWidth x NinePatchHeight canvas while holding its border rows
// and columns at native scale (spec §4.3 expansion). The source is split
// into the classic 3x3 nine-patch grid; each of the nine regions gets its
// own per-region (not per-pixel) affine scale, matching the ratio between
// that region's source and destination extents, and is sampled through
// the same fixed-point DDA an Affine node uses.
func (e *Evaluator) applyNinePatch(n *Node, req RenderRequest) (RenderResult, error) {
	srcRes, err := e.Apply(n.NinePatchSource, RenderRequest{Width: e.ninePatchSourceWidth(n), Height: e.ninePatchSourceHeight(n)})
	if err != nil {
		return RenderResult{}, err
	}
	if !srcRes.Valid {
		return RenderResult{Valid: false}, nil
	}

	sw, sh := srcRes.Buffer.Width(), srcRes.Buffer.Height()
	dw, dh := n.NinePatchWidth, n.NinePatchHeight
	b := n.NinePatchBorder

	xSrc := [4]int{0, b.Left, sw - b.Right, sw}
	xDst := [4]int{0, b.Left, dw - b.Right, dw}
	ySrc := [4]int{0, b.Top, sh - b.Bottom, sh}
	yDst := [4]int{0, b.Top, dh - b.Bottom, dh}

	_, dst, err := e.Pool.Acquire(srcRes.Buffer.Format(), req.Width, req.Height)
	if err != nil {
		return RenderResult{}, err
	}

	for row := 0; row < 3; row++ {
		sy0, sy1 := ySrc[row], ySrc[row+1]
		dy0, dy1 := yDst[row], yDst[row+1]
		if sy1 <= sy0 || dy1 <= dy0 {
			continue
		}
		for col := 0; col < 3; col++ {
			sx0, sx1 := xSrc[col], xSrc[col+1]
			dx0, dx1 := xDst[col], xDst[col+1]
			if sx1 <= sx0 || dx1 <= dx0 {
				continue
			}
			e.ninePatchRegion(dst, srcRes.Buffer, req, sx0, sy0, sx1-sx0, sy1-sy0, dx0, dy0, dx1-dx0, dy1-dy0)
		}
	}

	return RenderResult{Buffer: dst, OriginX: req.OriginX, OriginY: req.OriginY, Valid: true}, nil
}

func (e *Evaluator) ninePatchSourceWidth(n *Node) int {
	if n.NinePatchSource.Kind == KindSource && n.NinePatchSource.SourceBuffer != nil {
		return n.NinePatchSource.SourceBuffer.Width()
	}
	return n.NinePatchWidth
}

func (e *Evaluator) ninePatchSourceHeight(n *Node) int {
	if n.NinePatchSource.Kind == KindSource && n.NinePatchSource.SourceBuffer != nil {
		return n.NinePatchSource.SourceBuffer.Height()
	}
	return n.NinePatchHeight
}

// ninePatchRegion maps one of the nine source/destination region pairs
// through a scale-and-translate affine transform (source region onto
// destination region) and samples it with a DDA, writing the samples
// straight into dst over the part of the destination region that
// intersects req.
func (e *Evaluator) ninePatchRegion(dst, src *imagebuf.Buffer, req RenderRequest, sx, sy, sw, sh, dx, dy, dw, dh int) {
	xScale := float64(dw) / float64(sw)
	yScale := float64(dh) / float64(sh)
	m := transform.AffineMatrix{A: xScale, D: yScale, TX: float64(dx) - float64(sx)*xScale, TY: float64(dy) - float64(sy)*yScale}
	d, err := transform.NewDDA(m)
	if err != nil {
		return
	}

	x0, y0 := maxInt(dx, req.OriginX), maxInt(dy, req.OriginY)
	x1, y1 := minInt(dx+dw, req.OriginX+req.Width), minInt(dy+dh, req.OriginY+req.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	desc := format.Lookup(src.Format())
	straight := make([]format.RGBA8, x1-x0)
	onePixel := make([]format.RGBA8, 1)
	for py := y0; py < y1; py++ {
		baseX, baseY := d.RowBase(py)
		dstRow := dst.RowPixels(x0-req.OriginX, py-req.OriginY, x1-x0)
		for i, px := 0, x0; px < x1; i, px = i+1, px+1 {
			srcX, srcY := d.Sample(px, baseX, baseY)
			ux, uy := int(srcX), int(srcY)
			if ux < 0 || uy < 0 || ux >= src.Width() || uy >= src.Height() {
				straight[i] = format.RGBA8{}
				continue
			}
			desc.ToStraightRGBA8(src.RowPixels(ux, uy, 1), onePixel, 1, src.Palette())
			straight[i] = onePixel[0]
		}
		desc.FromStraightRGBA8(straight, dstRow, x1-x0, dst.Palette())
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
