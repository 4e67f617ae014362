package graph

import (
	"errors"
	"fmt"

	"agg_go/internal/format"
	"agg_go/internal/imagebuf"
	"agg_go/internal/kernel"
	"agg_go/internal/transform"
)

// ErrNilNode is returned when Apply is called on a nil upstream pointer —
// a dangling edge, not a valid empty graph.
var ErrNilNode = errors.New("graph: nil node")

// Evaluator walks the node graph's pull protocol (spec §4.3), allocating
// intermediates from a shared EntryPool and detecting cycles by tracking
// which nodes are currently being evaluated on the call stack.
type Evaluator struct {
	Pool     *EntryPool
	visiting map[*Node]bool
}

// NewEvaluator creates an Evaluator backed by pool.
func NewEvaluator(pool *EntryPool) *Evaluator {
	return &Evaluator{Pool: pool, visiting: make(map[*Node]bool)}
}

// Apply evaluates node for the given request and returns its result,
// dispatching on Kind (spec REDESIGN FLAGS: "the scheduler's
// evaluateUpstream is a match on the tag").
//
// RenderRequest/RenderResult origins here are absolute scene coordinates
// rather than the tile-local/result-local pair the reference
// implementation's stitching formula reconciles; every tile boundary in
// this implementation lands on an integer pixel, so the fixed8 sub-pixel
// ceil-snap the original's stitching step performs never has a fractional
// part to resolve. See DESIGN.md for the full rationale.
//
// A pool miss (ErrPoolExhausted) while evaluating n makes n's result
// invalid instead of returning an error, so the scheduler records the tile
// as failed and leaves the sink's content for it untouched.
func (e *Evaluator) Apply(n *Node, req RenderRequest) (res RenderResult, err error) {
	if n == nil {
		return RenderResult{}, ErrNilNode
	}
	if e.visiting[n] {
		return RenderResult{}, fmt.Errorf("graph: cycle detected at node %q", n.Name)
	}
	e.visiting[n] = true
	defer delete(e.visiting, n)
	defer func() {
		if errors.Is(err, ErrPoolExhausted) {
			res, err = RenderResult{Valid: false}, nil
		}
	}()

	switch n.Kind {
	case KindSource:
		return e.applySource(n, req)
	case KindAffine:
		return e.applyAffine(n, req)
	case KindFilter:
		return e.applyFilter(n, req)
	case KindComposite:
		return e.applyComposite(n, req)
	case KindSink:
		return e.applySink(n, req)
	case KindMatte:
		return e.applyMatte(n, req)
	case KindDistributor:
		return e.applyDistributor(n, req)
	case KindNinePatch:
		return e.applyNinePatch(n, req)
	default:
		return RenderResult{}, fmt.Errorf("graph: unknown node kind %d", n.Kind)
	}
}

// applySource returns a view directly into the source's backing buffer
// (spec §4.3 step 5: "Source nodes short-circuit"). The view is the whole
// buffer, whose pixel (0,0) sits at scene (0,0), so the result's origin is
// (0,0) whatever window was requested.
func (e *Evaluator) applySource(n *Node, req RenderRequest) (RenderResult, error) {
	if n.SourceBuffer == nil || !n.SourceBuffer.Valid() {
		return RenderResult{Valid: false}, nil
	}
	return RenderResult{Buffer: n.SourceBuffer, Valid: true}, nil
}

// applyAffine samples the upstream result through a fixed-point DDA (spec
// §4.2, §4.3 step 3). The upstream request is the AABB of the destination
// window projected through the inverse matrix.
func (e *Evaluator) applyAffine(n *Node, req RenderRequest) (RenderResult, error) {
	d, err := transform.NewDDA(n.Matrix)
	if err != nil {
		return RenderResult{}, err
	}

	// Strip splitting (spec §4.2 "Strip splitting"): when a rotation makes
	// the AABB much larger than the actual sampled parallelogram,
	// transform.SplitStrips partitions the request into narrower strips,
	// each requesting a tighter upstream region than the unsplit whole
	// would. SplitStrips decides and partitions using zero-based local
	// coordinates (the area-ratio decision is translation invariant), so
	// each strip's own AABB is recomputed below against the request's true
	// absolute origin — destination coordinates feed directly into the
	// DDA's row/column accumulators, not merely as a constant offset.
	strips := transform.SplitStrips(d, req.Width, req.Height)

	type stripFetch struct {
		strip    transform.Strip
		upstream RenderResult
	}
	fetches := make([]stripFetch, 0, len(strips))
	var fmtID format.ID
	haveFmt := false

	for _, s := range strips {
		aabb := transform.ComputeInputRegionRect(d, req.OriginX+s.X0, req.OriginY+s.Y0, req.OriginX+s.X1, req.OriginY+s.Y1)
		if aabb.Empty() {
			continue
		}
		upstream, err := e.Apply(n.AffineUpstream, RenderRequest{OriginX: aabb.X0, OriginY: aabb.Y0, Width: aabb.Width(), Height: aabb.Height()})
		if err != nil {
			return RenderResult{}, err
		}
		if !upstream.Valid {
			continue
		}
		if !haveFmt {
			// Affine nodes preserve input format when possible (spec
			// §4.3 "Format choice for intermediates").
			fmtID = upstream.Buffer.Format()
			haveFmt = true
		}
		fetches = append(fetches, stripFetch{strip: s, upstream: upstream})
	}
	if !haveFmt {
		return RenderResult{Valid: false}, nil
	}

	_, dst, err := e.Pool.Acquire(fmtID, req.Width, req.Height)
	if err != nil {
		return RenderResult{}, err
	}
	for _, f := range fetches {
		e.sampleAffineStrip(d, fmtID, dst, f.upstream, req, f.strip)
	}

	return RenderResult{Buffer: dst, OriginX: req.OriginX, OriginY: req.OriginY, Valid: true}, nil
}

// sampleAffineStrip runs the nearest-neighbor DDA sample loop (spec §4.2
// steps 1-3) over one destination-local strip rectangle [s.X0,s.X1) x
// [s.Y0,s.Y1), writing results into dst at the matching local offset.
// Stitching strips this way reproduces the unsplit render pixel-for-pixel
// (spec §8 property 4), since each strip's samples depend only on its own
// destination coordinates, never on neighboring strips.
func (e *Evaluator) sampleAffineStrip(d transform.DDA, fmtID format.ID, dst *imagebuf.Buffer, upstream RenderResult, req RenderRequest, s transform.Strip) {
	srcDesc := format.Lookup(fmtID)
	width := s.X1 - s.X0
	straightRow := make([]format.RGBA8, width)
	onePixel := make([]format.RGBA8, 1)
	for dy := s.Y0; dy < s.Y1; dy++ {
		baseX, baseY := d.RowBase(req.OriginY + dy)
		dstRow := dst.RowPixels(s.X0, dy, width)
		for i := 0; i < width; i++ {
			dx := s.X0 + i
			srcX, srcY := d.Sample(req.OriginX+dx, baseX, baseY)
			ux := int(srcX) - upstream.OriginX
			uy := int(srcY) - upstream.OriginY
			if ux < 0 || uy < 0 || ux >= upstream.Buffer.Width() || uy >= upstream.Buffer.Height() {
				straightRow[i] = format.RGBA8{}
				continue
			}
			srcPixel := upstream.Buffer.RowPixels(ux, uy, 1)
			srcDesc.ToStraightRGBA8(srcPixel, onePixel, 1, upstream.Buffer.Palette())
			straightRow[i] = onePixel[0]
		}
		srcDesc.FromStraightRGBA8(straightRow, dstRow, width, dst.Palette())
	}
}

// applyFilter dispatches to the per-pixel kernels or the separable box
// blur, both grounded on package kernel (spec §4.6).
func (e *Evaluator) applyFilter(n *Node, req RenderRequest) (RenderResult, error) {
	if n.Filter == FilterBoxBlur {
		return e.applyBoxBlur(n, req)
	}
	return e.applyPixelFilter(n, req)
}

func (e *Evaluator) applyPixelFilter(n *Node, req RenderRequest) (RenderResult, error) {
	upstream, err := e.Apply(n.FilterUpstream, req)
	if err != nil {
		return RenderResult{}, err
	}
	if !upstream.Valid {
		return RenderResult{Valid: false}, nil
	}

	_, dst, err := e.Pool.Acquire(format.RGBA16Premultiplied, req.Width, req.Height)
	if err != nil {
		return RenderResult{}, err
	}

	srcDesc := format.Lookup(upstream.Buffer.Format())
	dstDesc := format.Lookup(format.RGBA16Premultiplied)
	row := make([]format.RGBA16, req.Width)
	for y := 0; y < req.Height; y++ {
		ux, uy := req.OriginX-upstream.OriginX, req.OriginY+y-upstream.OriginY
		if ux < 0 || uy < 0 || uy >= upstream.Buffer.Height() {
			continue
		}
		srcRow := upstream.Buffer.RowPixels(ux, uy, req.Width)
		srcDesc.ToPremulRGBA16(srcRow, row, req.Width, upstream.Buffer.Palette())

		switch n.Filter {
		case FilterBrightness:
			kernel.Brightness(row, n.FilterParam)
		case FilterGrayscale:
			kernel.Grayscale(row)
		case FilterAlpha:
			kernel.Alpha(row, n.FilterParam)
		}

		dstDesc.FromPremulRGBA16(row, dst.RowPixels(0, y, req.Width), req.Width, nil)
	}

	return RenderResult{Buffer: dst, OriginX: req.OriginX, OriginY: req.OriginY, Valid: true}, nil
}

// applyBoxBlur requests the pre-expansion window from upstream and pads
// the extra radius pixels with transparency entirely inside
// kernel.BoxBlur (spec §4.6 "Output size may exceed input by r pixels").
func (e *Evaluator) applyBoxBlur(n *Node, req RenderRequest) (RenderResult, error) {
	r := n.BlurRadius
	inner := RenderRequest{
		OriginX: req.OriginX + r,
		OriginY: req.OriginY + r,
		Width:   req.Width - 2*r,
		Height:  req.Height - 2*r,
	}
	if inner.Width <= 0 || inner.Height <= 0 {
		return RenderResult{Valid: false}, nil
	}

	upstream, err := e.Apply(n.FilterUpstream, inner)
	if err != nil {
		return RenderResult{}, err
	}
	if !upstream.Valid {
		return RenderResult{Valid: false}, nil
	}

	grid := bufferToGrid(upstream.Buffer, inner.Width, inner.Height)
	blurred := kernel.BoxBlur(grid, r)

	_, dst, err := e.Pool.Acquire(format.RGBA16Premultiplied, req.Width, req.Height)
	if err != nil {
		return RenderResult{}, err
	}
	gridToBuffer(blurred, dst)

	return RenderResult{Buffer: dst, OriginX: req.OriginX, OriginY: req.OriginY, Valid: true}, nil
}

// applyComposite over-blends each input in premultiplied space, the first
// input with a plain copy rather than a blend over a cleared buffer (spec
// §4.7).
func (e *Evaluator) applyComposite(n *Node, req RenderRequest) (RenderResult, error) {
	_, dst, err := e.Pool.Acquire(format.RGBA16Premultiplied, req.Width, req.Height)
	if err != nil {
		return RenderResult{}, err
	}

	for i, input := range n.CompositeInputs {
		res, err := e.Apply(input, req)
		if err != nil {
			return RenderResult{}, err
		}
		if !res.Valid {
			continue
		}
		ox := req.OriginX - res.OriginX
		oy := req.OriginY - res.OriginY
		if i == 0 {
			imagebuf.BlendFirst(dst, 0, 0, res.Buffer, ox, oy, req.Width, req.Height)
		} else {
			imagebuf.BlendOnto(dst, 0, 0, res.Buffer, ox, oy, req.Width, req.Height)
		}
	}

	return RenderResult{Buffer: dst, OriginX: req.OriginX, OriginY: req.OriginY, Valid: true}, nil
}

// applySink writes the evaluated upstream result into the sink's backing
// buffer. A sink has zero graph outputs (spec §4.3 "Node kinds"), so its
// RenderResult carries no usable buffer — only Valid, for the caller's
// bookkeeping.
func (e *Evaluator) applySink(n *Node, req RenderRequest) (RenderResult, error) {
	upstream, err := e.Apply(n.SinkUpstream, req)
	if err != nil {
		return RenderResult{}, err
	}
	if !upstream.Valid {
		return RenderResult{Valid: false}, nil
	}
	imagebuf.Copy(n.SinkBuffer, req.OriginX, req.OriginY, upstream.Buffer, req.OriginX-upstream.OriginX, req.OriginY-upstream.OriginY, req.Width, req.Height)
	return RenderResult{Valid: true}, nil
}
