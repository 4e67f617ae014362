package transform

import "agg_go/internal/basics"

// InputRegion is the axis-aligned bounding box (in source pixel units) that
// an affine or nine-patch node must read from the upstream node to satisfy
// one destination RenderRequest (spec §4.2).
type InputRegion struct {
	X0, Y0, X1, Y1 int // half-open: [X0,X1) x [Y0,Y1)
}

// Empty reports whether the region covers no pixels.
func (r InputRegion) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Width and Height report the region's pixel extents.
func (r InputRegion) Width() int  { return r.X1 - r.X0 }
func (r InputRegion) Height() int { return r.Y1 - r.Y0 }

// floorDivInt64 computes floor(a/b) for any nonzero b.
func floorDivInt64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ceilDivInt64 computes ceil(a/b) for any nonzero b.
func ceilDivInt64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

// CalcValidRange finds the inclusive dx range within [0, dstExtent-1] for
// which base + dx*step falls inside [0, srcExtent*ONE) (spec §4.2 step 2,
// property 8 of spec §8). ok is false when no dx in range qualifies.
func CalcValidRange(step, base basics.Fixed16, srcExtent, dstExtent int) (start, end int, ok bool) {
	if dstExtent <= 0 {
		return 0, -1, false
	}
	srcLimit := int64(srcExtent) * basics.Fixed16One

	if step == 0 {
		if int64(base) >= 0 && int64(base) < srcLimit {
			return 0, dstExtent - 1, true
		}
		return 0, -1, false
	}

	l := -int64(base)
	u := srcLimit - 1 - int64(base)
	s := int64(step)

	var lo, hi int64
	if step > 0 {
		lo = ceilDivInt64(l, s)
		hi = floorDivInt64(u, s)
	} else {
		lo = ceilDivInt64(u, s)
		hi = floorDivInt64(l, s)
	}

	if lo < 0 {
		lo = 0
	}
	if hi > int64(dstExtent-1) {
		hi = int64(dstExtent - 1)
	}
	if lo > hi {
		return 0, -1, false
	}
	return int(lo), int(hi), true
}

// ComputeInputRegion projects the four corners of a destination request
// through the DDA's inverse matrix and returns the outward-floored/ceiled
// integer AABB of the source samples it can access (spec §4.2 "Input
// region / AABB"). Margins include the pixel-center correction already
// folded into d's row/column offsets.
func ComputeInputRegion(d DDA, width, height int) InputRegion {
	return ComputeInputRegionRect(d, 0, 0, width, height)
}

// ComputeInputRegionRect is ComputeInputRegion generalized to an arbitrary
// destination-local sub-rectangle, used by strip splitting (spec §4.2
// "Strip splitting") to compute each strip's own input region.
func ComputeInputRegionRect(d DDA, x0, y0, x1, y1 int) InputRegion {
	corners := [4][2]int{
		{x0, y0},
		{x1, y0},
		{x0, y1},
		{x1, y1},
	}

	minX, minY := int64(1)<<62, int64(1)<<62
	maxX, maxY := -(int64(1) << 62), -(int64(1) << 62)

	for _, c := range corners {
		dx, dy := c[0], c[1]
		baseX, baseY := d.RowBase(dy)
		sx := basics.MulFixed16(dx, d.Inv.A) + baseX
		sy := basics.MulFixed16(dx, d.Inv.C) + baseY

		// Outward floor/ceil in fixed16 units, then convert to whole pixels.
		fx0 := floorDivInt64(int64(sx), basics.Fixed16One)
		fx1 := ceilDivInt64(int64(sx), basics.Fixed16One)
		fy0 := floorDivInt64(int64(sy), basics.Fixed16One)
		fy1 := ceilDivInt64(int64(sy), basics.Fixed16One)

		if fx0 < minX {
			minX = fx0
		}
		if fx1 > maxX {
			maxX = fx1
		}
		if fy0 < minY {
			minY = fy0
		}
		if fy1 > maxY {
			maxY = fy1
		}
	}

	return InputRegion{X0: int(minX), Y0: int(minY), X1: int(maxX), Y1: int(maxY)}
}

// ClampToBuffer clips a region to the valid [0,w) x [0,h) extent of a
// source buffer.
func (r InputRegion) ClampToBuffer(w, h int) InputRegion {
	if r.X0 < 0 {
		r.X0 = 0
	}
	if r.Y0 < 0 {
		r.Y0 = 0
	}
	if r.X1 > w {
		r.X1 = w
	}
	if r.Y1 > h {
		r.Y1 = h
	}
	return r
}
