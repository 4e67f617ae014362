package transform

import (
	"math"

	"agg_go/internal/basics"
)

// Strip splitting parameters (spec §4.2).
const (
	MinSplitSize  = 32
	MaxSplitCount = 8
)

// Strip is one trapezoidal slice of a destination tile, together with the
// input region it requires. Stitching the strips' outputs back together at
// their destination rectangles reproduces the unsplit render exactly (spec
// §8 property 4).
type Strip struct {
	X0, Y0, X1, Y1 int // destination-local rectangle, half-open
	Region         InputRegion
}

// ShouldSplit reports whether splitting the destination rectangle into
// strips would meaningfully reduce the number of source pixels requested
// from upstream: the AABB must be at least 1.5x the actual sampled
// parallelogram area, and the longer destination axis must be at least
// MinSplitSize.
func ShouldSplit(d DDA, width, height int, aabb InputRegion) bool {
	if width < MinSplitSize && height < MinSplitSize {
		return false
	}
	aabbPixels := aabb.Width() * aabb.Height()
	if aabbPixels <= 0 {
		return false
	}
	invDet := math.Abs(basics.Fixed16ToFloat(d.Inv.A)*basics.Fixed16ToFloat(d.Inv.D) -
		basics.Fixed16ToFloat(d.Inv.B)*basics.Fixed16ToFloat(d.Inv.C))
	parallelogramPixels := float64(width) * float64(height) * invDet
	return float64(aabbPixels) > 1.5*parallelogramPixels
}

// SplitStrips partitions a width x height destination rectangle into up to
// MaxSplitCount strips along whichever axis (rows or columns) minimizes the
// total number of source pixels requested, falling back to a single
// unsplit strip when splitting would not help (spec §4.2).
func SplitStrips(d DDA, width, height int) []Strip {
	full := ComputeInputRegion(d, width, height)
	if !ShouldSplit(d, width, height, full) {
		return []Strip{{X0: 0, Y0: 0, X1: width, Y1: height, Region: full}}
	}

	byColumns := buildStrips(d, width, height, true)
	byRows := buildStrips(d, width, height, false)

	if sumRegionPixels(byColumns) <= sumRegionPixels(byRows) {
		return byColumns
	}
	return byRows
}

func splitCount(extent int) int {
	n := extent / MinSplitSize
	if n < 2 {
		return 2
	}
	if n > MaxSplitCount {
		return MaxSplitCount
	}
	return n
}

func buildStrips(d DDA, width, height int, vertical bool) []Strip {
	extent := width
	if !vertical {
		extent = height
	}
	n := splitCount(extent)
	strips := make([]Strip, 0, n)

	start := 0
	for i := 0; i < n; i++ {
		end := (extent * (i + 1)) / n
		if end <= start {
			continue
		}
		var s Strip
		if vertical {
			s = Strip{X0: start, Y0: 0, X1: end, Y1: height}
			s.Region = ComputeInputRegionRect(d, s.X0, s.Y0, s.X1, s.Y1)
		} else {
			s = Strip{X0: 0, Y0: start, X1: width, Y1: end}
			s.Region = ComputeInputRegionRect(d, s.X0, s.Y0, s.X1, s.Y1)
		}
		strips = append(strips, s)
		start = end
	}
	return strips
}

func sumRegionPixels(strips []Strip) int {
	total := 0
	for _, s := range strips {
		total += s.Region.Width() * s.Region.Height()
	}
	return total
}
