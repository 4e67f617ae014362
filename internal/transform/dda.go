package transform

import (
	"errors"
	"math"

	"agg_go/internal/basics"
)

// AffineMatrix is the user-facing affine transform (spec §3): it maps a
// source-space point (x, y) to a destination-space point via
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
//
// This is the layout AGG's own TransAffine uses (A/B/C/D here correspond to
// TransAffine's SX/SHY/SHX/SY) re-exposed under the spec's field names so
// callers constructing a node graph don't need to know AGG's internal
// abbreviations.
type AffineMatrix struct {
	A, B, C, D, TX, TY float64
}

// Identity returns the identity affine transform.
func Identity() AffineMatrix {
	return AffineMatrix{A: 1, D: 1}
}

// toTransAffine re-expresses the matrix in the TransAffine field layout so
// the existing AGG determinant/inversion math in affine.go can be reused
// verbatim instead of re-derived.
func (m AffineMatrix) toTransAffine() TransAffine {
	return TransAffine{SX: m.A, SHY: m.B, SHX: m.C, SY: m.D, TX: m.TX, TY: m.TY}
}

func fromTransAffine(t TransAffine) AffineMatrix {
	return AffineMatrix{A: t.SX, B: t.SHY, C: t.SHX, D: t.SY, TX: t.TX, TY: t.TY}
}

// MatrixEpsilon is the minimum |determinant| for a matrix to be considered
// invertible (spec §4.2: "singular matrices (|det| < ε) fail preparation").
const MatrixEpsilon = 1e-10

// ErrSingularMatrix is returned by NewDDA when the affine matrix's
// determinant is too small to invert reliably.
var ErrSingularMatrix = errors.New("transform: singular affine matrix")

// InvMatrix holds the four fixed16 coefficients of an inverted affine
// transform (spec §3): it maps a destination-space delta to the
// corresponding source-space delta, srcX = A*dx + B*dy and
// srcY = C*dx + D*dy. Translation is held separately in DDA.InvTX/InvTY.
type InvMatrix struct {
	A, B, C, D basics.Fixed16
}

// DDA is the prepared, per-tile sampling state for an affine node (spec
// §4.2). It is built by NewDDA (applyAffine builds one per Apply call) and
// reused for every row of that request.
type DDA struct {
	Inv      InvMatrix
	InvTX    basics.Fixed16 // accumulated translation, x
	InvTY    basics.Fixed16 // accumulated translation, y
	halfInvA basics.Fixed16 // pixel-center correction of the x accumulator
	halfInvB basics.Fixed16 // pixel-center correction of the y accumulator
}

// NewDDA inverts the user matrix and prepares fixed-point DDA state.
// Returns ErrSingularMatrix if the matrix cannot be safely inverted.
func NewDDA(m AffineMatrix) (DDA, error) {
	t := m.toTransAffine()
	if math.Abs(t.Determinant()) < MatrixEpsilon {
		return DDA{}, ErrSingularMatrix
	}
	t.Invert()
	inv := fromTransAffine(t)

	// InvMatrix's B (dy coefficient of srcX) and C (dx coefficient of srcY)
	// are AffineMatrix's c and b respectively.
	d := DDA{
		Inv: InvMatrix{
			A: basics.FloatToFixed16(inv.A),
			B: basics.FloatToFixed16(inv.C),
			C: basics.FloatToFixed16(inv.B),
			D: basics.FloatToFixed16(inv.D),
		},
		InvTX: basics.FloatToFixed16(inv.TX),
		InvTY: basics.FloatToFixed16(inv.TY),
	}
	// Pixel-center correction (spec §4.2): each sample reads the center of
	// the destination pixel, not its top-left corner, eliminating half-pixel
	// bias at identity. Each accumulator gets half a dx step plus half a dy
	// step.
	d.halfInvA = d.Inv.A>>1 + d.Inv.B>>1
	d.halfInvB = d.Inv.C>>1 + d.Inv.D>>1
	return d, nil
}

// RowBase computes the fixed16 accumulator base for destination row dy:
// rowBaseX = invB*dy + invTx + the x pixel-center correction, rowBaseY
// analogously with invD, invTy and the y pixel-center correction.
func (d DDA) RowBase(dy int) (baseX, baseY basics.Fixed16) {
	baseX = basics.MulFixed16(dy, d.Inv.B) + d.InvTX + d.halfInvA
	baseY = basics.MulFixed16(dy, d.Inv.D) + d.InvTY + d.halfInvB
	return
}

// Sample computes the integer source pixel coordinate for destination
// column dx given the row base accumulators from RowBase. The accumulator
// is truncated toward negative infinity via an arithmetic shift (spec
// §4.2 step 3), so a destination pixel that maps left of or above the
// source yields a negative coordinate; callers bounds-check the result
// against the source buffer before reading it.
func (d DDA) Sample(dx int, baseX, baseY basics.Fixed16) (srcX, srcY int32) {
	sx := basics.MulFixed16(dx, d.Inv.A) + baseX
	sy := basics.MulFixed16(dx, d.Inv.C) + baseY
	srcX = int32(sx) >> basics.Fixed16Shift
	srcY = int32(sy) >> basics.Fixed16Shift
	return
}
