package main

import (
	"math"

	agg "agg_go"
)

// rotate composes a rotation of degrees (counterclockwise, matching
// agg_go's TransAffine convention) onto m.
func rotate(m agg.AffineMatrix, degrees float64) agg.AffineMatrix {
	r := degrees * math.Pi / 180
	cos, sin := math.Cos(r), math.Sin(r)
	return multiply(m, agg.AffineMatrix{A: cos, B: sin, C: -sin, D: cos})
}

// scaleMatrix composes a uniform scale onto m.
func scaleMatrix(m agg.AffineMatrix, factor float64) agg.AffineMatrix {
	return multiply(m, agg.AffineMatrix{A: factor, D: factor})
}

// translate composes a translation onto m.
func translate(m agg.AffineMatrix, tx, ty float64) agg.AffineMatrix {
	return multiply(m, agg.AffineMatrix{A: 1, D: 1, TX: tx, TY: ty})
}

// multiply composes "apply m, then apply n" into a single matrix, using
// the same row-vector convention as agg_go's TransAffine.Multiply: a
// point is transformed by m first, then by n.
func multiply(m, n agg.AffineMatrix) agg.AffineMatrix {
	return agg.AffineMatrix{
		A:  m.A*n.A + m.B*n.C,
		B:  m.A*n.B + m.B*n.D,
		C:  m.C*n.A + m.D*n.C,
		D:  m.C*n.B + m.D*n.D,
		TX: m.TX*n.A + m.TY*n.C + n.TX,
		TY: m.TX*n.B + m.TY*n.D + n.TY,
	}
}
