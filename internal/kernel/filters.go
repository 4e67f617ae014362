// Package kernel implements the per-pixel and separable filter kernels a
// Filter node applies to an RGBA16_Premultiplied row: brightness,
// grayscale, alpha scaling, and box blur (spec §4.6).
package kernel

import "agg_go/internal/format"

// clampU16 saturates a wider integer back into the uint16 channel range.
func clampU16(v int64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

// Brightness scales the RGB channels of each pixel in row by factor,
// leaving premultiplied alpha untouched; premultiplication commutes with a
// uniform scalar multiply, so no separate unpremultiply/repremultiply step
// is needed (spec §4.6).
func Brightness(row []format.RGBA16, factor float64) {
	for i := range row {
		p := &row[i]
		p.R = clampU16(int64(float64(p.R) * factor))
		p.G = clampU16(int64(float64(p.G) * factor))
		p.B = clampU16(int64(float64(p.B) * factor))
	}
}

// Grayscale collapses RGB to the ITU-R BT.601 luma in fixed point (8-bit
// shift, integer coefficients), leaving alpha untouched (spec §4.6).
func Grayscale(row []format.RGBA16) {
	const (
		coeffR = 77  // 0.299 * 256, rounded
		coeffG = 150 // 0.587 * 256, rounded
		coeffB = 29  // 0.114 * 256, rounded
	)
	for i := range row {
		p := &row[i]
		y := (coeffR*int(p.R) + coeffG*int(p.G) + coeffB*int(p.B)) >> 8
		v := clampU16(int64(y))
		p.R, p.G, p.B = v, v, v
	}
}

// Alpha scales premultiplied RGB and alpha uniformly by factor, matching
// straight-alpha's a' = clamp(a*f) under premultiplication (spec §4.6).
func Alpha(row []format.RGBA16, factor float64) {
	for i := range row {
		p := &row[i]
		p.R = clampU16(int64(float64(p.R) * factor))
		p.G = clampU16(int64(float64(p.G) * factor))
		p.B = clampU16(int64(float64(p.B) * factor))
		p.A = clampU16(int64(float64(p.A) * factor))
	}
}
