package kernel

import "agg_go/internal/format"

// BoxBlur applies a separable box blur of the given radius to an
// RGBA16_Premultiplied pixel grid (rows of equal width), padding the edges
// with fully transparent pixels rather than clamping or wrapping. The
// result is wider and taller than the input by radius pixels on every
// side (spec §4.6).
//
// Each pass keeps a running sum of color*alpha and of alpha across a
// sliding window of size 2*radius+1 and updates it in O(1) per output
// pixel by adding the entering sample and subtracting the one leaving the
// window, rather than resumming the whole window every step.
func BoxBlur(grid [][]format.RGBA16, radius int) [][]format.RGBA16 {
	if radius <= 0 || len(grid) == 0 {
		return grid
	}
	horiz := blurHorizontal(grid, radius)
	return blurVertical(horiz, radius)
}

func blurHorizontal(grid [][]format.RGBA16, radius int) [][]format.RGBA16 {
	height := len(grid)
	width := len(grid[0])
	outWidth := width + 2*radius
	out := make([][]format.RGBA16, height)
	window := 2*radius + 1

	for y := 0; y < height; y++ {
		out[y] = make([]format.RGBA16, outWidth)
		src := grid[y]

		var sumCA [3]int64
		var sumA int64
		// Prime the window for output x=0, which is centered on input
		// x = -radius (i.e. the window spans input indices [-2*radius, 0]).
		for dx := -2 * radius; dx <= 0; dx++ {
			if p, ok := sampleAt(src, dx); ok {
				addSample(&sumCA, &sumA, p)
			}
		}

		for x := 0; x < outWidth; x++ {
			out[y][x] = weightedAverage(sumCA, sumA, window)
			if x+1 >= outWidth {
				break
			}
			leaving := x - 2*radius
			entering := x + 1
			if p, ok := sampleAt(src, leaving); ok {
				subSample(&sumCA, &sumA, p)
			}
			if p, ok := sampleAt(src, entering); ok {
				addSample(&sumCA, &sumA, p)
			}
		}
	}
	return out
}

func blurVertical(grid [][]format.RGBA16, radius int) [][]format.RGBA16 {
	height := len(grid)
	width := len(grid[0])
	outHeight := height + 2*radius
	out := make([][]format.RGBA16, outHeight)
	for y := range out {
		out[y] = make([]format.RGBA16, width)
	}
	window := 2*radius + 1

	for x := 0; x < width; x++ {
		var sumCA [3]int64
		var sumA int64
		for dy := -2 * radius; dy <= 0; dy++ {
			if p, ok := sampleColAt(grid, x, dy); ok {
				addSample(&sumCA, &sumA, p)
			}
		}
		for y := 0; y < outHeight; y++ {
			out[y][x] = weightedAverage(sumCA, sumA, window)
			if y+1 >= outHeight {
				break
			}
			leaving := y - 2*radius
			entering := y + 1
			if p, ok := sampleColAt(grid, x, leaving); ok {
				subSample(&sumCA, &sumA, p)
			}
			if p, ok := sampleColAt(grid, x, entering); ok {
				addSample(&sumCA, &sumA, p)
			}
		}
	}
	return out
}

func sampleAt(row []format.RGBA16, x int) (format.RGBA16, bool) {
	if x < 0 || x >= len(row) {
		return format.RGBA16{}, false
	}
	return row[x], true
}

func sampleColAt(grid [][]format.RGBA16, x, y int) (format.RGBA16, bool) {
	if y < 0 || y >= len(grid) {
		return format.RGBA16{}, false
	}
	return grid[y][x], true
}

func addSample(sumCA *[3]int64, sumA *int64, p format.RGBA16) {
	a := int64(p.A)
	sumCA[0] += int64(p.R) * a
	sumCA[1] += int64(p.G) * a
	sumCA[2] += int64(p.B) * a
	*sumA += a
}

func subSample(sumCA *[3]int64, sumA *int64, p format.RGBA16) {
	a := int64(p.A)
	sumCA[0] -= int64(p.R) * a
	sumCA[1] -= int64(p.G) * a
	sumCA[2] -= int64(p.B) * a
	*sumA -= a
}

// weightedAverage forms the blurred output pixel: color channels are the
// alpha-weighted average sum(c*a)/sum(a) (zero if sum(a)==0, avoiding a
// division trap at fully transparent windows), and alpha is sum(a)
// averaged over the full kernel size rather than just the samples that
// happened to be opaque, so a mostly-transparent window still fades out.
func weightedAverage(sumCA [3]int64, sumA int64, kernelSize int) format.RGBA16 {
	var r, g, b int64
	if sumA > 0 {
		r = sumCA[0] / sumA
		g = sumCA[1] / sumA
		b = sumCA[2] / sumA
	}
	a := sumA / int64(kernelSize)
	return format.RGBA16{
		R: clampU16(r),
		G: clampU16(g),
		B: clampU16(b),
		A: clampU16(a),
	}
}
