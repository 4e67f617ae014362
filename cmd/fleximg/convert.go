package main

import (
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	agg "agg_go"
)

func init() {
	// golang.org/x/image/bmp doesn't self-register with image.RegisterFormat
	// the way the standard library's png/jpeg/gif packages do, so BMP input
	// needs its own registration, same convention the standard library
	// packages use for their own magic-header sniffing.
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

// maxInputDim caps the longest edge of a decoded consumer-side image
// before it enters the core pipeline, a concession to the "embedded-
// capable" budget spec.md §1 describes: an arbitrarily large decoded photo
// would blow past the tile pool's block budget long before it reached any
// node. Downsampling here, outside the core, is a consumer-side concern;
// the core's own non-goal on bilinear sampling (spec.md §1) doesn't apply
// to it.
const maxInputDim = 2048

// decodeToImage reads and decodes path via the standard library's
// registered image formats (plus golang.org/x/image/bmp, registered
// above), downsamples it if either dimension exceeds maxInputDim using
// golang.org/x/image/draw's bilinear scaler, and wraps the result as an
// RGBA8Straight agg.Image — the "external PNG tool" consumer described in
// spec.md §6, made concrete.
func decodeToImage(path string) (*agg.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxInputDim || h > maxInputDim {
		scale := float64(maxInputDim) / float64(w)
		if hs := float64(maxInputDim) / float64(h); hs < scale {
			scale = hs
		}
		nw, nh := int(float64(w)*scale), int(float64(h)*scale)
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, b, draw.Src, nil)
		src = scaled
		b = scaled.Bounds()
		w, h = nw, nh
	}

	data := make([]byte, w*h*4)
	stride := w * 4
	for y := 0; y < h; y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			o := x * 4
			// image.Color.RGBA returns alpha-premultiplied 16-bit
			// components; straighten them back out before wrapping as
			// RGBA8Straight (spec.md §4.1 canonical external format).
			row[o+0] = unpremultiply8(r, a)
			row[o+1] = unpremultiply8(g, a)
			row[o+2] = unpremultiply8(bl, a)
			row[o+3] = byte(a >> 8)
		}
	}

	return agg.WrapImage(agg.RGBA8Straight, data, w, h, stride), nil
}

func unpremultiply8(c, a uint32) byte {
	if a == 0 {
		return 0
	}
	v := c * 0xFFFF / a
	if v > 0xFFFF {
		v = 0xFFFF
	}
	return byte(v >> 8)
}

// encodeImage writes out to path, picking an encoder by extension: PNG
// for unrecognized or ".png" extensions, JPEG for ".jpg"/".jpeg". This is
// the consumer-side encode half of spec.md §6's "external PNG tool".
func encodeImage(path string, out *agg.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img := imageFromBuffer(out)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	default:
		return png.Encode(f, img)
	}
}

// imageFromBuffer converts out's RGBA8Straight pixels into a standard
// library image.RGBA for encoding, straight alpha matching NRGBA exactly.
func imageFromBuffer(out *agg.Image) *image.NRGBA {
	w, h := out.Width(), out.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := out.Row(y)
		n := w * 4
		if len(row) < n {
			n = len(row)
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+n], row[:n])
	}
	return img
}
