package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	agg "agg_go"
)

// showPreview opens a go-sdl2 window sized to out and blits its
// RGBA8Straight pixels into an SDL surface, the same copy-to-surface
// pattern the teacher's examples/sdl2_demo backend uses for its own
// render loop, adapted here to display one static raster result rather
// than drive a live animation. The window stays up until closed or a key
// is pressed (SPEC_FULL.md §1a "DOMAIN STACK").
func showPreview(out *agg.Image) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	w, h := out.Width(), out.Height()
	window, err := sdl.CreateWindow("fleximg preview",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(w), int32(h), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	surface, err := window.GetSurface()
	if err != nil {
		return fmt.Errorf("get surface: %w", err)
	}

	if err := copyRGBA8ToSurface(out, surface); err != nil {
		return err
	}
	if err := window.UpdateSurface(); err != nil {
		return fmt.Errorf("update surface: %w", err)
	}

	for {
		switch ev := sdl.WaitEvent().(type) {
		case *sdl.QuitEvent:
			return nil
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN {
				return nil
			}
		}
	}
}

// copyRGBA8ToSurface converts out's RGBA8Straight rows into the surface's
// native pixel format, grounded on the teacher's
// internal/platform/sdl2.copyRGBA32ToSurface conversion routine.
func copyRGBA8ToSurface(out *agg.Image, surface *sdl.Surface) error {
	if err := surface.Lock(); err != nil {
		return fmt.Errorf("lock surface: %w", err)
	}
	defer surface.Unlock()

	dst := surface.Pixels()
	dstStride := int(surface.Pitch)
	w, h := out.Width(), out.Height()
	bpp := int(surface.Format.BytesPerPixel)

	for y := 0; y < h; y++ {
		src := out.Row(y)
		dstRow := y * dstStride
		for x := 0; x < w; x++ {
			so := x * 4
			do := dstRow + x*bpp
			if so+3 >= len(src) || do+bpp > len(dst) {
				continue
			}
			r, g, b, a := src[so], src[so+1], src[so+2], src[so+3]
			px := sdl.MapRGBA(surface.Format, r, g, b, a)
			switch bpp {
			case 4:
				dst[do+0] = byte(px)
				dst[do+1] = byte(px >> 8)
				dst[do+2] = byte(px >> 16)
				dst[do+3] = byte(px >> 24)
			case 3:
				dst[do+0] = byte(px)
				dst[do+1] = byte(px >> 8)
				dst[do+2] = byte(px >> 16)
			default:
				dst[do] = byte(px)
			}
		}
	}
	return nil
}
