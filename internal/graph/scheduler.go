package graph

// Scheduler drives a pipeline's Sink node tile by tile (spec §4.3, §5
// "Scheduling model"). It is the "renderer" of spec §2: the only caller
// that ever issues a top-level RenderRequest, every other call in the
// graph is a response to one. Tiles are evaluated strictly left-to-right,
// top-to-bottom (spec §5 "Ordering guarantees"); nothing here is
// reentered concurrently, matching the single-threaded cooperative model.
type Scheduler struct {
	Evaluator *Evaluator
	TileWidth int
	TileHeight int

	// Checkerboard, when true, skips every other tile in a checkerboard
	// pattern — a debug aid for visualizing tile boundaries (spec §4.3
	// "Debug checkerboard"). It never affects the non-debug render path.
	Checkerboard bool

	// TileStatus is reset by each Execute and then receives one entry per
	// tile in evaluation order recording whether that tile's render
	// succeeded (spec §7 "callers may detect via a per-tile status flag");
	// a tile skipped by Checkerboard is recorded as true.
	TileStatus []bool
}

// Execute renders sink by pulling width x height pixels from its upstream
// in TileWidth x TileHeight tiles, writing each tile directly into the
// sink's backing buffer as Apply's sink case does. The sink node itself
// must already be configured with its backing buffer and upstream.
//
// Callers that need guaranteed-clean output must clear the sink's buffer
// before calling Execute (spec §7 "Callers that need guaranteed-clean
// output must clear the sink before execute()"); a tile whose render
// fails leaves the sink's pre-existing content for that tile untouched.
func (s *Scheduler) Execute(sink *Node, width, height int) error {
	if s.TileWidth <= 0 || s.TileHeight <= 0 {
		return ErrInvalidSlot
	}
	s.TileStatus = s.TileStatus[:0]

	tileIndex := 0
	for ty := 0; ty*s.TileHeight < height; ty++ {
		for tx := 0; tx*s.TileWidth < width; tx++ {
			skip := s.Checkerboard && (tx+ty)%2 == 1
			ok := true
			if !skip {
				x0 := tx * s.TileWidth
				y0 := ty * s.TileHeight
				w := minInt(s.TileWidth, width-x0)
				h := minInt(s.TileHeight, height-y0)
				req := RenderRequest{OriginX: x0, OriginY: y0, Width: w, Height: h}
				res, err := s.Evaluator.Apply(sink, req)
				if err != nil {
					return err
				}
				ok = res.Valid
			}
			s.TileStatus = append(s.TileStatus, ok)
			tileIndex++
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
