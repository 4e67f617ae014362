// Package agg implements a pixel-format-polymorphic 2D image rendering
// pipeline: a directed acyclic graph of nodes pulled tile-by-tile by a
// scheduler, in the style of this module's own internal packages — a
// thin facade over internal/graph, internal/imagebuf, and
// internal/format so host code never imports internal/ directly.
package agg

import (
	"errors"

	"agg_go/internal/bufferpool"
	"agg_go/internal/format"
	"agg_go/internal/graph"
	"agg_go/internal/imagebuf"
	"agg_go/internal/transform"
)

// Re-exported pixel format IDs (spec §4.1).
const (
	RGB332               = format.RGB332
	RGB565LE             = format.RGB565LE
	RGB565BE             = format.RGB565BE
	RGB888               = format.RGB888
	BGR888               = format.BGR888
	RGBA8Straight        = format.RGBA8Straight
	RGBA16Premultiplied  = format.RGBA16Premultiplied
	Gray8                = format.Gray8
	Index8               = format.Index8
	BitPackedIndex1      = format.BitPackedIndex1
	BitPackedIndex2      = format.BitPackedIndex2
	BitPackedIndex4      = format.BitPackedIndex4
)

// FormatID identifies a pixel format (spec §4.1 table).
type FormatID = format.ID

// AffineMatrix is the user-facing affine transform (spec §3).
type AffineMatrix = transform.AffineMatrix

// Identity returns the identity affine transform.
func Identity() AffineMatrix { return transform.Identity() }

// Image is an owning rectangular pixel buffer (spec §3 "ImageBuffer").
type Image struct {
	buf *imagebuf.Buffer
}

// NewImage allocates a zero-filled image of the given format and
// dimensions.
func NewImage(id FormatID, width, height int) *Image {
	return &Image{buf: imagebuf.New(id, width, height)}
}

// WrapImage wraps existing pixel data (e.g. decoded by a consumer-side
// image codec) as an Image without copying it.
func WrapImage(id FormatID, data []byte, width, height, stride int) *Image {
	return &Image{buf: imagebuf.Attach(id, data, width, height, stride)}
}

// Row returns the raw backing bytes of row y.
func (img *Image) Row(y int) []byte { return img.buf.Row(y) }

// Format, Width, Height, Stride report the image's layout.
func (img *Image) Format() FormatID { return img.buf.Format() }
func (img *Image) Width() int       { return img.buf.Width() }
func (img *Image) Height() int      { return img.buf.Height() }
func (img *Image) Stride() int      { return img.buf.Stride() }

// Node is one vertex of the render graph (spec §3 "Node").
type Node struct{ n *graph.Node }

// Source creates a node that terminates pull recursion at img (spec §4.3
// "Node kinds").
func Source(name string, img *Image) Node {
	return Node{n: graph.NewSource(name, img.buf)}
}

// Affine creates a node sampling upstream through a fixed-point affine DDA
// (spec §4.2).
func Affine(name string, upstream Node, m AffineMatrix) Node {
	return Node{n: graph.NewAffine(name, upstream.n, m)}
}

// Brightness creates a filter node multiplying RGB by factor, clamping at
// the format's max channel value (spec §4.6).
func Brightness(name string, upstream Node, factor float64) Node {
	return Node{n: graph.NewFilter(name, upstream.n, graph.FilterBrightness, factor)}
}

// Grayscale creates a filter node replacing RGB with its luma (spec §4.6).
func Grayscale(name string, upstream Node) Node {
	return Node{n: graph.NewFilter(name, upstream.n, graph.FilterGrayscale, 0)}
}

// Alpha creates a filter node scaling alpha by factor (spec §4.6).
func Alpha(name string, upstream Node, factor float64) Node {
	return Node{n: graph.NewFilter(name, upstream.n, graph.FilterAlpha, factor)}
}

// BoxBlur creates a filter node applying a separable box blur of the
// given radius (spec §4.6).
func BoxBlur(name string, upstream Node, radius int) Node {
	return Node{n: graph.NewBoxBlur(name, upstream.n, radius)}
}

// Composite creates a node that over-blends inputs in premultiplied space,
// first input first (spec §4.7).
func Composite(name string, inputs ...Node) Node {
	ns := make([]*graph.Node, len(inputs))
	for i, in := range inputs {
		ns[i] = in.n
	}
	return Node{n: graph.NewComposite(name, ns...)}
}

// Matte creates a node that replaces color's alpha channel with the
// grayscale luminance of mask, for applying an externally authored mask
// (spec §4.3 expansion).
func Matte(name string, color, mask Node) Node {
	return Node{n: graph.NewMatte(name, color.n, mask.n)}
}

// Distributor creates a fan-out pass-through node: wrap a shared upstream
// in one Distributor and reference that wrapper from every Composite
// input that needs it, so the upstream is evaluated once per tile rather
// than once per consumer (spec §4.3 expansion).
func Distributor(name string, upstream Node) Node {
	return Node{n: graph.NewDistributor(name, upstream.n)}
}

// NinePatchBorder holds the unscaled edge widths, in source pixels, a
// NinePatch node keeps fixed while stretching the interior (spec §4.3
// expansion).
type NinePatchBorder = graph.NinePatchBorder

// NinePatch creates a node that stretches source's interior to fill a
// targetWidth x targetHeight canvas while holding border's rows/columns
// at native scale (spec §4.3 expansion).
func NinePatch(name string, source Node, border NinePatchBorder, targetWidth, targetHeight int) Node {
	return Node{n: graph.NewNinePatch(name, source.n, border, targetWidth, targetHeight)}
}

// Pipeline owns a node graph's shared evaluation state: the intermediate
// buffer pool and an evaluator tracking in-progress nodes for cycle
// detection during Apply (spec §5 "Buffer pool: owned by a single
// renderer; all node allocations go through it").
type Pipeline struct {
	pool *graph.EntryPool
	eval *graph.Evaluator
}

// PoolConfig sizes the intermediate buffer pool backing a Pipeline (spec
// §4.4/§4.5).
type PoolConfig struct {
	Slots      int // concurrent intermediate buffers (spec §4.5 "fixed array of buffer slots")
	BlockSize  int // bitmap-allocator block size in bytes (spec §4.4)
	BlockCount int // bitmap-allocator block count, at most bufferpool.MaxBlocks
}

// DefaultPoolConfig sizes the pool for tileSize x tileSize
// RGBA16Premultiplied tiles (8 bytes/pixel), with enough slots for a
// Composite node's inputs plus its own output.
func DefaultPoolConfig(tileSize int) PoolConfig {
	block := tileSize * tileSize * 8
	return PoolConfig{Slots: 8, BlockSize: block, BlockCount: 8}
}

// NewPipeline creates a Pipeline with an intermediate buffer pool sized by
// cfg.
func NewPipeline(cfg PoolConfig) *Pipeline {
	pool := graph.NewEntryPool(cfg.Slots, cfg.BlockSize, cfg.BlockCount)
	return &Pipeline{pool: pool, eval: graph.NewEvaluator(pool)}
}

// Sink creates a node that writes its upstream's result into out's
// backing buffer (spec §4.3 "Node kinds").
func (p *Pipeline) Sink(name string, upstream Node, out *Image) Node {
	return Node{n: graph.NewSink(name, upstream.n, out.buf)}
}

// ErrCyclicGraph is returned by Execute when the node graph rooted at
// sink contains a cycle (spec §9 "Cyclic/backref avoidance").
var ErrCyclicGraph = errors.New("agg: cyclic node graph")

// Execute renders width x height pixels of sink's graph in tileSize x
// tileSize tiles (spec §4.3 "Scheduler (renderer)"), checking the graph
// for cycles before the first tile is evaluated (spec §9's construction-
// time cycle check). TileStatus on the returned Scheduler records per-
// tile success (spec §7).
func (p *Pipeline) Execute(sink Node, width, height, tileSize int) (*graph.Scheduler, error) {
	if err := graph.DetectCycle(sink.n); err != nil {
		return nil, ErrCyclicGraph
	}
	sched := &graph.Scheduler{Evaluator: p.eval, TileWidth: tileSize, TileHeight: tileSize}
	if err := sched.Execute(sink.n, width, height); err != nil {
		return sched, err
	}
	return sched, nil
}

// PoolStats exposes the pipeline's bitmap allocator statistics (spec
// §4.4 "Statistics ... are exposed").
func (p *Pipeline) PoolStats() bufferpool.Stats { return p.pool.Stats() }
