// Package graph implements the pull-evaluated node graph: a directed
// acyclic graph of Source, Affine, Filter, Composite, and Sink nodes
// driven tile-by-tile by a Renderer (spec §4.3). Dispatch is a type switch
// over a small tagged Kind rather than virtual methods on a Node base
// class, matching the REDESIGN FLAGS guidance to collapse the reference
// implementation's dynamic-cast dispatch chain into one match point.
package graph

import (
	"fmt"

	"agg_go/internal/format"
	"agg_go/internal/imagebuf"
	"agg_go/internal/transform"
)

// ErrCycleDetected reports a cycle in the node graph found by name.
func ErrCycleDetected(name string) error {
	return fmt.Errorf("graph: cycle detected at node %q", name)
}

// Kind tags which variant a Node is.
type Kind int

const (
	KindSource Kind = iota
	KindAffine
	KindFilter
	KindComposite
	KindSink
	// KindMatte, KindDistributor, and KindNinePatch supplement features
	// dropped by the distillation (SPEC_FULL.md §4.3 expansion), restored
	// from original_source/fleximg/src/fleximg/nodes/.
	KindMatte
	KindDistributor
	KindNinePatch
)

// FilterKind selects which per-pixel or separable kernel a Filter node
// applies (spec §4.6).
type FilterKind int

const (
	FilterBrightness FilterKind = iota
	FilterGrayscale
	FilterAlpha
	FilterBoxBlur
)

// Node is a tagged-union node in the render graph. Only the fields
// relevant to Kind are meaningful; apply.go's dispatch reads them by kind.
type Node struct {
	Kind Kind
	Name string // for diagnostics and cycle-detection error messages

	// KindSource
	SourceBuffer *imagebuf.Buffer

	// KindAffine
	AffineUpstream *Node
	Matrix         transform.AffineMatrix

	// KindFilter
	FilterUpstream *Node
	Filter         FilterKind
	FilterParam    float64 // brightness/alpha factor
	BlurRadius     int

	// KindComposite
	CompositeInputs []*Node

	// KindSink
	SinkUpstream *Node
	SinkBuffer   *imagebuf.Buffer
	OutputFormat format.ID

	// KindMatte
	MatteColor *Node // RGB source
	MatteMask  *Node // grayscale luminance becomes the output's alpha

	// KindDistributor
	DistUpstream *Node
	distCache    *distCacheEntry // lazily populated by Apply, not a constructor arg

	// KindNinePatch
	NinePatchSource *Node
	NinePatchBorder NinePatchBorder
	NinePatchWidth  int // target canvas width the source is stretched to fill
	NinePatchHeight int
}

// distCacheEntry remembers the last RenderRequest a Distributor answered,
// so repeated Apply calls for the same tile (one per composite consumer)
// evaluate the shared upstream once (spec §4.3 expansion: "Distributor
// node").
type distCacheEntry struct {
	req    RenderRequest
	result RenderResult
}

// NinePatchBorder holds the unscaled edge widths, in source pixels, that a
// NinePatch node keeps fixed while stretching the interior (spec §4.3
// expansion: "Nine-patch source node").
type NinePatchBorder struct {
	Left, Right, Top, Bottom int
}

// NewSource creates a Source node that terminates pull recursion by
// returning a view into buf (spec §4.3 "Source nodes short-circuit").
func NewSource(name string, buf *imagebuf.Buffer) *Node {
	return &Node{Kind: KindSource, Name: name, SourceBuffer: buf}
}

// NewAffine creates an Affine node sampling upstream through a
// fixed-point DDA built from matrix (spec §4.2).
func NewAffine(name string, upstream *Node, matrix transform.AffineMatrix) *Node {
	return &Node{Kind: KindAffine, Name: name, AffineUpstream: upstream, Matrix: matrix}
}

// NewFilter creates a Filter node applying one of the per-pixel kernels
// (brightness, grayscale, alpha) to upstream (spec §4.6). param is the
// brightness or alpha multiplier; ignored for FilterGrayscale.
func NewFilter(name string, upstream *Node, kind FilterKind, param float64) *Node {
	return &Node{Kind: KindFilter, Name: name, FilterUpstream: upstream, Filter: kind, FilterParam: param}
}

// NewBoxBlur creates a Filter node applying the separable box blur of
// radius r (spec §4.6).
func NewBoxBlur(name string, upstream *Node, r int) *Node {
	return &Node{Kind: KindFilter, Name: name, FilterUpstream: upstream, Filter: FilterBoxBlur, BlurRadius: r}
}

// NewComposite creates a Composite node over-blending inputs in
// premultiplied space, first input first (spec §4.7).
func NewComposite(name string, inputs ...*Node) *Node {
	return &Node{Kind: KindComposite, Name: name, CompositeInputs: inputs}
}

// NewSink creates a Sink node that writes its upstream's result into buf
// (spec §4.3 "Node kinds"; a sink has zero graph outputs).
func NewSink(name string, upstream *Node, buf *imagebuf.Buffer) *Node {
	return &Node{Kind: KindSink, Name: name, SinkUpstream: upstream, SinkBuffer: buf}
}

// NewMatte creates a Matte node that replaces color's alpha channel with
// mask's grayscale luminance, used to apply an externally authored mask
// (spec §4.3 expansion, from
// original_source/fleximg/src/fleximg/nodes/matte_node.h).
func NewMatte(name string, color, mask *Node) *Node {
	return &Node{Kind: KindMatte, Name: name, MatteColor: color, MatteMask: mask}
}

// NewDistributor creates a fan-out pass-through node: when one upstream
// output feeds more than one Composite input in the same tile evaluation,
// wrapping it in a Distributor and referencing that single wrapper from
// every consumer lets them share one cached RenderResult: the Distributor
// keeps the result of its most recent request and serves identical repeat
// requests from it, so the shared upstream is evaluated once per tile, not
// once per consumer (spec §4.3 expansion, from
// original_source/fleximg/src/fleximg/nodes/distributor_node.h).
func NewDistributor(name string, upstream *Node) *Node {
	return &Node{Kind: KindDistributor, Name: name, DistUpstream: upstream}
}

// NewNinePatch creates a node that stretches source's interior to fill a
// targetWidth x targetHeight canvas while keeping border's rows/columns at
// native scale — useful for UI-chrome assets on embedded targets (spec
// §4.3 expansion, from
// original_source/fleximg/src/fleximg/nodes/ninepatch_source_node.h).
func NewNinePatch(name string, source *Node, border NinePatchBorder, targetWidth, targetHeight int) *Node {
	return &Node{
		Kind: KindNinePatch, Name: name, NinePatchSource: source, NinePatchBorder: border,
		NinePatchWidth: targetWidth, NinePatchHeight: targetHeight,
	}
}

// upstreamOf returns every upstream edge of n for cycle detection: the one
// upstream of an Affine, Filter, Sink, Distributor or NinePatch node, the
// color and mask inputs of a Matte, all inputs of a Composite, and nil for
// a Source.
func (n *Node) upstreamOf() []*Node {
	switch n.Kind {
	case KindAffine:
		return []*Node{n.AffineUpstream}
	case KindFilter:
		return []*Node{n.FilterUpstream}
	case KindComposite:
		return n.CompositeInputs
	case KindSink:
		return []*Node{n.SinkUpstream}
	case KindMatte:
		return []*Node{n.MatteColor, n.MatteMask}
	case KindDistributor:
		return []*Node{n.DistUpstream}
	case KindNinePatch:
		return []*Node{n.NinePatchSource}
	default:
		return nil
	}
}

// DetectCycle walks root's upstream edges and returns an error if any node
// is reachable from itself (spec §9 "Cyclic/backref avoidance": "Enforce
// this at construction: a cycle check in prepare"). Intended to be called
// once, after a pipeline's node graph is fully wired and before the first
// Execute.
func DetectCycle(root *Node) error {
	return detectCycle(root, map[*Node]bool{})
}

func detectCycle(n *Node, onPath map[*Node]bool) error {
	if n == nil {
		return nil
	}
	if onPath[n] {
		return ErrCycleDetected(n.Name)
	}
	onPath[n] = true
	defer delete(onPath, n)
	for _, up := range n.upstreamOf() {
		if err := detectCycle(up, onPath); err != nil {
			return err
		}
	}
	return nil
}

// RenderRequest describes the destination-local window a node must
// produce pixels for (spec §4.3 "pull protocol per tile").
type RenderRequest struct {
	OriginX, OriginY int
	Width, Height    int
}

// RenderResult is a node's answer to a RenderRequest: a view into a
// buffer plus the origin of that view in the requester's coordinate space
// (spec §4.3 step 3(e)).
type RenderResult struct {
	Buffer  *imagebuf.Buffer
	OriginX int
	OriginY int
	Valid   bool
}
