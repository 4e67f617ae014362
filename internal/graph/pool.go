package graph

import (
	"errors"

	"agg_go/internal/bufferpool"
	"agg_go/internal/format"
	"agg_go/internal/imagebuf"
)

// ErrDoubleRelease is returned by EntryPool.Release when the slot is
// already free (spec §4.5: "double-release is detected and is a fatal
// pipeline error"). Go idiom favors a returned error a caller can treat as
// fatal over an unconditional panic, so the fatality is the caller's
// choice.
var ErrDoubleRelease = errors.New("graph: double release of buffer slot")

// ErrInvalidSlot is returned for a slot index outside the pool's range.
var ErrInvalidSlot = errors.New("graph: invalid buffer slot index")

// ErrPoolExhausted is returned by Acquire when every slot is in use or the
// bitmap allocator cannot cover the requested buffer.
var ErrPoolExhausted = errors.New("graph: entry pool exhausted")

// EntryPool owns a fixed array of buffer slots that intermediate render
// results borrow from (spec §4.5). A slot's bookkeeping (in-use flag,
// current *imagebuf.Buffer) is tracked here; the bytes behind each slot's
// buffer come from a single bufferpool.Pool bitmap allocator (spec §4.4),
// so an EntryPool is the "owner" that hands the bitmap pool's block runs
// out pre-wrapped as ImageBuffers instead of raw byte slices.
type EntryPool struct {
	used []bool
	bufs []*imagebuf.Buffer
	mem  *bufferpool.Pool
}

// NewEntryPool creates a pool with the given fixed number of slots, backed
// by a bitmap allocator of blockCount blocks of blockSize bytes each (spec
// §4.4). blockSize should cover the largest single-slot buffer a pipeline
// is expected to request (e.g. one tile's worth of RGBA16Premultiplied
// pixels); a request too large for any contiguous run of blocks is a pool
// miss, surfaced as ErrPoolExhausted.
func NewEntryPool(capacity, blockSize, blockCount int) *EntryPool {
	mem, ok := bufferpool.New(make([]byte, blockSize*blockCount), blockSize, blockCount)
	if !ok {
		mem = nil
	}
	return &EntryPool{
		used: make([]bool, capacity),
		bufs: make([]*imagebuf.Buffer, capacity),
		mem:  mem,
	}
}

// Acquire reserves a free slot and fills it with a buffer of the requested
// format and dimensions, carved from the bitmap allocator (spec §4.5
// "fills its ImageBuffer fields... data from the bitmap allocator"). A
// bitmap-allocator miss (spec §7 "resource exhaustion") propagates as
// ErrPoolExhausted without falling back to a fresh system allocation, so
// pool pressure is always observable by scheduler tests.
func (p *EntryPool) Acquire(id format.ID, width, height int) (int, *imagebuf.Buffer, error) {
	slot := -1
	for i, inUse := range p.used {
		if !inUse {
			slot = i
			break
		}
	}
	if slot == -1 {
		return -1, nil, ErrPoolExhausted
	}

	desc := format.Lookup(id)
	need := desc.Stride(width) * height
	raw := p.mem.Allocate(need)
	if raw == nil {
		return -1, nil, ErrPoolExhausted
	}
	for i := range raw {
		raw[i] = 0
	}

	buf := imagebuf.NewFromSlice(id, width, height, raw)
	p.used[slot] = true
	p.bufs[slot] = buf
	return slot, buf, nil
}

// Release returns slot to the pool, freeing its backing memory back to
// the bitmap allocator.
func (p *EntryPool) Release(slot int) error {
	if slot < 0 || slot >= len(p.used) {
		return ErrInvalidSlot
	}
	if !p.used[slot] {
		return ErrDoubleRelease
	}
	p.mem.Deallocate(p.bufs[slot].Row(0))
	p.used[slot] = false
	p.bufs[slot] = nil
	return nil
}

// Stats exposes the backing bitmap allocator's hit/miss counters (spec
// §4.4 "Statistics ... are exposed").
func (p *EntryPool) Stats() bufferpool.Stats {
	return p.mem.Stats()
}

// BufferSet is a handle set that borrows EntryPool slots without
// duplication (spec §4.5 "ImageBufferSet"): a node that acquires several
// concurrent intermediates (a Composite node's N inputs) tracks them here
// and releases them all together once its kernel has consumed them.
type BufferSet struct {
	pool *EntryPool
	held []int
}

// NewBufferSet creates a BufferSet borrowing from pool.
func NewBufferSet(pool *EntryPool) *BufferSet {
	return &BufferSet{pool: pool}
}

// Acquire borrows one new slot into this set.
func (s *BufferSet) Acquire(id format.ID, width, height int) (*imagebuf.Buffer, error) {
	slot, buf, err := s.pool.Acquire(id, width, height)
	if err != nil {
		return nil, err
	}
	s.held = append(s.held, slot)
	return buf, nil
}

// ReleaseAll returns every slot this set has borrowed.
func (s *BufferSet) ReleaseAll() error {
	for _, slot := range s.held {
		if err := s.pool.Release(slot); err != nil {
			return err
		}
	}
	s.held = s.held[:0]
	return nil
}
