package bufferpool

import "testing"

func TestNewRejectsOversizedBlockCount(t *testing.T) {
	if _, ok := New(make([]byte, 1024), 16, MaxBlocks+1); ok {
		t.Fatal("New should reject blockCount > MaxBlocks")
	}
}

func TestAllocateDeallocateRoundTrip(t *testing.T) {
	p, ok := New(make([]byte, 16*4), 16, 4)
	if !ok {
		t.Fatal("New failed")
	}
	a := p.Allocate(16)
	if a == nil {
		t.Fatal("Allocate(16) returned nil")
	}
	if p.UsedBlockCount() != 1 {
		t.Fatalf("UsedBlockCount = %d, want 1", p.UsedBlockCount())
	}
	if !p.Deallocate(a) {
		t.Fatal("Deallocate failed on a fresh allocation")
	}
	if p.UsedBlockCount() != 0 {
		t.Fatalf("UsedBlockCount after free = %d, want 0", p.UsedBlockCount())
	}
}

func TestAllocateMultiBlockRun(t *testing.T) {
	p, ok := New(make([]byte, 16*4), 16, 4)
	if !ok {
		t.Fatal("New failed")
	}
	a := p.Allocate(33) // needs 3 blocks
	if a == nil {
		t.Fatal("Allocate(33) returned nil")
	}
	if p.UsedBlockCount() != 3 {
		t.Fatalf("UsedBlockCount = %d, want 3", p.UsedBlockCount())
	}
	if p.Allocate(33) != nil {
		t.Fatal("second 3-block allocation should fail: only 1 block left")
	}
}

func TestDoubleDeallocateFails(t *testing.T) {
	p, ok := New(make([]byte, 16*4), 16, 4)
	if !ok {
		t.Fatal("New failed")
	}
	a := p.Allocate(16)
	if !p.Deallocate(a) {
		t.Fatal("first Deallocate should succeed")
	}
	if p.Deallocate(a) {
		t.Fatal("second Deallocate of the same block should fail")
	}
}

func TestDeallocateOutOfPoolPointerFails(t *testing.T) {
	p, ok := New(make([]byte, 16*4), 16, 4)
	if !ok {
		t.Fatal("New failed")
	}
	foreign := make([]byte, 16)
	if p.Deallocate(foreign) {
		t.Fatal("Deallocate should reject a pointer outside the pool")
	}
}

func TestSearchDirectionAlternates(t *testing.T) {
	p, ok := New(make([]byte, 16*4), 16, 4)
	if !ok {
		t.Fatal("New failed")
	}
	first := p.Allocate(16)
	second := p.Allocate(16)
	if first == nil || second == nil {
		t.Fatal("expected both allocations to succeed")
	}
	firstOff := sliceOffset(p.memory, first)
	secondOff := sliceOffset(p.memory, second)
	if firstOff == secondOff {
		t.Fatal("alternating search should not reuse the same block twice in a row")
	}
}

func TestAllocateExceedingCapacityFails(t *testing.T) {
	p, ok := New(make([]byte, 16*4), 16, 4)
	if !ok {
		t.Fatal("New failed")
	}
	if p.Allocate(16*5) != nil {
		t.Fatal("Allocate beyond total pool capacity should fail")
	}
}
