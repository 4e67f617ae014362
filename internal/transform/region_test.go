package transform

import "agg_go/internal/basics"

import "testing"

func TestCalcValidRangePositiveStep(t *testing.T) {
	one := basics.Fixed16One
	// base=0, step=1.0 (one unit per dx), srcExtent=10, dstExtent=20.
	// Valid while 0 <= dx*ONE < 10*ONE, i.e. dx in [0,9].
	start, end, ok := CalcValidRange(basics.Fixed16(one), 0, 10, 20)
	if !ok || start != 0 || end != 9 {
		t.Errorf("CalcValidRange = (%d,%d,%v), want (0,9,true)", start, end, ok)
	}
}

func TestCalcValidRangeNegativeStep(t *testing.T) {
	one := basics.Fixed16One
	base := basics.Fixed16(9 * one) // dx=0 maps to srcExtent-1
	start, end, ok := CalcValidRange(basics.Fixed16(-one), base, 10, 20)
	if !ok || start != 0 || end != 9 {
		t.Errorf("CalcValidRange (neg step) = (%d,%d,%v), want (0,9,true)", start, end, ok)
	}
}

func TestCalcValidRangeEmpty(t *testing.T) {
	one := basics.Fixed16One
	// base way out of range, step won't bring it back within dstExtent.
	start, end, ok := CalcValidRange(basics.Fixed16(one), basics.Fixed16(1000*one), 10, 20)
	if ok {
		t.Errorf("CalcValidRange = (%d,%d,%v), want ok=false", start, end, ok)
	}
}

func TestComputeInputRegionIdentity(t *testing.T) {
	d, err := NewDDA(Identity())
	if err != nil {
		t.Fatalf("NewDDA: %v", err)
	}
	r := ComputeInputRegion(d, 10, 10)
	// The pixel-center correction shifts sampled coordinates by half a
	// pixel, so the outward-rounded AABB may exceed the destination extent
	// by a small margin (spec §8 property 3: excess margin <= 4 pixels).
	if r.X0 != 0 || r.Y0 != 0 || r.X1 < 10 || r.X1 > 11 || r.Y1 < 10 || r.Y1 > 11 {
		t.Errorf("ComputeInputRegion(identity,10,10) = %+v, want X0=Y0=0, X1/Y1 in [10,11]", r)
	}
}
