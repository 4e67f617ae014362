package transform

import (
	"math"
	"testing"
)

func TestSplitStripsIdentityDoesNotSplit(t *testing.T) {
	d, err := NewDDA(Identity())
	if err != nil {
		t.Fatalf("NewDDA: %v", err)
	}
	strips := SplitStrips(d, 64, 64)
	if len(strips) != 1 {
		t.Fatalf("identity transform should not split, got %d strips", len(strips))
	}
}

func TestSplitStripsRotationSplitsWideTile(t *testing.T) {
	theta := 37.0 * math.Pi / 180.0
	m := AffineMatrix{A: math.Cos(theta), B: math.Sin(theta), C: -math.Sin(theta), D: math.Cos(theta)}
	d, err := NewDDA(m)
	if err != nil {
		t.Fatalf("NewDDA: %v", err)
	}
	strips := SplitStrips(d, 256, 32)
	if len(strips) < 2 {
		t.Fatalf("rotated wide tile should split into multiple strips, got %d", len(strips))
	}
	// Strips must partition the destination rectangle exactly and in order.
	x := 0
	for _, s := range strips {
		if s.X0 != x {
			t.Fatalf("strip gap/overlap: want X0=%d got %d", x, s.X0)
		}
		x = s.X1
	}
	if x != 256 {
		t.Fatalf("strips do not cover full width: ended at %d, want 256", x)
	}
}

func TestSplitStripsCountBounded(t *testing.T) {
	theta := 53.0 * math.Pi / 180.0
	m := AffineMatrix{A: math.Cos(theta), B: math.Sin(theta), C: -math.Sin(theta), D: math.Cos(theta)}
	d, err := NewDDA(m)
	if err != nil {
		t.Fatalf("NewDDA: %v", err)
	}
	strips := SplitStrips(d, 1024, 32)
	if len(strips) > MaxSplitCount {
		t.Errorf("got %d strips, want <= %d", len(strips), MaxSplitCount)
	}
}
