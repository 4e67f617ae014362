package basics

import "testing"

func TestToFixed8(t *testing.T) {
	tests := []struct {
		in   int
		want Fixed8
	}{
		{0, 0},
		{1, 256},
		{-1, -256},
		{100, 25600},
	}
	for _, tt := range tests {
		if got := ToFixed8(tt.in); got != tt.want {
			t.Errorf("ToFixed8(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFromFixed8FloorCeil(t *testing.T) {
	tests := []struct {
		in        Fixed8
		wantFloor int
		wantCeil  int
	}{
		{0, 0, 0},
		{256, 1, 1},
		{257, 1, 2},
		{-1, -1, 0},
		{-256, -1, -1},
	}
	for _, tt := range tests {
		if got := FromFixed8Floor(tt.in); got != tt.wantFloor {
			t.Errorf("FromFixed8Floor(%d) = %d, want %d", tt.in, got, tt.wantFloor)
		}
		if got := FromFixed8Ceil(tt.in); got != tt.wantCeil {
			t.Errorf("FromFixed8Ceil(%d) = %d, want %d", tt.in, got, tt.wantCeil)
		}
	}
}

func TestFloatToFixed8RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 5.5, -5.5, 10.25} {
		f := FloatToFixed8(v)
		if got := Fixed8ToFloat(f); got != v {
			t.Errorf("round trip FloatToFixed8(%v) -> Fixed8ToFloat = %v, want %v", v, got, v)
		}
	}
}
