package charunits

import "testing"

func TestRoundUpToAlignment(t *testing.T) {
	tests := []struct {
		c, a, want CharUnits
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 4, 8},
		{3, 8, 8},
		{7, 1, 7},
	}
	for _, tc := range tests {
		if got := tc.c.RoundUpToAlignment(tc.a); got != tc.want {
			t.Errorf("RoundUpToAlignment(%d, %d) = %d, want %d", tc.c, tc.a, got, tc.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, a := range []CharUnits{1, 2, 4, 8, 16} {
		if !a.IsPowerOfTwo() {
			t.Errorf("%d should be a power of two", a)
		}
	}
	for _, a := range []CharUnits{0, 3, 5, 6, 7} {
		if a.IsPowerOfTwo() {
			t.Errorf("%d should not be a power of two", a)
		}
	}
}

func TestBitConversion(t *testing.T) {
	c := CharUnits(5)
	if got := FromBits(c.ToBits(8), 8); got != c {
		t.Errorf("round trip: got %d, want %d", got, c)
	}
}

func TestAlignedCharUnitsPanicsOnMisalignment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for misaligned bit offset")
		}
	}()
	BitCount(5).AlignedCharUnits(8)
}
