package shared

import "testing"

func TestRound2(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.014, 1.01},
		{1.016, 1.02},
		{1550.499, 1550.5},
		{-2.678, -2.68},
		{0.1 + 0.2, 0.3},
	} {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAmountsEqual(t *testing.T) {
	if !AmountsEqual(0.1+0.2, 0.3) {
		t.Fatal("expected binary float residue to compare equal")
	}
	if !AmountsEqual(1550, 1550.004) {
		t.Fatal("expected sub-cent difference to compare equal")
	}
	if AmountsEqual(1550, 1550.01) {
		t.Fatal("expected a one-cent difference to compare unequal")
	}
}
