package models

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		pct  int
		want Tier
	}{
		{0, TierLow},
		{49, TierLow},
		{50, TierMid},
		{79, TierMid},
		{80, TierHigh},
		{100, TierHigh},
	}

	for _, tt := range tests {
		if got := TierFor(tt.pct); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestFilledCells(t *testing.T) {
	tests := []struct {
		pct  int
		want int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{20, 2},
		{66, 7},
		{100, 10},
		{120, 10},
	}

	for _, tt := range tests {
		if got := FilledCells(tt.pct); got != tt.want {
			t.Errorf("FilledCells(%d) = %d, want %d", tt.pct, got, tt.want)
		}
	}
}
