package model

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{10.0, TierHigh},
		{8.0, TierHigh},
		{7.99, TierMedium},
		{6.0, TierMedium},
		{5.99, TierLow},
		{5.0, TierLow},
		{0.0, TierLow},
	}

	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%.2f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
