package auction

import "testing"

func TestIncrement(t *testing.T) {
	tests := []struct {
		name       string
		currentBid int64
		want       int64
	}{
		{"below mid tier", 50_000, 10_000},
		{"just under mid tier", 99_999, 10_000},
		{"at mid tier", 100_000, 20_000},
		{"inside mid tier", 140_000, 20_000},
		{"at high tier", 150_000, 30_000},
		{"inside high tier", 180_000, 30_000},
		{"at top tier", 200_000, 50_000},
		{"far above top tier", 5_000_000, 50_000},
		{"zero bid", 0, 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Increment(tt.currentBid); got != tt.want {
				t.Errorf("Increment(%d) = %d, want %d", tt.currentBid, got, tt.want)
			}
		})
	}
}

func TestNextRequiredBid(t *testing.T) {
	tests := []struct {
		currentBid int64
		want       int64
	}{
		{100_000, 120_000},
		{120_000, 140_000},
		{140_000, 160_000},
		{160_000, 190_000},
		{190_000, 220_000},
		{220_000, 270_000},
	}

	for _, tt := range tests {
		if got := NextRequiredBid(tt.currentBid); got != tt.want {
			t.Errorf("NextRequiredBid(%d) = %d, want %d", tt.currentBid, got, tt.want)
		}
	}
}
