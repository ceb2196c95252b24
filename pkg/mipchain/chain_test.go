package mipchain

import "testing"

func TestBitWidth(t *testing.T) {
	tests := []struct {
		n    uint32
		want uint32
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{255, 8},
		{256, 9},
		{300, 9},
		{4096, 13},
	}

	for _, tt := range tests {
		if got := BitWidth(tt.n); got != tt.want {
			t.Errorf("BitWidth(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPlanPowerOfTwo(t *testing.T) {
	chain := Plan(256, 256)

	if chain.Count() != 9 {
		t.Fatalf("expected 9 levels for 256x256, got %d", chain.Count())
	}

	wantSizes := []uint32{256, 128, 64, 32, 16, 8, 4, 2, 1}
	for i, want := range wantSizes {
		lvl := chain.Levels[i]
		if lvl.Width != want || lvl.Height != want {
			t.Errorf("level %d = %dx%d, want %dx%d", i, lvl.Width, lvl.Height, want, want)
		}
	}

	// Depth starts at 1 and floor-halves to 0 immediately.
	if chain.Levels[0].Depth != 1 {
		t.Errorf("level 0 depth = %d, want 1", chain.Levels[0].Depth)
	}
	for i := 1; i < chain.Count(); i++ {
		if chain.Levels[i].Depth != 0 {
			t.Errorf("level %d depth = %d, want 0", i, chain.Levels[i].Depth)
		}
	}
}

func TestPlanNonPowerOfTwo(t *testing.T) {
	chain := Plan(300, 200)

	if chain.Count() != 9 {
		t.Fatalf("expected 9 levels for 300x200, got %d", chain.Count())
	}

	if lvl := chain.Levels[1]; lvl.Width != 150 || lvl.Height != 100 {
		t.Errorf("level 1 = %dx%d, want 150x100", lvl.Width, lvl.Height)
	}

	// Floor halving is preserved exactly, zeroes included:
	// 300 -> 150 -> 75 -> 37 -> 18 -> 9 -> 4 -> 2 -> 1
	// 200 -> 100 -> 50 -> 25 -> 12 -> 6 -> 3 -> 1 -> 0
	wantW := []uint32{300, 150, 75, 37, 18, 9, 4, 2, 1}
	wantH := []uint32{200, 100, 50, 25, 12, 6, 3, 1, 0}
	for i := range wantW {
		lvl := chain.Levels[i]
		if lvl.Width != wantW[i] || lvl.Height != wantH[i] {
			t.Errorf("level %d = %dx%d, want %dx%d", i, lvl.Width, lvl.Height, wantW[i], wantH[i])
		}
	}

	if !chain.Levels[8].IsZero() {
		t.Error("expected level 8 to be zero-sized")
	}
}

func TestPlanMonotonic(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
	}{
		{"1x1", 1, 1},
		{"7x3", 7, 3},
		{"640x480", 640, 480},
		{"1920x1080", 1920, 1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := Plan(tt.w, tt.h)
			if chain.Count() == 0 {
				t.Fatal("expected at least one level")
			}
			for i := 1; i < chain.Count(); i++ {
				prev, cur := chain.Levels[i-1], chain.Levels[i]
				if cur.Width > prev.Width || cur.Height > prev.Height {
					t.Errorf("level %d (%dx%d) larger than level %d (%dx%d)",
						i, cur.Width, cur.Height, i-1, prev.Width, prev.Height)
				}
			}

			// The chain shrinks to at most 1 in its larger dimension.
			last := chain.Levels[chain.Count()-1]
			larger := max(last.Width, last.Height)
			if larger > 1 {
				t.Errorf("last level = %dx%d, larger dimension should be 0 or 1", last.Width, last.Height)
			}
		})
	}
}

func TestPlanLevelCounts(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
		want int
	}{
		{"64x64", 64, 64, 7},
		{"128x64", 128, 64, 8},
		{"1x1", 1, 1, 1},
		{"256x256", 256, 256, 9},
		{"100x50", 100, 50, 7},
		{"0x0", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := Plan(tt.w, tt.h)
			if chain.Count() != tt.want {
				t.Errorf("Plan(%d, %d).Count() = %d, want %d", tt.w, tt.h, chain.Count(), tt.want)
			}
		})
	}
}
