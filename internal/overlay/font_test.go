package overlay

import "testing"

func TestNewFontAtlas(t *testing.T) {
	f := NewFont()

	gw, gh := f.GlyphSize()
	if gw != 7 || gh != 13 {
		t.Errorf("expected 7x13 glyph cells, got %dx%d", gw, gh)
	}

	atlas := f.Atlas()
	if atlas == nil {
		t.Fatal("expected a rasterized atlas")
	}
	if atlas.Bounds().Dx()%gw != 0 || atlas.Bounds().Dy()%gh != 0 {
		t.Errorf("atlas %dx%d is not a whole number of %dx%d cells",
			atlas.Bounds().Dx(), atlas.Bounds().Dy(), gw, gh)
	}
}

func TestFontGlyphCells(t *testing.T) {
	f := NewFont()
	atlas := f.Atlas()
	gw, gh := f.GlyphSize()

	cellOpaque := func(r rune) int {
		i := int(r - glyphFirst)
		x0 := (i % atlasCols) * gw
		y0 := (i / atlasCols) * gh
		n := 0
		for y := y0; y < y0+gh; y++ {
			for x := x0; x < x0+gw; x++ {
				if atlas.RGBAAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}

	if n := cellOpaque(' '); n != 0 {
		t.Errorf("space cell has %d opaque pixels, expected none", n)
	}
	if n := cellOpaque('M'); n == 0 {
		t.Error("'M' cell has no opaque pixels")
	}
	if n := cellOpaque('.'); n == 0 {
		t.Error("'.' cell has no opaque pixels")
	}
}

func TestGlyphUV(t *testing.T) {
	f := NewFont()

	u0, v0, u1, v1 := f.GlyphUV('A')
	if !(u0 >= 0 && u0 < u1 && u1 <= 1) {
		t.Errorf("u range [%v, %v] out of bounds", u0, u1)
	}
	if !(v0 >= 0 && v0 < v1 && v1 <= 1) {
		t.Errorf("v range [%v, %v] out of bounds", v0, v1)
	}

	bu0, bv0, _, _ := f.GlyphUV('B')
	if bu0 == u0 && bv0 == v0 {
		t.Error("'A' and 'B' map to the same cell")
	}

	// Unknown runes fall back to '?'
	qu0, qv0, _, _ := f.GlyphUV('?')
	xu0, xv0, _, _ := f.GlyphUV('é')
	if qu0 != xu0 || qv0 != xv0 {
		t.Errorf("expected unknown rune to map to '?' cell, got (%v, %v) vs (%v, %v)",
			xu0, xv0, qu0, qv0)
	}
}

func TestMeasureText(t *testing.T) {
	f := NewFont()

	tests := []struct {
		name  string
		text  string
		scale float32
		wantW float32
		wantH float32
	}{
		{"empty", "", 1, 0, 0},
		{"single line", "abc", 1, 21, 13},
		{"two lines", "ab\ncdef", 1, 28, 26},
		{"scaled", "ab", 2, 28, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := f.MeasureText(tt.text, tt.scale)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("MeasureText(%q, %v) = (%v, %v), want (%v, %v)",
					tt.text, tt.scale, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
