package overlay

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	glyphFirst = ' ' // 0x20
	glyphLast  = '~' // 0x7e
	atlasCols  = 16
)

// Font is a glyph atlas built from a fixed 7x13 bitmap face. The
// printable ASCII range is rasterized once into an RGBA image; text
// rendering samples that atlas instead of rasterizing per frame.
type Font struct {
	atlas  *image.RGBA
	glyphW int
	glyphH int
	cols   int
	rows   int
}

// NewFont rasterizes the atlas. Glyphs are drawn white on transparent
// so the text shader can tint them per vertex.
func NewFont() *Font {
	face := basicfont.Face7x13
	f := &Font{
		glyphW: face.Advance,
		glyphH: face.Height,
		cols:   atlasCols,
	}
	count := int(glyphLast-glyphFirst) + 1
	f.rows = (count + f.cols - 1) / f.cols

	f.atlas = image.NewRGBA(image.Rect(0, 0, f.cols*f.glyphW, f.rows*f.glyphH))

	d := font.Drawer{
		Dst:  f.atlas,
		Src:  image.White,
		Face: face,
	}
	for i := 0; i < count; i++ {
		col := i % f.cols
		row := i / f.cols
		// Dot is the baseline origin; the ascent offset keeps the glyph
		// inside its cell.
		d.Dot = fixed.P(col*f.glyphW, row*f.glyphH+face.Ascent)
		d.DrawString(string(rune(glyphFirst + i)))
	}
	return f
}

// Atlas returns the rasterized glyph image for texture upload.
func (f *Font) Atlas() *image.RGBA {
	return f.atlas
}

// GlyphSize returns the unscaled cell size of a single glyph.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GlyphUV returns the atlas texture coordinates for r.
// Runes outside printable ASCII map to '?'.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < glyphFirst || r > glyphLast {
		r = '?'
	}
	i := int(r - glyphFirst)
	col := i % f.cols
	row := i / f.cols

	aw := float32(f.atlas.Bounds().Dx())
	ah := float32(f.atlas.Bounds().Dy())
	u0 = float32(col*f.glyphW) / aw
	v0 = float32(row*f.glyphH) / ah
	u1 = float32((col+1)*f.glyphW) / aw
	v1 = float32((row+1)*f.glyphH) / ah
	return u0, v0, u1, v1
}

// MeasureText returns the width and height of rendered text.
// Newlines break the text into multiple lines.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	maxCols, cols, lines := 0, 0, 1
	for _, r := range text {
		if r == '\n' {
			if cols > maxCols {
				maxCols = cols
			}
			cols = 0
			lines++
			continue
		}
		cols++
	}
	if cols > maxCols {
		maxCols = cols
	}
	return float32(maxCols*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}
