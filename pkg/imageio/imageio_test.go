package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLevelFileName(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "output.mip0.png"},
		{3, "output.mip3.png"},
		{12, "output.mip12.png"},
	}

	for _, tt := range tests {
		if got := LevelFileName(tt.level); got != tt.want {
			t.Errorf("LevelFileName(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestExportPath(t *testing.T) {
	got := ExportPath("output", 3)
	want := filepath.Join("output", "output.mip3.png")
	if got != want {
		t.Errorf("ExportPath = %q, want %q", got, want)
	}
}

func TestToRGBA(t *testing.T) {
	// Gray input gets converted; pixel values survive.
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 200})

	rgba := ToRGBA(gray)
	if rgba.Rect.Dx() != 2 || rgba.Rect.Dy() != 2 {
		t.Fatalf("expected 2x2 result, got %dx%d", rgba.Rect.Dx(), rgba.Rect.Dy())
	}
	if got := rgba.RGBAAt(1, 1); got.R != 200 || got.G != 200 || got.B != 200 {
		t.Errorf("converted pixel = %v, want gray 200", got)
	}

	// An RGBA image at zero origin is passed through untouched.
	direct := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if ToRGBA(direct) != direct {
		t.Error("zero-origin RGBA should be returned as-is")
	}

	// Offset bounds are re-anchored at (0,0).
	offset := image.NewRGBA(image.Rect(10, 10, 14, 14))
	offset.SetRGBA(10, 10, color.RGBA{255, 0, 0, 255})

	anchored := ToRGBA(offset)
	if anchored.Rect.Min != (image.Point{}) {
		t.Errorf("expected zero-origin bounds, got %v", anchored.Rect)
	}
	if got := anchored.RGBAAt(0, 0); got.R != 255 {
		t.Errorf("re-anchored pixel = %v, want red", got)
	}
}

func TestSavePNGAndDecode(t *testing.T) {
	dir := t.TempDir()

	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{uint8(x * 30), uint8(y * 60), 128, 255})
		}
	}

	path := filepath.Join(dir, "nested", "out.png")
	if err := SavePNG(path, src); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	decoded, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Rect.Dx() != 8 || decoded.Rect.Dy() != 4 {
		t.Fatalf("expected 8x4 image, got %dx%d", decoded.Rect.Dx(), decoded.Rect.Dy())
	}
	if got := decoded.RGBAAt(3, 2); got != (color.RGBA{90, 120, 128, 255}) {
		t.Errorf("round-tripped pixel = %v, want {90 120 128 255}", got)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Decode(path); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestDecodeForcesRGBA(t *testing.T) {
	// Paletted PNG on disk still comes back as RGBA.
	dir := t.TempDir()
	path := filepath.Join(dir, "paletted.png")

	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 255, 0, 255},
	})
	pal.SetColorIndex(0, 0, 1)

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	if err := png.Encode(file, pal); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	file.Close()

	decoded, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := decoded.RGBAAt(0, 0); got != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("paletted pixel = %v, want {255 255 0 255}", got)
	}
}
