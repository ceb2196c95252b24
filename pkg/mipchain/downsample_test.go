package mipchain

import (
	"image"
	"image/color"
	"testing"
)

func fillRGBA(img *image.RGBA, c color.RGBA) {
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestDownsampleSolidColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fillRGBA(src, color.RGBA{100, 150, 200, 255})

	dst := Downsample(src)
	if dst.Rect.Dx() != 1 || dst.Rect.Dy() != 1 {
		t.Fatalf("expected 1x1 result, got %dx%d", dst.Rect.Dx(), dst.Rect.Dy())
	}

	got := dst.RGBAAt(0, 0)
	want := color.RGBA{100, 150, 200, 255}
	if got != want {
		t.Errorf("downsampled pixel = %v, want %v", got, want)
	}
}

func TestDownsampleAverages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(0, 1, color.RGBA{0, 255, 0, 255})
	src.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})

	dst := Downsample(src)
	got := dst.RGBAAt(0, 0)

	// Each channel is the truncated mean of the four source pixels.
	want := color.RGBA{63, 63, 63, 255}
	if got != want {
		t.Errorf("averaged pixel = %v, want %v", got, want)
	}
}

func TestDownsampleEdgeClamp(t *testing.T) {
	// A 1x1 source clamps all four samples to the single pixel.
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{40, 80, 120, 200})

	dst := Downsample(src)
	if dst.Rect.Dx() != 1 || dst.Rect.Dy() != 1 {
		t.Fatalf("expected 1x1 result, got %dx%d", dst.Rect.Dx(), dst.Rect.Dy())
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{40, 80, 120, 200}) {
		t.Errorf("clamped pixel = %v, want {40 80 120 200}", got)
	}

	// A 3x1 strip: the lone output pixel samples columns 0 and 1,
	// rows clamped to 0.
	strip := image.NewRGBA(image.Rect(0, 0, 3, 1))
	strip.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	strip.SetRGBA(1, 0, color.RGBA{200, 200, 200, 255})
	strip.SetRGBA(2, 0, color.RGBA{50, 50, 50, 255})

	dst = Downsample(strip)
	if dst.Rect.Dx() != 1 || dst.Rect.Dy() != 1 {
		t.Fatalf("expected 1x1 result for 3x1 strip, got %dx%d", dst.Rect.Dx(), dst.Rect.Dy())
	}
	if got := dst.RGBAAt(0, 0); got.R != 100 {
		t.Errorf("strip pixel R = %d, want 100", got.R)
	}
}

func TestGenerateImages(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantLevels int
	}{
		{"64x64", 64, 64, 7},
		{"128x64", 128, 64, 8},
		{"1x1", 1, 1, 1},
		{"256x256", 256, 256, 9},
		{"100x50", 100, 50, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			fillRGBA(src, color.RGBA{128, 128, 128, 255})

			images := GenerateImages(src)
			if len(images) != tt.wantLevels {
				t.Fatalf("expected %d levels, got %d", tt.wantLevels, len(images))
			}

			if images[0] != src {
				t.Error("level 0 should be the source image, not a copy")
			}

			last := images[len(images)-1]
			if last.Rect.Dx() > 1 && last.Rect.Dy() > 1 {
				t.Errorf("last level = %dx%d, expected 1 in at least one dimension",
					last.Rect.Dx(), last.Rect.Dy())
			}

			// Solid input stays solid at every level.
			for i, img := range images {
				if got := img.RGBAAt(0, 0); got != (color.RGBA{128, 128, 128, 255}) {
					t.Errorf("level %d pixel = %v, want {128 128 128 255}", i, got)
				}
			}
		})
	}
}
