// Package imageio loads source images for texture upload and writes
// generated mip levels back to disk as PNG.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Decode opens path and decodes it into RGBA (4x8-bit, zero-origin bounds).
// Format is auto-detected from the stream; PNG, JPEG and BMP are registered.
func Decode(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}

	return ToRGBA(img), nil
}

// ToRGBA converts any decoded image to RGBA with bounds anchored at (0,0).
// An RGBA image already in that shape is returned as-is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// SavePNG writes img to path, creating the parent directory if needed.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	return nil
}

// LevelFileName names the export file for one mip level.
func LevelFileName(level int) string {
	return fmt.Sprintf("output.mip%d.png", level)
}

// ExportPath joins the export directory with the file name for level.
func ExportPath(dir string, level int) string {
	return filepath.Join(dir, LevelFileName(level))
}
