package mipchain

import "image"

// Downsample produces a half-size version of src using a 2x2 box filter.
// Each output pixel averages the four corresponding source pixels; for
// odd source dimensions the sample coordinates are clamped to the edge.
// The result is never smaller than 1x1.
func Downsample(src *image.RGBA) *image.RGBA {
	srcW := src.Rect.Dx()
	srcH := src.Rect.Dy()
	dstW := max(1, srcW/2)
	dstH := max(1, srcH/2)

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			sx := dx * 2
			sy := dy * 2
			sx1 := min(sx+1, srcW-1)
			sy1 := min(sy+1, srcH-1)

			p00 := src.PixOffset(src.Rect.Min.X+sx, src.Rect.Min.Y+sy)
			p01 := src.PixOffset(src.Rect.Min.X+sx1, src.Rect.Min.Y+sy)
			p10 := src.PixOffset(src.Rect.Min.X+sx, src.Rect.Min.Y+sy1)
			p11 := src.PixOffset(src.Rect.Min.X+sx1, src.Rect.Min.Y+sy1)

			d := dst.PixOffset(dx, dy)
			for c := 0; c < 4; c++ {
				sum := uint16(src.Pix[p00+c]) + uint16(src.Pix[p01+c]) +
					uint16(src.Pix[p10+c]) + uint16(src.Pix[p11+c])
				dst.Pix[d+c] = uint8(sum / 4)
			}
		}
	}

	return dst
}

// GenerateImages builds the full CPU-side mip chain for src. Level 0 is
// src itself (not copied); each following level is the box-filtered half
// of the previous one, down to 1x1. The number of images equals
// Plan(width, height).Count().
func GenerateImages(src *image.RGBA) []*image.RGBA {
	w := uint32(src.Rect.Dx())
	h := uint32(src.Rect.Dy())
	count := int(BitWidth(max(w, h)))
	if count == 0 {
		return nil
	}

	images := make([]*image.RGBA, count)
	images[0] = src
	for i := 1; i < count; i++ {
		images[i] = Downsample(images[i-1])
	}
	return images
}
