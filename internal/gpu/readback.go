package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// ReadLevel copies one mip level into CPU memory and returns it as a
// tightly packed RGBA image. It blocks until the GPU copy completes.
func ReadLevel(ctx *Context, t *MipTexture, level int) (*image.RGBA, error) {
	if level < 0 || level >= t.Chain.Count() {
		return nil, fmt.Errorf("level %d out of range (0..%d)", level, t.Chain.Count()-1)
	}

	ext := t.Level(level)
	if ext.IsZero() {
		return nil, fmt.Errorf("level %d has zero extent %dx%d", level, ext.Width, ext.Height)
	}

	// Buffer copies require rows aligned to 256 bytes
	bytesPerRow := (ext.Width*4 + 255) &^ 255
	size := uint64(bytesPerRow * ext.Height)

	staging, err := ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("readback level %d", level),
		Size:  size,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("creating staging buffer: %w", err)
	}
	defer staging.Release()

	encoder, err := ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("creating command encoder: %w", err)
	}
	defer encoder.Release()

	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  t.Texture,
			MipLevel: uint32(level),
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		&wgpu.ImageCopyBuffer{
			Buffer: staging,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  bytesPerRow,
				RowsPerImage: ext.Height,
			},
		},
		&wgpu.Extent3D{Width: ext.Width, Height: ext.Height, DepthOrArrayLayers: 1},
	)

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("finishing encoder: %w", err)
	}
	defer cmd.Release()

	ctx.Queue.Submit(cmd)

	var mapErr error
	done := false
	staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapErr = fmt.Errorf("mapping staging buffer: status %d", status)
		}
		done = true
	})
	for !done {
		ctx.Device.Poll(true, nil)
	}
	if mapErr != nil {
		return nil, mapErr
	}
	defer staging.Unmap()

	data := staging.GetMappedRange(0, uint(size))

	// Un-pad rows into a tightly packed image
	img := image.NewRGBA(image.Rect(0, 0, int(ext.Width), int(ext.Height)))
	rowBytes := int(ext.Width) * 4
	for y := 0; y < int(ext.Height); y++ {
		src := y * int(bytesPerRow)
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], data[src:src+rowBytes])
	}

	return img, nil
}
