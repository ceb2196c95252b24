package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/Faultbox/mipforge/internal/logger"
	"github.com/Faultbox/mipforge/pkg/mipchain"
)

// MipTexture is an RGBA8 texture with one view per mip level. Level 0
// holds the uploaded source image; the remaining levels are filled by
// the compute pass.
type MipTexture struct {
	Texture *wgpu.Texture
	Views   []*wgpu.TextureView
	Chain   mipchain.Chain
}

// NewMipTexture creates the texture for src, uploads level 0 and builds
// a view for every chain level. src must be a zero-origin RGBA image.
func NewMipTexture(ctx *Context, src *image.RGBA) (*MipTexture, error) {
	width := uint32(src.Rect.Dx())
	height := uint32(src.Rect.Dy())

	chain := mipchain.Plan(width, height)
	if chain.Count() == 0 {
		return nil, fmt.Errorf("cannot create texture for %dx%d image", width, height)
	}

	texture, err := ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Mip Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(chain.Count()),
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageStorageBinding |
			wgpu.TextureUsageCopyDst | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("creating mip texture: %w", err)
	}

	mt := &MipTexture{
		Texture: texture,
		Chain:   chain,
	}

	// Upload the base level; rows are tightly packed for zero-origin RGBA
	ctx.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   wgpu.TextureAspectAll,
		},
		src.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * width,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)

	// One view per level; each compute dispatch binds two adjacent ones
	mt.Views = make([]*wgpu.TextureView, chain.Count())
	for i := range mt.Views {
		view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
			Label:           fmt.Sprintf("MIP level %d", i),
			Format:          wgpu.TextureFormatRGBA8Unorm,
			Dimension:       wgpu.TextureViewDimension2D,
			BaseMipLevel:    uint32(i),
			MipLevelCount:   1,
			BaseArrayLayer:  0,
			ArrayLayerCount: 1,
			Aspect:          wgpu.TextureAspectAll,
		})
		if err != nil {
			mt.Release()
			return nil, fmt.Errorf("creating view for level %d: %w", i, err)
		}
		mt.Views[i] = view
	}

	logger.Log.Debug("mip texture created",
		zap.Uint32("width", width),
		zap.Uint32("height", height),
		zap.Int("levels", chain.Count()),
	)

	return mt, nil
}

// Level returns the planned extent of one mip level.
func (t *MipTexture) Level(i int) mipchain.Extent {
	return t.Chain.Levels[i]
}

// Release frees the views before the texture.
func (t *MipTexture) Release() {
	for _, v := range t.Views {
		if v != nil {
			v.Release()
		}
	}
	t.Views = nil

	if t.Texture != nil {
		t.Texture.Release()
		t.Texture = nil
	}
}
