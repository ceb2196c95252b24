package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/Faultbox/mipforge/internal/logger"
)

// ConfigureSurface (re)configures the window surface for the given size.
// Call once at startup and again whenever the framebuffer resizes.
func (c *Context) ConfigureSurface(width, height int) {
	caps := c.Surface.GetCapabilities(c.Adapter)
	c.SurfaceFormat = caps.Formats[0]

	c.Surface.Configure(c.Adapter, c.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.SurfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	})

	logger.Log.Debug("surface configured",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// AcquireFrame returns the next surface texture and a view onto it.
// The caller releases the view, then the texture, after presenting.
func (c *Context) AcquireFrame() (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := c.Surface.GetCurrentTexture()
	if err != nil {
		return nil, nil, fmt.Errorf("acquiring surface texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("creating surface view: %w", err)
	}

	return tex, view, nil
}

// Present shows the most recently acquired frame.
func (c *Context) Present() {
	c.Surface.Present()
}
