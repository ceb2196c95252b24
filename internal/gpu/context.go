// Package gpu owns the WebGPU device and the mip-map compute machinery.
package gpu

import (
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/Faultbox/mipforge/internal/logger"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Context encapsulates the wgpu state shared by the whole application:
// the device, its queue, the window surface and the adapter.
type Context struct {
	Device  *wgpu.Device
	Queue   *wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter

	// SurfaceFormat is set by ConfigureSurface.
	SurfaceFormat wgpu.TextureFormat
}

// New creates the wgpu context for a window surface.
func New(sd *wgpu.SurfaceDescriptor) (ctx *Context, err error) {
	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	ctx = &Context{}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	ctx.Surface = instance.CreateSurface(sd)

	// The adapter must be able to present to the window surface
	ctx.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    ctx.Surface,
	})
	if err != nil {
		return
	}

	info := ctx.Adapter.GetInfo()
	logger.Log.Info("adapter acquired",
		zap.String("name", info.Name),
		zap.String("backend", fmt.Sprintf("%v", info.BackendType)),
	)

	ctx.Device, err = ctx.Adapter.RequestDevice(nil)
	if err != nil {
		return
	}

	ctx.Queue = ctx.Device.GetQueue()

	return ctx, nil
}

// Release frees the context in reverse creation order.
func (c *Context) Release() {
	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}

	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}

	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}

	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
}
