// Package viewer runs the interactive window: it owns the GPU context,
// rebuilds the mip chain when a new image is loaded and draws the
// control panel over the selected level.
package viewer

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/mipforge/internal/config"
	"github.com/Faultbox/mipforge/internal/gpu"
	"github.com/Faultbox/mipforge/internal/input"
	"github.com/Faultbox/mipforge/internal/logger"
	"github.com/Faultbox/mipforge/internal/overlay"
	"github.com/Faultbox/mipforge/internal/window"
	"github.com/Faultbox/mipforge/pkg/imageio"
)

const panelWidth = 240

// Viewer is the interactive application instance.
type Viewer struct {
	cfg *config.Config

	window  *window.Window
	input   *input.Input
	gpu     *gpu.Context
	gen     *gpu.MipGenerator
	overlay *overlay.Context

	releases gpu.ReleaseStack

	texture    *gpu.MipTexture
	sourcePath string

	level     int
	smooth    bool
	testValue float32
	status    string

	regenerate bool

	// Written by the file dialog goroutine, consumed on the main thread.
	mu          sync.Mutex
	pendingOpen string

	resized          bool
	resizeW, resizeH int
}

// New creates the window, GPU context and overlay, then loads the
// configured startup image if one is set. On a failed step everything
// already created is released, most recent first.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{cfg: cfg}

	var err error
	v.window, err = window.New(window.Config{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	v.releases.Push(v.window.Close)

	v.gpu, err = gpu.New(v.window.SurfaceDescriptor())
	if err != nil {
		v.releases.Release()
		return nil, fmt.Errorf("creating gpu context: %w", err)
	}
	v.releases.Push(v.gpu.Release)

	fbW, fbH := v.window.GetSize()
	v.gpu.ConfigureSurface(fbW, fbH)

	v.gen, err = gpu.NewMipGenerator(v.gpu)
	if err != nil {
		v.releases.Release()
		return nil, fmt.Errorf("creating mip generator: %w", err)
	}
	v.releases.Push(v.gen.Release)

	v.overlay, err = overlay.NewContext(v.gpu.Device, v.gpu.Queue, v.gpu.SurfaceFormat, fbW, fbH)
	if err != nil {
		v.releases.Release()
		return nil, fmt.Errorf("creating overlay: %w", err)
	}
	v.releases.Push(v.overlay.Close)

	v.input = input.New()
	v.input.Attach(v.window.Handle())

	v.window.OnResize(func(width, height int) {
		v.resized = true
		v.resizeW, v.resizeH = width, height
	})

	// A configured image that cannot be decoded aborts startup. With no
	// image configured the viewer opens empty and waits for the dialog.
	if cfg.Source.Image != "" {
		if err := v.loadImage(cfg.Source.Image); err != nil {
			v.releases.Release()
			return nil, fmt.Errorf("loading source image %q: %w", cfg.Source.Image, err)
		}
	} else {
		v.status = "Open an image to begin"
	}

	logger.Log.Info("viewer initialized")
	return v, nil
}

// Close releases everything created by New, most recent first.
func (v *Viewer) Close() {
	logger.Log.Info("closing viewer")

	if v.texture != nil {
		v.texture.Release()
		v.texture = nil
	}
	v.releases.Release()
}

// Run drives the frame loop until the window closes.
func (v *Viewer) Run() error {
	logger.Log.Info("starting viewer loop")

	frames := 0
	fpsTimer := time.Now()

	for !v.window.ShouldClose() {
		v.window.PollEvents()
		v.processInput()

		if path := v.takePendingOpen(); path != "" {
			if err := v.loadImage(path); err != nil {
				logger.Log.Error("loading image", zap.String("path", path), zap.Error(err))
				v.status = "Load failed: " + filepath.Base(path)
			}
		}

		if v.regenerate {
			v.regenerate = false
			if v.texture != nil {
				if err := v.gen.Generate(v.texture); err != nil {
					logger.Log.Error("regenerating mip chain", zap.Error(err))
				} else {
					v.status = "Mip chain regenerated"
				}
			}
		}

		if v.resized {
			v.resized = false
			v.gpu.ConfigureSurface(v.resizeW, v.resizeH)
			v.overlay.Resize(v.resizeW, v.resizeH)
		}

		if err := v.renderFrame(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// processInput feeds window events into the overlay and handles the
// application shortcuts.
func (v *Viewer) processInput() {
	v.input.Update()

	ui := v.overlay.Input()
	for _, ev := range v.input.Events() {
		switch ev.Type {
		case input.EventMouseMove:
			ui.MouseX = float32(ev.MouseX)
			ui.MouseY = float32(ev.MouseY)
		case input.EventMouseDown:
			if ev.Button == glfw.MouseButtonLeft {
				ui.MouseLeftDown = true
			}
		case input.EventMouseUp:
			if ev.Button == glfw.MouseButtonLeft {
				ui.MouseLeftDown = false
			}
		case input.EventScroll:
			ui.ScrollY += float32(ev.ScrollY)
		}
	}

	if v.input.IsKeyPressed(glfw.KeyEscape) {
		v.window.RequestClose()
	}
	if v.input.IsKeyPressed(glfw.KeyLeft) {
		v.selectLevel(v.level - 1)
	}
	if v.input.IsKeyPressed(glfw.KeyRight) {
		v.selectLevel(v.level + 1)
	}
}

// renderFrame records and submits one frame. A lost surface texture is
// not fatal; the surface is reconfigured and the frame skipped.
func (v *Viewer) renderFrame() error {
	frame, view, err := v.gpu.AcquireFrame()
	if err != nil {
		logger.Log.Warn("surface texture unavailable, reconfiguring", zap.Error(err))
		w, h := v.window.GetSize()
		v.gpu.ConfigureSurface(w, h)
		return nil
	}
	defer frame.Release()
	defer view.Release()

	encoder, err := v.gpu.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("creating command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.03, G: 0.03, B: 0.04, A: 1},
		}},
	})
	defer pass.Release()

	v.overlay.Begin()
	v.buildUI()
	v.overlay.End(pass)

	if err := pass.End(); err != nil {
		return fmt.Errorf("ending render pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finishing command encoder: %w", err)
	}
	defer cmd.Release()

	v.gpu.Queue.Submit(cmd)
	v.gpu.Present()

	return nil
}

// buildUI queues the preview quad and the control panel for this frame.
func (v *Viewer) buildUI() {
	sw, sh := v.overlay.GetScreenSize()

	if v.texture != nil {
		v.drawPreview(sw, sh)
	}

	ui := v.overlay
	if !ui.BeginWindow("panel", sw-panelWidth-16, 16, panelWidth, 330, "Parameters") {
		return
	}

	ui.Row(20)
	if v.texture != nil {
		ui.Label("Source: " + filepath.Base(v.sourcePath))
	} else {
		ui.LabelColored("No image loaded", overlay.ColorTextDim)
	}

	ui.Row(26)
	if ui.Button("open", 0, "Open image...") {
		v.openImageDialog()
	}

	if v.texture != nil {
		count := v.texture.Chain.Count()
		ext := v.texture.Level(v.level)

		ui.Separator()

		ui.Row(20)
		ui.Label(fmt.Sprintf("Level %d/%d", v.level, count-1))
		ui.SameLine()
		if ext.IsZero() {
			ui.LabelColored(fmt.Sprintf("%dx%d (empty)", ext.Width, ext.Height),
				overlay.RGBA(230, 180, 80, 255))
		} else {
			ui.Label(fmt.Sprintf("%dx%d", ext.Width, ext.Height))
		}

		ui.Row(26)
		if v.level > 0 {
			if ui.Button("finer", 108, "< Finer") {
				v.selectLevel(v.level - 1)
			}
		} else {
			ui.ButtonDisabled("finer", 108, "< Finer")
		}
		ui.SameLine()
		if v.level < count-1 {
			if ui.Button("coarser", 108, "Coarser >") {
				v.selectLevel(v.level + 1)
			}
		} else {
			ui.ButtonDisabled("coarser", 108, "Coarser >")
		}

		ui.Row(18)
		smooth := ui.Checkbox("smooth", "Smooth preview", v.smooth)
		if smooth != v.smooth {
			v.smooth = smooth
			v.applyPreview()
		}

		ui.Separator()

		ui.Row(26)
		if ui.Button("regen", 0, "Regenerate") {
			v.regenerate = true
		}
		ui.Row(26)
		if ui.Button("export", 0, "Save MIP levels") {
			v.exportLevels()
		}

		ui.Separator()

		ui.Row(18)
		ui.Label("Test")
		ui.SameLine()
		v.testValue = ui.SliderFloat("test", 130, v.testValue, 0, 1)
		ui.SameLine()
		ui.Label(fmt.Sprintf("%.2f", v.testValue))
	}

	if v.status != "" {
		ui.Row(20)
		ui.LabelColored(v.status, overlay.ColorTextDim)
	}

	ui.EndWindow()

	// Scrolling steps through the chain, wheel up toward level 0
	if sy := ui.Input().ScrollY; sy != 0 && v.texture != nil {
		if sy > 0 {
			v.selectLevel(v.level - 1)
		} else {
			v.selectLevel(v.level + 1)
		}
	}
}

// drawPreview letterboxes the selected level into the area left of the
// panel. Small levels are upscaled by whole factors to keep texel
// edges sharp.
func (v *Viewer) drawPreview(sw, sh float32) {
	ext := v.texture.Level(v.level)
	w := float32(ext.Width)
	h := float32(ext.Height)
	if ext.IsZero() {
		// The planned extent is empty; the stored level clamps to one texel.
		w, h = 1, 1
	}

	const margin = 16
	availW := sw - panelWidth - margin*3
	availH := sh - margin*2
	if availW <= 0 || availH <= 0 {
		return
	}

	scale := min(availW/w, availH/h)
	if scale > 1 {
		scale = float32(int(scale))
	}
	dw := w * scale
	dh := h * scale
	x := margin + (availW-dw)/2
	y := margin + (availH-dh)/2
	v.overlay.Renderer().DrawPreview(x, y, dw, dh)
}

// selectLevel clamps level to the chain and rebinds the preview.
func (v *Viewer) selectLevel(level int) {
	if v.texture == nil {
		return
	}
	count := v.texture.Chain.Count()
	if level < 0 {
		level = 0
	}
	if level > count-1 {
		level = count - 1
	}
	if level == v.level {
		return
	}
	v.level = level
	v.applyPreview()
}

func (v *Viewer) applyPreview() {
	if v.texture == nil {
		v.overlay.Renderer().ClearPreview()
		return
	}
	if err := v.overlay.Renderer().SetPreview(v.texture.Views[v.level], v.smooth); err != nil {
		logger.Log.Error("binding preview", zap.Int("level", v.level), zap.Error(err))
	}
}

// loadImage decodes path, uploads it and generates the full chain.
// The previous texture is only dropped once the new one is ready.
func (v *Viewer) loadImage(path string) error {
	img, err := imageio.Decode(path)
	if err != nil {
		return err
	}

	tex, err := gpu.NewMipTexture(v.gpu, img)
	if err != nil {
		return err
	}
	if err := v.gen.Generate(tex); err != nil {
		tex.Release()
		return err
	}

	if v.texture != nil {
		v.overlay.Renderer().ClearPreview()
		v.texture.Release()
	}
	v.texture = tex
	v.sourcePath = path
	v.level = 0
	v.applyPreview()
	v.window.SetTitle(v.cfg.Window.Title + " - " + filepath.Base(path))

	logger.Log.Info("image loaded",
		zap.String("path", path),
		zap.Int("levels", tex.Chain.Count()),
	)
	v.status = fmt.Sprintf("%d levels generated", tex.Chain.Count())
	return nil
}

// exportLevels reads every generated level back and writes them as
// PNGs. Levels with an empty planned extent are skipped.
func (v *Viewer) exportLevels() {
	if v.texture == nil {
		return
	}

	dir := v.cfg.Export.Dir
	count := v.texture.Chain.Count()
	written := 0
	for level := 0; level < count; level++ {
		if v.texture.Level(level).IsZero() {
			logger.Log.Warn("skipping empty level", zap.Int("level", level))
			continue
		}
		img, err := gpu.ReadLevel(v.gpu, v.texture, level)
		if err != nil {
			logger.Log.Error("reading level", zap.Int("level", level), zap.Error(err))
			v.status = fmt.Sprintf("Export failed at level %d", level)
			return
		}
		path := imageio.ExportPath(dir, level)
		if err := imageio.SavePNG(path, img); err != nil {
			logger.Log.Error("writing level", zap.String("path", path), zap.Error(err))
			v.status = fmt.Sprintf("Export failed at level %d", level)
			return
		}
		written++
	}

	logger.Log.Info("levels exported", zap.Int("count", written), zap.String("dir", dir))
	v.status = fmt.Sprintf("Saved %d levels to %s", written, dir)
}

// openImageDialog runs the native file dialog off the main thread and
// queues the selected path for the frame loop.
func (v *Viewer) openImageDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "bmp").
			Filter("All Files", "*").
			Title("Open Image").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Log.Error("file dialog", zap.Error(err))
			}
			return
		}
		v.mu.Lock()
		v.pendingOpen = filename
		v.mu.Unlock()
	}()
}

func (v *Viewer) takePendingOpen() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	path := v.pendingOpen
	v.pendingOpen = ""
	return path
}
