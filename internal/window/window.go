// Package window handles GLFW window creation for wgpu rendering.
package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and surface calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Window wraps a GLFW window configured for wgpu.
type Window struct {
	config     Config
	glfwWindow *glfw.Window

	onResize func(width, height int)
}

// New creates a new window without a client graphics API.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	slog.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw.Init failed: %w", err)
	}

	// The surface belongs to wgpu; GLFW must not create a GL context
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	w.glfwWindow = win

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	slog.Info("window created",
		"title", cfg.Title,
		"width", cfg.Width,
		"height", cfg.Height,
		"resizable", cfg.Resizable,
	)

	return w, nil
}

// OnResize registers a callback invoked when the framebuffer size changes.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

// SurfaceDescriptor returns the platform surface descriptor for wgpu.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.glfwWindow)
}

// ShouldClose reports whether the user requested the window to close.
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// RequestClose marks the window for closing at the end of the frame.
func (w *Window) RequestClose() {
	w.glfwWindow.SetShouldClose(true)
}

// PollEvents processes pending window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	slog.Info("closing window")

	if w.glfwWindow != nil {
		w.glfwWindow.Destroy()
		w.glfwWindow = nil
	}
	glfw.Terminate()
}

// GetSize returns the current framebuffer size in pixels.
func (w *Window) GetSize() (int, int) {
	return w.glfwWindow.GetFramebufferSize()
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.glfwWindow.SetTitle(title)
}

// Handle exposes the underlying GLFW window for input callback registration.
func (w *Window) Handle() *glfw.Window {
	return w.glfwWindow
}
