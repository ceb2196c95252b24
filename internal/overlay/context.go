package overlay

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Context manages widget state and layout on top of the renderer.
type Context struct {
	renderer *Renderer
	input    *InputState

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	windows map[string]*WindowState

	// Current window being drawn
	currentWindow *WindowState

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool
}

// NewContext creates a UI context rendering into the given surface format.
func NewContext(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, width, height int) (*Context, error) {
	r, err := New(device, queue, format, width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	return &Context{
		renderer: r,
		input:    &InputState{},
		windows:  make(map[string]*WindowState),
	}, nil
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Release()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
}

// End records the frame's draw calls into pass and clears the
// per-frame input.
func (c *Context) End(pass *wgpu.RenderPassEncoder) {
	c.renderer.Flush(pass)
	c.input.EndFrame()
}

// BeginWindow starts a new window.
// Returns false if the window is closed.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{
			ID:   id,
			X:    x,
			Y:    y,
			W:    w,
			H:    h,
			Open: true,
		}
		c.windows[id] = ws
	} else if !ws.Moving {
		// Update position from parameters (allows re-anchoring on resize)
		ws.X = x
		ws.Y = y
		ws.W = w
		ws.H = h
	}

	if !ws.Open {
		return false
	}

	c.currentWindow = ws

	// Title bar is the top 24 pixels and doubles as the drag handle
	titleBarH := float32(24)
	titleBarRect := Rect{ws.X, ws.Y, ws.W, titleBarH}

	if c.input.MouseLeftPressed && titleBarRect.Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		c.activeWidget = id + "_titlebar"
	}

	if ws.Moving && c.input.MouseLeftDown {
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
	}

	if c.input.MouseLeftReleased {
		ws.Moving = false
		if c.activeWidget == id+"_titlebar" {
			c.activeWidget = ""
		}
	}

	c.renderer.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)

	scale := float32(1)
	_, textH := c.renderer.MeasureText(title, scale)
	textY := ws.Y + (titleBarH-textH)/2
	c.renderer.DrawText(ws.X+8, textY, title, scale, ColorText)

	// Content cursor starts below the title bar, with padding
	c.cursorX = ws.X + 8
	c.cursorY = ws.Y + titleBarH + 8
	c.rowH = 0

	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + 8
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// SameLine keeps the cursor on the same line (for horizontal layouts).
func (c *Context) SameLine() {
	// cursorX was already advanced by the previous widget
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.cursorY += height
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + 4
	c.rowH = 0
	x := c.currentWindow.X + 8
	w := c.currentWindow.W - 16
	c.renderer.DrawRect(x, c.cursorY, w, 1, ColorPanelBorder)
	c.cursorY += 8
	c.cursorX = x
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 26
	}
	if width == 0 {
		width = c.currentWindow.W - 16
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	// Click fires on press for responsiveness
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed {
			c.activeWidget = fullID
			clicked = true
		}
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}

	c.renderer.DrawRect(x, y, width, h, color)
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	scale := float32(1)
	textW, textH := c.renderer.MeasureText(label, scale)
	textX := x + (width-textW)/2
	textY := y + (h-textH)/2
	c.renderer.DrawText(textX, textY, label, scale, ColorText)

	c.cursorX += width + 4

	return clicked
}

// ButtonDisabled draws a non-interactive button.
func (c *Context) ButtonDisabled(id string, width float32, label string) {
	if c.currentWindow == nil {
		return
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 26
	}
	if width == 0 {
		width = c.currentWindow.W - 16
	}

	c.renderer.DrawRect(x, y, width, h, ColorButtonNormal.Darken(0.3))
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder.Darken(0.3))

	scale := float32(1)
	textW, textH := c.renderer.MeasureText(label, scale)
	textX := x + (width-textW)/2
	textY := y + (h-textH)/2
	c.renderer.DrawText(textX, textY, label, scale, ColorTextDim)

	c.cursorX += width + 4
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}

	scale := float32(1)
	c.renderer.DrawText(c.cursorX, c.cursorY, text, scale, color)

	w, _ := c.renderer.MeasureText(text, scale)
	c.cursorX += w + 4
}

// LabelCentered draws text centered within the window content area.
func (c *Context) LabelCentered(text string) {
	if c.currentWindow == nil {
		return
	}

	scale := float32(1)
	textW, _ := c.renderer.MeasureText(text, scale)
	contentW := c.currentWindow.W - 16
	x := c.currentWindow.X + 8 + (contentW-textW)/2
	if x < c.currentWindow.X+8 {
		x = c.currentWindow.X + 8
	}

	c.renderer.DrawText(x, c.cursorY, text, scale, ColorText)
}

// Checkbox draws a checkbox and returns the updated state.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x := c.cursorX
	y := c.cursorY
	boxSize := float32(16)

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, boxSize, boxSize}

	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)

	if hovered && c.input.MouseLeftPressed {
		c.activeWidget = fullID
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bgColor := ColorInputBg
	if hovered {
		bgColor = ColorButtonHover
	}
	c.renderer.DrawRect(x, y, boxSize, boxSize, bgColor)
	c.renderer.DrawRectOutline(x, y, boxSize, boxSize, 1, ColorPanelBorder)

	if checked {
		innerMargin := float32(4)
		c.renderer.DrawRect(
			x+innerMargin, y+innerMargin,
			boxSize-innerMargin*2, boxSize-innerMargin*2,
			ColorHighlight,
		)
	}

	scale := float32(1)
	_, textH := c.renderer.MeasureText(label, scale)
	textY := y + (boxSize-textH)/2
	c.renderer.DrawText(x+boxSize+6, textY, label, scale, ColorText)

	labelW, _ := c.renderer.MeasureText(label, scale)
	c.cursorX += boxSize + 6 + labelW + 8

	return checked
}

// SliderFloat draws a horizontal slider and returns the updated value.
// Dragging the grab maps the cursor position linearly onto [min, max].
func (c *Context) SliderFloat(id string, width float32, value, min, max float32) float32 {
	if c.currentWindow == nil {
		return value
	}
	if max <= min {
		return value
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 18
	}
	if width == 0 {
		width = c.currentWindow.W - 16
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	if hovered && c.input.MouseLeftPressed {
		c.activeWidget = fullID
	}

	// Dragging follows the mouse even when it leaves the rect
	if c.activeWidget == fullID {
		if c.input.MouseLeftDown {
			t := (c.input.MouseX - x) / width
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			value = min + t*(max-min)
		} else {
			c.activeWidget = ""
		}
	}

	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	frac := (value - min) / (max - min)

	// Track with a filled portion up to the grab
	trackY := y + h/2 - 2
	c.renderer.DrawRect(x, trackY, width, 4, ColorInputBg)
	c.renderer.DrawRectOutline(x, trackY, width, 4, 1, ColorInputBorder)
	if frac > 0 {
		c.renderer.DrawRect(x, trackY, width*frac, 4, ColorHighlight.WithAlpha(0.6))
	}

	grabW := float32(10)
	grabX := x + frac*(width-grabW)
	grabColor := ColorHighlight
	if c.activeWidget == fullID || hovered {
		grabColor = ColorHighlight.Lighten(0.2)
	}
	c.renderer.DrawRect(grabX, y, grabW, h, grabColor)
	c.renderer.DrawRectOutline(grabX, y, grabW, h, 1, ColorPanelBorder)

	c.cursorX += width + 4

	return value
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.renderer.GetScreenSize()
	return float32(w), float32(h)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
