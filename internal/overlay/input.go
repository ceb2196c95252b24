package overlay

// InputState holds the mouse state the widgets react to. The viewer
// copies raw window events into the public fields before Update; the
// widgets then read the derived edge flags during the frame.
type InputState struct {
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	// Current frame button state.
	MouseLeftDown bool

	// Edges derived by Update.
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// Scroll accumulated since the previous frame.
	ScrollY float32

	// Previous frame state for edge detection.
	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Update derives the per-frame deltas and press/release edges.
// Call this at the start of each frame after updating the raw values.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears the accumulated per-frame state.
// Call this at the end of each frame.
func (i *InputState) EndFrame() {
	i.ScrollY = 0
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return i.MouseX >= x && i.MouseX < x+w &&
		i.MouseY >= y && i.MouseY < y+h
}
