// Package input handles GLFW input events.
package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Event types for application use
type EventType int

const (
	EventNone EventType = iota
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventScroll
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     glfw.Key
	MouseX  int
	MouseY  int
	Button  glfw.MouseButton
	ScrollX float64
	ScrollY float64
}

// Input collects GLFW callback events into per-frame batches.
type Input struct {
	pending []Event
	events  []Event

	mouseX float64
	mouseY float64
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		pending: make([]Event, 0, 16),
		events:  make([]Event, 0, 16),
	}
}

// Attach registers the input callbacks on a window. Events accumulate
// until the next Update call.
func (i *Input) Attach(win *glfw.Window) {
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			i.pending = append(i.pending, Event{Type: EventKeyDown, Key: key})
		case glfw.Release:
			i.pending = append(i.pending, Event{Type: EventKeyUp, Key: key})
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		i.mouseX, i.mouseY = x, y
		i.pending = append(i.pending, Event{
			Type:   EventMouseMove,
			MouseX: int(x),
			MouseY: int(y),
		})
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		ev := Event{
			MouseX: int(i.mouseX),
			MouseY: int(i.mouseY),
			Button: button,
		}
		switch action {
		case glfw.Press:
			ev.Type = EventMouseDown
		case glfw.Release:
			ev.Type = EventMouseUp
		default:
			return
		}
		i.pending = append(i.pending, ev)
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		i.pending = append(i.pending, Event{
			Type:    EventScroll,
			ScrollX: xoff,
			ScrollY: yoff,
			MouseX:  int(i.mouseX),
			MouseY:  int(i.mouseY),
		})
	})
}

// Update snapshots the events gathered since the last call.
// Call once per frame, after polling window events.
func (i *Input) Update() {
	i.events = append(i.events[:0], i.pending...)
	i.pending = i.pending[:0]
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(key glfw.Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

// MousePosition returns the last known cursor position.
func (i *Input) MousePosition() (int, int) {
	return int(i.mouseX), int(i.mouseY)
}
