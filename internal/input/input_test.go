package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestUpdateSnapshotsPending(t *testing.T) {
	in := New()

	in.pending = append(in.pending,
		Event{Type: EventKeyDown, Key: glfw.KeyR},
		Event{Type: EventMouseMove, MouseX: 10, MouseY: 20},
	)

	in.Update()

	if len(in.Events()) != 2 {
		t.Fatalf("expected 2 events after Update, got %d", len(in.Events()))
	}
	if len(in.pending) != 0 {
		t.Errorf("expected pending to be cleared, got %d events", len(in.pending))
	}

	// Next Update with nothing pending yields an empty frame.
	in.Update()
	if len(in.Events()) != 0 {
		t.Errorf("expected empty frame, got %d events", len(in.Events()))
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New()

	in.pending = append(in.pending, Event{Type: EventKeyDown, Key: glfw.KeyEscape})
	in.Update()

	if !in.IsKeyPressed(glfw.KeyEscape) {
		t.Error("expected escape to be pressed this frame")
	}
	if in.IsKeyPressed(glfw.KeyA) {
		t.Error("did not expect A to be pressed")
	}

	// Key-up events do not count as presses.
	in.pending = append(in.pending, Event{Type: EventKeyUp, Key: glfw.KeyEscape})
	in.Update()
	if in.IsKeyPressed(glfw.KeyEscape) {
		t.Error("key release should not register as a press")
	}
}
