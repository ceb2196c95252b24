package overlay

import "testing"

func TestInputPressReleaseEdges(t *testing.T) {
	in := &InputState{}

	in.MouseLeftDown = true
	in.Update()
	if !in.MouseLeftPressed {
		t.Error("expected pressed edge on first down frame")
	}
	if in.MouseLeftReleased {
		t.Error("unexpected released edge on first down frame")
	}

	in.Update()
	if in.MouseLeftPressed {
		t.Error("pressed edge should not repeat while held")
	}

	in.MouseLeftDown = false
	in.Update()
	if in.MouseLeftPressed {
		t.Error("unexpected pressed edge on release frame")
	}
	if !in.MouseLeftReleased {
		t.Error("expected released edge after button up")
	}

	in.Update()
	if in.MouseLeftReleased {
		t.Error("released edge should not repeat")
	}
}

func TestInputMouseDelta(t *testing.T) {
	in := &InputState{}

	in.MouseX, in.MouseY = 100, 50
	in.Update()

	in.MouseX, in.MouseY = 130, 45
	in.Update()

	if in.MouseDeltaX != 30 || in.MouseDeltaY != -5 {
		t.Errorf("expected delta (30, -5), got (%v, %v)", in.MouseDeltaX, in.MouseDeltaY)
	}

	in.Update()
	if in.MouseDeltaX != 0 || in.MouseDeltaY != 0 {
		t.Errorf("expected zero delta without movement, got (%v, %v)", in.MouseDeltaX, in.MouseDeltaY)
	}
}

func TestInputEndFrameClearsScroll(t *testing.T) {
	in := &InputState{ScrollY: 3}
	in.EndFrame()
	if in.ScrollY != 0 {
		t.Errorf("expected scroll cleared, got %v", in.ScrollY)
	}
}

func TestIsMouseInRect(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 15, 15, true},
		{"top left corner", 10, 10, true},
		{"right edge excluded", 30, 15, false},
		{"bottom edge excluded", 15, 30, false},
		{"outside", 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &InputState{MouseX: tt.x, MouseY: tt.y}
			if got := in.IsMouseInRect(10, 10, 20, 20); got != tt.want {
				t.Errorf("IsMouseInRect at (%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
