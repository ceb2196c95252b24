package gpu

import "testing"

func TestReleaseStackOrder(t *testing.T) {
	var s ReleaseStack
	var order []string

	s.Push(func() { order = append(order, "first") })
	s.Push(func() { order = append(order, "second") })
	s.Push(func() { order = append(order, "third") })

	if s.Len() != 3 {
		t.Fatalf("expected 3 pending cleanups, got %d", s.Len())
	}

	s.Release()

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("expected %d cleanups to run, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("cleanup %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestReleaseStackIdempotent(t *testing.T) {
	var s ReleaseStack
	count := 0

	s.Push(func() { count++ })

	s.Release()
	s.Release()

	if count != 1 {
		t.Errorf("cleanup ran %d times, want exactly once", count)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty stack after release, got %d", s.Len())
	}
}

func TestReleaseStackEmpty(t *testing.T) {
	var s ReleaseStack
	s.Release() // must not panic
}
