package gpu

// ReleaseStack accumulates cleanup functions during initialization and
// runs them in reverse order on Release. A second Release is a no-op.
type ReleaseStack struct {
	fns []func()
}

// Push registers a cleanup function to run on Release.
func (s *ReleaseStack) Push(fn func()) {
	s.fns = append(s.fns, fn)
}

// Len returns the number of pending cleanup functions.
func (s *ReleaseStack) Len() int {
	return len(s.fns)
}

// Release runs the registered functions last-in first-out.
func (s *ReleaseStack) Release() {
	for i := len(s.fns) - 1; i >= 0; i-- {
		s.fns[i]()
	}
	s.fns = nil
}
