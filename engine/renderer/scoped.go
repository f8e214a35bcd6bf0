package renderer

// Scoped enables flags on b, runs fn, and restores the previous state even if fn panics.
//
// Parameters:
//   - b: the backend whose state is changed
//   - flags: the states to enable for the duration of fn
//   - fn: the draws to run under the state
func Scoped(b LineBackend, flags StateFlags, fn func()) {
	b.PushState(flags)
	defer b.PopState()
	fn()
}

// stateStack tracks the enabled flags for backends that emulate push/pop themselves.
type stateStack struct {
	current StateFlags
	saved   []StateFlags
}

func (s *stateStack) push(flags StateFlags) StateFlags {
	s.saved = append(s.saved, s.current)
	s.current |= flags
	return s.current
}

// pop restores the previous flags. An unbalanced pop leaves the state unchanged.
func (s *stateStack) pop() (StateFlags, bool) {
	if len(s.saved) == 0 {
		return s.current, false
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return s.current, true
}
