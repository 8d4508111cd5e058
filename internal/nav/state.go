package nav

// State tracks where a user currently is and how they got there. The stack
// holds previously current screens, most recent last; it is empty while the
// user sits on the home screen.
//
// The stack is recorded as a side effect of forward navigation rather than
// derived from a static transition table: any screen may link forward to any
// other, while back is always the literal reverse of the path taken.
type State struct {
	Current Screen
	Stack   []Screen
}

// NewState returns navigation state positioned on the home screen.
func NewState() State {
	return State{Current: ScreenHome}
}

// Enter follows a forward link to target. The screen being left becomes
// recoverable via Back. Entering the screen the user is already on records
// nothing.
func (s *State) Enter(target Screen) {
	if s.Current != target {
		s.Stack = append(s.Stack, s.Current)
	}
	s.Current = target
}

// Back pops the most recently left screen and makes it current. On an empty
// stack it settles on home and reports that; an empty stack is the expected
// terminal condition, not an error, so Back is total.
func (s *State) Back() Screen {
	if n := len(s.Stack); n > 0 {
		s.Current = s.Stack[n-1]
		s.Stack = s.Stack[:n-1]
		return s.Current
	}
	s.Current = ScreenHome
	return ScreenHome
}

// Reset drops all history and returns to the home screen. Used on top-level
// re-entry commands.
func (s *State) Reset() {
	s.Stack = s.Stack[:0]
	s.Current = ScreenHome
}

// Jump moves to a top-level sibling that must not be reachable via Back,
// such as the admin area. The old history is discarded so the target starts
// its own stack namespace.
func (s *State) Jump(target Screen) {
	s.Stack = s.Stack[:0]
	s.Current = target
}

// Depth reports how many screens Back can still unwind.
func (s *State) Depth() int {
	return len(s.Stack)
}
