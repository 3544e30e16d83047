package elevator

// action is the single structural change a scan cycle may perform.
type action int

const (
	actionNone action = iota
	actionOpenDoor
	actionCloseDoor
	actionBeginClosing
	actionArrive
	actionDispatch
)

// String implements fmt.Stringer for debugging output.
func (a action) String() string {
	switch a {
	case actionOpenDoor:
		return "open-door"
	case actionCloseDoor:
		return "close-door"
	case actionBeginClosing:
		return "begin-closing"
	case actionArrive:
		return "arrive"
	case actionDispatch:
		return "dispatch"
	default:
		return "none"
	}
}

// Step advances the controller by one scan cycle.
//
// overweightObserved is the noisy overweight alarm of the same cycle; it can
// interrupt a travelling car in addition to the controller's own FireAlarm.
//
// Housekeeping always runs first, then at most one latched action is applied,
// then the safety overrides run unconditionally.
func (s *State) Step(overweightObserved bool) {
	s.FireAlarm = s.Overloaded()

	if s.DoorOpen {
		s.DoorOpening = false
		s.DoorClosing = false
	}

	if s.DoorOpening || s.DoorClosing {
		s.DoorOpen = false
	}

	s.apply(s.nextAction())

	// A closing door never completes while the alarm is raised.
	if s.DoorClosing && s.FireAlarm {
		s.DoorClosing = false
	}

	if s.Moving && (s.FireAlarm || overweightObserved) {
		s.Moving = false
	}

	// Fail-safe: an alarmed idle car always opens its doors.
	if !s.Moving && s.FireAlarm && !s.DoorOpening && !s.DoorOpen {
		s.DoorOpening = true
		s.DoorClosing = false
	}

	s.ButtonLevel1 = false
	s.ButtonLevel2 = false
}

// nextAction evaluates the latched guards in priority order and returns the
// first one that holds.
func (s *State) nextAction() action {
	switch {
	case s.DoorOpening:
		return actionOpenDoor
	case s.DoorClosing:
		return actionCloseDoor
	case !s.FireAlarm && s.DoorOpen && !s.Overloaded():
		// An overloaded car keeps its door open and leaves the latch free.
		return actionBeginClosing
	case s.Moving:
		return actionArrive
	case !s.FireAlarm && !s.DoorOpen && !s.DoorOpening:
		return actionDispatch
	default:
		return actionNone
	}
}

func (s *State) apply(a action) {
	switch a {
	case actionOpenDoor:
		s.DoorOpening = false
		s.DoorOpen = true
	case actionCloseDoor:
		s.DoorClosing = false
		s.DoorOpen = false

		if s.MovingToLevel1 || s.MovingToLevel2 {
			s.Moving = true
		}
	case actionBeginClosing:
		s.DoorOpen = false
		s.DoorClosing = true
	case actionArrive:
		s.Moving = false
		s.DoorOpening = true

		if s.MovingToLevel1 {
			s.CurrentLevel = Level1
			s.MovingToLevel1 = false
		} else {
			s.CurrentLevel = Level2
			s.MovingToLevel2 = false
		}
	case actionDispatch:
		s.dispatch()
	case actionNone:
	}
}

// dispatch serves a pending button. Level 2 wins simultaneous requests, and a
// request for the current level re-opens the door instead of moving.
func (s *State) dispatch() {
	switch {
	case s.ButtonLevel2 && s.CurrentLevel != Level2:
		s.MovingToLevel2 = true
		s.Moving = true
	case s.ButtonLevel2:
		s.DoorOpening = true
	case s.ButtonLevel1 && s.CurrentLevel != Level1:
		s.MovingToLevel1 = true
		s.Moving = true
	case s.ButtonLevel1:
		s.DoorOpening = true
	}
}
