package elevator

import "math/rand/v2"

const (
	// DefaultMaxTemp is the temperature limit programmed into the controller.
	DefaultMaxTemp = 100
	// DefaultMaxWeight is the load limit programmed into the controller.
	DefaultMaxWeight = 1200

	// Level1 and Level2 are the two served floors.
	Level1 = 1
	Level2 = 2

	minInitialTemp   = 30
	maxInitialTemp   = 99
	maxInitialWeight = 1500
)

// State is the controller record for one elevator.
// It is owned by a single simulator for the duration of a run.
type State struct {
	// Moving is set while the car travels between levels.
	Moving bool
	// DoorOpen reports a fully open door.
	DoorOpen bool
	// DoorOpening and DoorClosing are the transient door phases.
	DoorOpening bool
	DoorClosing bool
	// FireAlarm is recomputed every cycle from Weight > MaxWeight.
	// The name comes from the PLC tag; the condition is the overload check.
	FireAlarm bool

	// ButtonLevel1 and ButtonLevel2 are edge-triggered passenger requests.
	ButtonLevel1 bool
	ButtonLevel2 bool

	// CurrentLevel is Level1 or Level2.
	CurrentLevel int
	// MovingToLevel1 and MovingToLevel2 latch the pending destination.
	MovingToLevel1 bool
	MovingToLevel2 bool

	// ThresTemp is the measured cabin temperature.
	ThresTemp float64
	// Weight is the measured load.
	Weight float64

	// MaxTemp and MaxWeight are mutable because some attacks rewrite them.
	MaxTemp   float64
	MaxWeight float64
}

// NewState returns an idle elevator at level 1 with doors closed and
// temperature and load drawn from rng.
func NewState(rng *rand.Rand) *State {
	return &State{
		CurrentLevel: Level1,
		ThresTemp:    float64(minInitialTemp + rng.IntN(maxInitialTemp-minInitialTemp+1)),
		Weight:       float64(rng.IntN(maxInitialWeight + 1)),
		MaxTemp:      DefaultMaxTemp,
		MaxWeight:    DefaultMaxWeight,
	}
}

// Overloaded reports whether the load exceeds the configured limit.
func (s *State) Overloaded() bool {
	return s.Weight > s.MaxWeight
}

// PressButton registers a passenger request for level.
// Requests for unknown levels are ignored.
func (s *State) PressButton(level int) {
	switch level {
	case Level1:
		s.ButtonLevel1 = true
	case Level2:
		s.ButtonLevel2 = true
	}
}
