package elevator

import "math/rand/v2"

const (
	// pressOneIn is the inverse probability that an idle car receives a request.
	pressOneIn = 10
)

// Demand decides which buttons passengers press at the start of a cycle.
type Demand interface {
	Press(cycle int, s *State)
}

// RandomDemand presses a button on an idle car with probability 1/10,
// choosing either level with equal chance.
type RandomDemand struct {
	rng *rand.Rand
}

// NewRandomDemand returns passenger demand drawn from rng.
func NewRandomDemand(rng *rand.Rand) *RandomDemand {
	return &RandomDemand{rng: rng}
}

// Press implements Demand.
func (d *RandomDemand) Press(_ int, s *State) {
	if s.Moving || d.rng.IntN(pressOneIn) != 0 {
		return
	}

	if d.rng.IntN(2) == 0 {
		s.PressButton(Level1)
	} else {
		s.PressButton(Level2)
	}
}

// ScriptedDemand presses fixed buttons at fixed cycles.
type ScriptedDemand map[int][]int

// Press implements Demand.
func (d ScriptedDemand) Press(cycle int, s *State) {
	for _, level := range d[cycle] {
		s.PressButton(level)
	}
}
