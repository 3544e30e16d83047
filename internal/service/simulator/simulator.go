package simulator

import (
	"math/rand/v2"

	"github.com/oshokin/elevator-ids/internal/domain/attack"
	"github.com/oshokin/elevator-ids/internal/domain/detect"
	"github.com/oshokin/elevator-ids/internal/domain/elevator"
)

// DefaultCycles is the number of scan cycles in a round.
const DefaultCycles = 500

// Trail is the output of one simulation.
type Trail struct {
	// Temps and Weights are the true channel values per cycle.
	Temps   []float64
	Weights []float64
	// Readings are the noisy, possibly attacked per-cycle records.
	Readings []elevator.Reading
}

// Standard returns the true values of the channel watched by sensor.
func (t Trail) Standard(sensor detect.Sensor) []float64 {
	if sensor == detect.SensorWeight {
		return t.Weights
	}

	return t.Temps
}

// Simulator runs rounds against a private random source. It is not safe for
// concurrent use; concurrent rounds each get their own Simulator.
type Simulator struct {
	rng    *rand.Rand
	noise  elevator.NoiseSource
	demand elevator.Demand
	cycles int
	sensor detect.Sensor
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithNoise replaces the uniform noise model.
func WithNoise(noise elevator.NoiseSource) Option {
	return func(s *Simulator) {
		if noise != nil {
			s.noise = noise
		}
	}
}

// WithDemand replaces random passenger demand.
func WithDemand(demand elevator.Demand) Option {
	return func(s *Simulator) {
		if demand != nil {
			s.demand = demand
		}
	}
}

// WithCycles sets the number of cycles used by RunRound.
func WithCycles(cycles int) Option {
	return func(s *Simulator) {
		if cycles > 0 {
			s.cycles = cycles
		}
	}
}

// WithSensor selects the channel scored by RunRound.
func WithSensor(sensor detect.Sensor) Option {
	return func(s *Simulator) {
		if sensor != "" {
			s.sensor = sensor
		}
	}
}

// New returns a Simulator drawing all randomness from rng.
func New(rng *rand.Rand, opts ...Option) *Simulator {
	s := &Simulator{
		rng:    rng,
		noise:  elevator.NewUniformNoise(rng),
		demand: elevator.NewRandomDemand(rng),
		cycles: DefaultCycles,
		sensor: detect.SensorTemp,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Simulate advances state for cycles scan cycles with spec injected.
// Each cycle observes the state, applies demand and the attack, records the
// reading and then steps the controller.
func (s *Simulator) Simulate(state *elevator.State, cycles int, spec attack.Spec) Trail {
	var (
		injector = attack.NewInjector(spec, s.rng)
		trail    = Trail{
			Temps:    make([]float64, 0, cycles),
			Weights:  make([]float64, 0, cycles),
			Readings: make([]elevator.Reading, 0, cycles),
		}
	)

	for cycle := range cycles {
		obs := elevator.Observe(state, s.noise.Next())

		s.demand.Press(cycle, state)
		mark := injector.Inject(cycle, state, &obs)

		trail.Temps = append(trail.Temps, state.ThresTemp)
		trail.Weights = append(trail.Weights, state.Weight)
		trail.Readings = append(trail.Readings, elevator.NewReading(cycle, state, obs, mark))

		state.Step(obs.OverweightAlarm)
	}

	return trail
}

// RandomSpec draws a window [start, start+duration) with start in
// [0, cycles] and duration in [1, cycles] for category.
func (s *Simulator) RandomSpec(category string) (attack.Spec, error) {
	start := s.rng.IntN(s.cycles + 1)
	duration := 1 + s.rng.IntN(s.cycles)

	return attack.NewSpec(category, start, start+duration)
}

// PickCategory returns category, or a uniformly drawn single-kind category
// when it is empty.
func (s *Simulator) PickCategory(category string) string {
	if category != "" {
		return category
	}

	categories := attack.Categories()

	return string(categories[s.rng.IntN(len(categories))])
}

// RunRound simulates a fresh elevator under category with a random window
// and runs the detector over the result.
func (s *Simulator) RunRound(category string, params detect.Params) (detect.Result, Trail, error) {
	spec, err := s.RandomSpec(s.PickCategory(category))
	if err != nil {
		return detect.Result{}, Trail{}, err
	}

	trail := s.Simulate(elevator.NewState(s.rng), s.cycles, spec)
	truth := detect.GroundTruthFromReadings(spec.Category(), len(spec.Kinds), trail.Readings)

	result := detect.Cusum(
		trail.Standard(s.sensor),
		s.sensor.Observed(trail.Readings),
		trail.Readings,
		params,
		truth,
	)

	return result, trail, nil
}
