package elevator

import "math/rand/v2"

const (
	// DefaultNoiseLower and DefaultNoiseUpper bound the uniform sensor noise.
	DefaultNoiseLower = -5.0
	DefaultNoiseUpper = 0.5

	// booleanCrossing is the level a noisy boolean channel must exceed to read as set.
	booleanCrossing = 0.5
)

// Deviations holds one cycle of per-channel sensor noise.
type Deviations struct {
	Temp           float64
	Moving         float64
	MovingToLevel1 float64
	MovingToLevel2 float64
	DoorOpen       float64
	Weight         float64
}

// NoiseSource produces the deviations for the next cycle.
type NoiseSource interface {
	Next() Deviations
}

// UniformNoise draws every channel independently from [Lower, Upper).
type UniformNoise struct {
	rng   *rand.Rand
	lower float64
	upper float64
}

// NewUniformNoise returns the default [-5, 0.5) noise model backed by rng.
func NewUniformNoise(rng *rand.Rand) *UniformNoise {
	return &UniformNoise{
		rng:   rng,
		lower: DefaultNoiseLower,
		upper: DefaultNoiseUpper,
	}
}

// Next implements NoiseSource.
func (n *UniformNoise) Next() Deviations {
	return Deviations{
		Temp:           n.draw(),
		Moving:         n.draw(),
		MovingToLevel1: n.draw(),
		MovingToLevel2: n.draw(),
		DoorOpen:       n.draw(),
		Weight:         n.draw(),
	}
}

func (n *UniformNoise) draw() float64 {
	return n.lower + n.rng.Float64()*(n.upper-n.lower)
}

// ZeroNoise is a NoiseSource without perturbation, used for scripted scenarios.
type ZeroNoise struct{}

// Next implements NoiseSource.
func (ZeroNoise) Next() Deviations {
	return Deviations{}
}

// Observation is the sensor view of a state under noise.
type Observation struct {
	Temp           float64
	Weight         float64
	Moving         bool
	MovingToLevel1 bool
	MovingToLevel2 bool
	DoorOpen       bool
	// FireAlarm (over-temperature) is Temp > MaxTemp.
	FireAlarm bool
	// OverweightAlarm is Weight > MaxWeight.
	OverweightAlarm bool
}

// Observe applies d to s. An alarmed car never reads as moving.
func Observe(s *State, d Deviations) Observation {
	obs := Observation{
		Temp:           s.ThresTemp + d.Temp,
		Weight:         s.Weight + d.Weight,
		MovingToLevel1: crosses(s.MovingToLevel1, d.MovingToLevel1),
		MovingToLevel2: crosses(s.MovingToLevel2, d.MovingToLevel2),
		DoorOpen:       crosses(s.DoorOpen, d.DoorOpen),
	}

	obs.FireAlarm = obs.Temp > s.MaxTemp
	obs.OverweightAlarm = obs.Weight > s.MaxWeight
	obs.Moving = !obs.FireAlarm && !obs.OverweightAlarm && crosses(s.Moving, d.Moving)

	return obs
}

func crosses(flag bool, deviation float64) bool {
	v := 0.0
	if flag {
		v = 1
	}

	return v+deviation > booleanCrossing
}
