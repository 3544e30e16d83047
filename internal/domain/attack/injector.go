package attack

import (
	"math/rand/v2"

	"github.com/oshokin/elevator-ids/internal/domain/elevator"
)

const (
	surgeTemp       = 120
	tamperedMaxTemp = 20
	tamperedWeight  = 10
	randomSpread    = 30
)

// biasOffsets is the fixed set a BIAS offset is drawn from.
//
//nolint:gochecknoglobals // Read-only lookup table.
var biasOffsets = []float64{-17, -16, -15, 14, 15, 16}

// Injector applies a Spec to the state and observation of each cycle.
type Injector struct {
	spec Spec
	rng  *rand.Rand
}

// NewInjector binds spec to a random source for the stochastic kinds.
func NewInjector(spec Spec, rng *rand.Rand) *Injector {
	return &Injector{spec: spec, rng: rng}
}

// Inject perturbs s and obs for cycle and reports which kinds fired.
// Outside the window, and for kinds whose guard fails, it does nothing.
func (i *Injector) Inject(cycle int, s *elevator.State, obs *elevator.Observation) elevator.AttackMark {
	if !i.spec.Active(cycle) {
		return elevator.AttackMark{}
	}

	fired := 0

	if i.spec.Has(Surge) {
		obs.Temp = surgeTemp
		fired++
	}

	if i.spec.Has(Bias) {
		obs.Temp += biasOffsets[i.rng.IntN(len(biasOffsets))]
		fired++
	}

	if i.spec.Has(Random) {
		obs.Temp += float64(i.rng.IntN(2*randomSpread+1) - randomSpread)
		fired++
	}

	if i.spec.Has(AttackMaxTemp) {
		s.MaxTemp = tamperedMaxTemp
		fired++
	}

	if i.spec.Has(AttackMaxWeight) {
		s.MaxWeight = tamperedWeight
		fired++
	}

	if i.spec.Has(ButtonAttack) && spoofButtons(s) {
		fired++
	}

	return elevator.AttackMark{Launched: fired > 0, Count: fired}
}

// spoofButtons rewrites the motion command behind a pressed button: a request
// for the current level sends the car away, a request for the other level is
// cancelled. It reports false when no button was pressed.
func spoofButtons(s *elevator.State) bool {
	switch {
	case s.ButtonLevel1:
		if s.CurrentLevel == elevator.Level1 {
			s.MovingToLevel2 = true
			s.Moving = true
		} else {
			s.MovingToLevel1 = false
			s.Moving = false
		}
	case s.ButtonLevel2:
		if s.CurrentLevel == elevator.Level2 {
			s.MovingToLevel1 = true
			s.Moving = true
		} else {
			s.MovingToLevel2 = false
			s.Moving = false
		}
	default:
		return false
	}

	return true
}
