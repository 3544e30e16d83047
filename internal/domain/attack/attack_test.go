package attack

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/elevator-ids/internal/domain/elevator"
)

func newState() *elevator.State {
	return &elevator.State{
		CurrentLevel: elevator.Level1,
		ThresTemp:    50,
		Weight:       500,
		MaxTemp:      elevator.DefaultMaxTemp,
		MaxWeight:    elevator.DefaultMaxWeight,
	}
}

// TestParseKinds covers deduplication, NONE handling and unknown kinds.
func TestParseKinds(t *testing.T) {
	t.Parallel()

	kinds, err := ParseKinds("bias, SURGE,BIAS")
	require.NoError(t, err)
	require.Equal(t, []Kind{Bias, Surge}, kinds)

	kinds, err = ParseKinds("NONE")
	require.NoError(t, err)
	require.Empty(t, kinds)
	require.Equal(t, "NONE", Category(kinds))

	kinds, err = ParseKinds("")
	require.NoError(t, err)
	require.Empty(t, kinds)

	_, err = ParseKinds("BIAS,TELEPORT")
	require.ErrorIs(t, err, ErrUnknownKind)
}

// TestSpecActive checks the half-open window.
func TestSpecActive(t *testing.T) {
	t.Parallel()

	spec, err := NewSpec("SURGE", 10, 20)
	require.NoError(t, err)
	require.False(t, spec.Active(9))
	require.True(t, spec.Active(10))
	require.True(t, spec.Active(19))
	require.False(t, spec.Active(20))
	require.Equal(t, "SURGE", spec.Category())
}

// TestInject_OutsideWindow leaves state and observation untouched.
func TestInject_OutsideWindow(t *testing.T) {
	t.Parallel()

	spec, err := NewSpec("SURGE,ATTACK_MAX_TEMP", 5, 6)
	require.NoError(t, err)

	inj := NewInjector(spec, rand.New(rand.NewPCG(1, 1)))
	s := newState()
	obs := elevator.Observation{Temp: 50}

	mark := inj.Inject(4, s, &obs)
	require.False(t, mark.Launched)
	require.Zero(t, mark.Count)
	require.InDelta(t, 50, obs.Temp, 1e-9)
	require.EqualValues(t, elevator.DefaultMaxTemp, s.MaxTemp)
}

// TestInject_ValueAttacks checks SURGE, BIAS and RANDOM distort the reading.
func TestInject_ValueAttacks(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))

	surge := NewInjector(Spec{Kinds: []Kind{Surge}, Start: 0, End: 1}, rng)
	obs := elevator.Observation{Temp: 50}
	mark := surge.Inject(0, newState(), &obs)
	require.Equal(t, elevator.AttackMark{Launched: true, Count: 1}, mark)
	require.InDelta(t, 120, obs.Temp, 1e-9)

	bias := NewInjector(Spec{Kinds: []Kind{Bias}, Start: 0, End: 100}, rng)
	for cycle := range 100 {
		obs = elevator.Observation{Temp: 50}
		bias.Inject(cycle, newState(), &obs)

		offset := obs.Temp - 50
		require.Contains(t, []float64{-17, -16, -15, 14, 15, 16}, offset)
	}

	random := NewInjector(Spec{Kinds: []Kind{Random}, Start: 0, End: 100}, rng)
	for cycle := range 100 {
		obs = elevator.Observation{Temp: 50}
		random.Inject(cycle, newState(), &obs)

		require.GreaterOrEqual(t, obs.Temp, 20.0)
		require.LessOrEqual(t, obs.Temp, 80.0)
	}
}

// TestInject_LimitTampering persists the rewritten limits after the window.
func TestInject_LimitTampering(t *testing.T) {
	t.Parallel()

	inj := NewInjector(Spec{Kinds: []Kind{AttackMaxTemp, AttackMaxWeight}, Start: 0, End: 1}, rand.New(rand.NewPCG(1, 1)))
	s := newState()
	obs := elevator.Observation{}

	mark := inj.Inject(0, s, &obs)
	require.Equal(t, 2, mark.Count)
	require.EqualValues(t, 20, s.MaxTemp)
	require.EqualValues(t, 10, s.MaxWeight)

	mark = inj.Inject(1, s, &obs)
	require.False(t, mark.Launched)
	require.EqualValues(t, 20, s.MaxTemp)
}

// TestInject_ButtonAttack checks the command path corruption and its guard.
func TestInject_ButtonAttack(t *testing.T) {
	t.Parallel()

	inj := NewInjector(Spec{Kinds: []Kind{ButtonAttack}, Start: 0, End: 10}, rand.New(rand.NewPCG(1, 1)))

	// No button: guard fails and nothing is counted.
	s := newState()
	mark := inj.Inject(0, s, &elevator.Observation{})
	require.False(t, mark.Launched)

	// Level 1 requested at level 1: the car is sent to level 2 instead.
	s = newState()
	s.PressButton(elevator.Level1)
	mark = inj.Inject(1, s, &elevator.Observation{})
	require.True(t, mark.Launched)
	require.True(t, s.Moving)
	require.True(t, s.MovingToLevel2)

	s.Step(false)
	require.Equal(t, elevator.Level2, s.CurrentLevel)

	// Level 1 requested at level 2: the pending motion is cancelled.
	s = newState()
	s.CurrentLevel = elevator.Level2
	s.Moving = true
	s.MovingToLevel1 = true
	s.ButtonLevel1 = true
	mark = inj.Inject(2, s, &elevator.Observation{})
	require.Equal(t, 1, mark.Count)
	require.False(t, s.Moving)
	require.False(t, s.MovingToLevel1)
}

// TestInject_CombinedCount counts only the kinds that fired.
func TestInject_CombinedCount(t *testing.T) {
	t.Parallel()

	spec, err := NewSpec("BIAS,SURGE,BUTTON_ATTACK", 0, 1)
	require.NoError(t, err)

	obs := elevator.Observation{Temp: 50}
	mark := NewInjector(spec, rand.New(rand.NewPCG(9, 9))).Inject(0, newState(), &obs)
	require.Equal(t, elevator.AttackMark{Launched: true, Count: 2}, mark)
	require.Greater(t, obs.Temp, 100.0)
}
