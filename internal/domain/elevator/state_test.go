package elevator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func idleState() *State {
	return &State{
		CurrentLevel: Level1,
		ThresTemp:    50,
		Weight:       500,
		MaxTemp:      DefaultMaxTemp,
		MaxWeight:    DefaultMaxWeight,
	}
}

// TestNewState checks the factory draws initial values from the documented ranges.
func TestNewState(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		s := NewState(rng)

		require.Equal(t, Level1, s.CurrentLevel)
		require.GreaterOrEqual(t, s.ThresTemp, 30.0)
		require.LessOrEqual(t, s.ThresTemp, 99.0)
		require.GreaterOrEqual(t, s.Weight, 0.0)
		require.LessOrEqual(t, s.Weight, 1500.0)
		require.EqualValues(t, DefaultMaxTemp, s.MaxTemp)
		require.EqualValues(t, DefaultMaxWeight, s.MaxWeight)
		require.False(t, s.Moving || s.DoorOpen || s.DoorOpening || s.DoorClosing)
	}
}

// TestStep_RequestForCurrentLevelReopensDoor walks the scripted scenario where
// level 1 is requested while the car already sits at level 1.
func TestStep_RequestForCurrentLevelReopensDoor(t *testing.T) {
	t.Parallel()

	s := idleState()

	s.PressButton(Level1)
	s.Step(false)
	require.True(t, s.DoorOpening)
	require.False(t, s.Moving)

	s.Step(false)
	require.True(t, s.DoorOpen)
	require.False(t, s.DoorOpening)

	s.Step(false)
	require.True(t, s.DoorClosing)
	require.False(t, s.DoorOpen)

	for range 10 {
		s.Step(false)
		require.False(t, s.Moving)
		require.Equal(t, Level1, s.CurrentLevel)
	}

	require.False(t, s.DoorOpen)
	require.False(t, s.MovingToLevel1 || s.MovingToLevel2)
}

// TestStep_Level2WinsSimultaneousRequests verifies level 2 priority and arrival.
func TestStep_Level2WinsSimultaneousRequests(t *testing.T) {
	t.Parallel()

	s := idleState()
	s.PressButton(Level1)
	s.PressButton(Level2)

	s.Step(false)
	require.True(t, s.Moving)
	require.True(t, s.MovingToLevel2)
	require.False(t, s.MovingToLevel1)
	require.False(t, s.ButtonLevel1 || s.ButtonLevel2, "buttons are cleared every cycle")

	s.Step(false)
	require.False(t, s.Moving)
	require.True(t, s.DoorOpening)
	require.Equal(t, Level2, s.CurrentLevel)
	require.False(t, s.MovingToLevel2)
}

// TestStep_OverloadBlocksDeparture keeps the door open while the car is overloaded.
func TestStep_OverloadBlocksDeparture(t *testing.T) {
	t.Parallel()

	s := idleState()
	s.DoorOpen = true
	s.Weight = 1300

	for range 5 {
		s.PressButton(Level2)
		s.Step(false)

		require.True(t, s.DoorOpen)
		require.False(t, s.Moving)
		require.False(t, s.DoorClosing)
		require.True(t, s.FireAlarm)
	}

	// Unloading lets the door close on the next cycle.
	s.Weight = 400
	s.Step(false)
	require.True(t, s.DoorClosing)
	require.False(t, s.FireAlarm)
}

// TestStep_FailSafeOpensDoors checks that an alarm interrupts a departing car
// and that the car does not move again until the alarm clears.
func TestStep_FailSafeOpensDoors(t *testing.T) {
	t.Parallel()

	s := idleState()
	s.DoorClosing = true
	s.MovingToLevel2 = true
	s.Weight = 1300

	s.Step(false)
	require.True(t, s.FireAlarm)
	require.False(t, s.Moving)
	require.True(t, s.DoorOpening || s.DoorOpen)

	for cycle := range 20 {
		if cycle%2 == 0 {
			s.PressButton(Level2)
		} else {
			s.PressButton(Level1)
		}

		s.Step(false)
		require.False(t, s.Moving)
		require.True(t, s.DoorOpening || s.DoorOpen)
	}
}

// TestStep_ObservedOverweightStopsCar verifies the noisy overweight alarm
// interrupts travel even when the latch was taken by another transition.
func TestStep_ObservedOverweightStopsCar(t *testing.T) {
	t.Parallel()

	s := idleState()
	s.Moving = true
	s.DoorOpening = true
	s.MovingToLevel2 = true

	s.Step(true)
	require.True(t, s.DoorOpen)
	require.False(t, s.Moving)

	s = idleState()
	s.Moving = true
	s.DoorOpening = true
	s.MovingToLevel2 = true

	s.Step(false)
	require.True(t, s.DoorOpen)
	require.True(t, s.Moving, "without the alarm the latched door transition leaves motion untouched")
}

// TestNextAction_Priority checks the latched guard order.
func TestNextAction_Priority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		state State
		want  action
	}{
		{"opening beats closing", State{DoorOpening: true, DoorClosing: true}, actionOpenDoor},
		{"closing", State{DoorClosing: true, MaxWeight: 10, Weight: 1}, actionCloseDoor},
		{"open door begins closing", State{DoorOpen: true, MaxWeight: 10, Weight: 1}, actionBeginClosing},
		{"overloaded open door waits", State{DoorOpen: true, FireAlarm: true}, actionNone},
		{"moving arrives", State{Moving: true}, actionArrive},
		{"idle dispatches", State{CurrentLevel: Level1}, actionDispatch},
		{"alarmed idle waits", State{FireAlarm: true}, actionNone},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.state.nextAction(), tc.name)
	}
}

// TestObserve covers noisy alarms and the moving suppression rule.
func TestObserve(t *testing.T) {
	t.Parallel()

	s := idleState()
	s.Moving = true
	s.ThresTemp = 99.8

	obs := Observe(s, Deviations{Temp: 0.4})
	require.InDelta(t, 100.2, obs.Temp, 1e-9)
	require.True(t, obs.FireAlarm)
	require.False(t, obs.OverweightAlarm)
	require.False(t, obs.Moving, "an alarmed car never reads as moving")

	obs = Observe(s, Deviations{Temp: -5})
	require.False(t, obs.FireAlarm)
	require.True(t, obs.Moving)

	obs = Observe(s, Deviations{Moving: -0.6})
	require.False(t, obs.Moving)

	// An unset flag can never cross 0.5 under noise capped at 0.5.
	s.Moving = false
	obs = Observe(s, Deviations{Moving: DefaultNoiseUpper})
	require.False(t, obs.Moving)
}

// TestUniformNoiseBounds samples the default noise model.
func TestUniformNoiseBounds(t *testing.T) {
	t.Parallel()

	n := NewUniformNoise(rand.New(rand.NewPCG(7, 7)))
	for range 1000 {
		d := n.Next()
		for _, v := range []float64{d.Temp, d.Moving, d.MovingToLevel1, d.MovingToLevel2, d.DoorOpen, d.Weight} {
			require.GreaterOrEqual(t, v, DefaultNoiseLower)
			require.Less(t, v, DefaultNoiseUpper)
		}
	}
}

// TestScriptedDemand presses only the scripted buttons.
func TestScriptedDemand(t *testing.T) {
	t.Parallel()

	d := ScriptedDemand{0: {Level1}, 3: {Level1, Level2}}
	s := idleState()

	d.Press(0, s)
	require.True(t, s.ButtonLevel1)
	require.False(t, s.ButtonLevel2)

	s.ButtonLevel1 = false
	d.Press(1, s)
	require.False(t, s.ButtonLevel1 || s.ButtonLevel2)

	d.Press(3, s)
	require.True(t, s.ButtonLevel1 && s.ButtonLevel2)
}
