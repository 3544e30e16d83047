package elevator

// AttackMark records whether any attack fired in a cycle and how many kinds did.
type AttackMark struct {
	Launched bool `json:"launched"`
	Count    int  `json:"count"`
}

// Reading is the immutable record of one simulated cycle.
// Field names in JSON follow the PLC tag names consumed by the plotting tools.
type Reading struct {
	Cycle           int        `json:"cycle"`
	Attack          AttackMark `json:"attack"`
	MaxTemp         float64    `json:"MAX_TEMP"`
	MaxWeight       float64    `json:"MAX_WEIGHT"`
	DoorOpen        bool       `json:"doorOpen"`
	CurrentLevel    int        `json:"currentLevel"`
	ButtonLevel1    bool       `json:"ButtonLevel1"`
	ButtonLevel2    bool       `json:"ButtonLevel2"`
	Moving          bool       `json:"moving"`
	Weight          float64    `json:"weight"`
	Temp            float64    `json:"temp"`
	FireAlarm       bool       `json:"fire_alarm"`
	MovingToLevel1  bool       `json:"movingToLevel1"`
	MovingToLevel2  bool       `json:"movingToLevel2"`
	OverweightAlarm bool       `json:"overweight_alarm"`
}

// NewReading snapshots the state and its (possibly tampered) observation.
func NewReading(cycle int, s *State, obs Observation, mark AttackMark) Reading {
	return Reading{
		Cycle:           cycle,
		Attack:          mark,
		MaxTemp:         s.MaxTemp,
		MaxWeight:       s.MaxWeight,
		DoorOpen:        s.DoorOpen,
		CurrentLevel:    s.CurrentLevel,
		ButtonLevel1:    s.ButtonLevel1,
		ButtonLevel2:    s.ButtonLevel2,
		Moving:          obs.Moving,
		Weight:          obs.Weight,
		Temp:            obs.Temp,
		FireAlarm:       obs.FireAlarm,
		MovingToLevel1:  obs.MovingToLevel1,
		MovingToLevel2:  obs.MovingToLevel2,
		OverweightAlarm: obs.OverweightAlarm,
	}
}
