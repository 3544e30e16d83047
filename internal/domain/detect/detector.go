package detect

import (
	"math"

	"github.com/oshokin/elevator-ids/internal/domain/elevator"
)

// GroundTruth describes what was actually injected into a run.
type GroundTruth struct {
	// Category is the comma separated attack category.
	Category string
	// Kinds is the number of attack kinds in the category.
	Kinds int
	// Cycles lists the cycles in which at least one kind fired.
	Cycles []int
}

// GroundTruthFromReadings collects the attacked cycles of a trail.
func GroundTruthFromReadings(category string, kinds int, readings []elevator.Reading) GroundTruth {
	truth := GroundTruth{Category: category, Kinds: kinds}

	for _, r := range readings {
		if r.Attack.Launched {
			truth.Cycles = append(truth.Cycles, r.Cycle)
		}
	}

	return truth
}

// Result is the detection outcome of one round. It is not modified after
// Cusum returns it.
type Result struct {
	Category               string     `json:"category"`
	Samples                int        `json:"samples"`
	Attacks                int        `json:"attacks"`
	AttackPoints           []Interval `json:"attack_points"`
	ChangePoints           []int      `json:"change_points"`
	Detected               int        `json:"detected"`
	FalseAlarms            int        `json:"false_alarms"`
	DetectionEffectiveness float64    `json:"detection_effectiveness"`
	FalseAlarmRate         float64    `json:"false_alarm_rate"`
	// Hits and Misses are the raw confirmed alarm counts before reallocation.
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// Cusum runs the detector over |standard - observed| and confirms each
// statistical alarm with Verify on the reading of the same cycle. A confirmed
// alarm on an attacked cycle is a hit, anywhere else a miss.
func Cusum(
	standard, observed []float64,
	readings []elevator.Reading,
	params Params,
	truth GroundTruth,
) Result {
	var (
		detector = NewCUSUM(params)
		attacked = make(map[int]struct{}, len(truth.Cycles))
		samples  = min(len(standard), len(observed), len(readings))
		changes  []int
		hits     int
		misses   int
	)

	for _, cycle := range truth.Cycles {
		attacked[cycle] = struct{}{}
	}

	for ts := range samples {
		if !detector.Update(math.Abs(standard[ts] - observed[ts])) {
			continue
		}

		if !Anomalous(readings[ts]) {
			continue
		}

		changes = append(changes, ts)

		if _, ok := attacked[readings[ts].Cycle]; ok {
			hits++
		} else {
			misses++
		}
	}

	attackPoints := Group(truth.Cycles)
	attacks := len(attackPoints) * truth.Kinds
	score := Analyze(len(standard), attacks, hits, misses)

	return Result{
		Category:               truth.Category,
		Samples:                len(standard),
		Attacks:                attacks,
		AttackPoints:           attackPoints,
		ChangePoints:           changes,
		Detected:               score.Detected,
		FalseAlarms:            score.FalseAlarms,
		DetectionEffectiveness: score.DetectionEffectiveness,
		FalseAlarmRate:         score.FalseAlarmRate,
		Hits:                   hits,
		Misses:                 misses,
	}
}
