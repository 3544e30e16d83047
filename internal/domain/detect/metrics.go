package detect

import "math"

// Score is the outcome of Analyze.
type Score struct {
	Detected               int
	FalseAlarms            int
	DetectionEffectiveness float64
	FalseAlarmRate         float64
}

// Analyze converts raw hit and miss counts into percentages.
//
// attacks is the number of merged ground-truth intervals times the number of
// active kinds. Hits beyond attacks are counted as false alarms. With no
// attacks there is nothing to miss and effectiveness is 100.
func Analyze(samples, attacks, hits, misses int) Score {
	score := Score{
		Detected:    min(hits, attacks),
		FalseAlarms: misses,
	}

	if hits > attacks {
		score.FalseAlarms += hits - attacks
	}

	if attacks == 0 {
		score.DetectionEffectiveness = 100
	} else {
		score.DetectionEffectiveness = percent(score.Detected, attacks)
	}

	score.FalseAlarmRate = percent(score.FalseAlarms, max(1, samples-attacks))

	return score
}

// percent returns 100*part/whole rounded to two decimals and clamped to [0, 100].
func percent(part, whole int) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}

	v := math.Round(float64(part)/float64(whole)*100*100) / 100

	return math.Min(100, v)
}
