package detect

import (
	"math"

	"github.com/oshokin/elevator-ids/internal/domain/elevator"
)

// Violation tags a physical invariant broken by a reading.
type Violation string

// Invariants checked by Verify.
const (
	ViolationWeightLimit     Violation = "weight_limit"
	ViolationTempLimit       Violation = "temp_limit"
	ViolationSpoofedFire     Violation = "spoofed_fire_alarm"
	ViolationSpoofedOverload Violation = "spoofed_overweight_alarm"
)

// Verify returns the invariants r violates:
//   - weight stays below MaxWeight,
//   - temperature stays below MaxTemp,
//   - a raised fire alarm implies temperature above MaxTemp,
//   - a raised overweight alarm implies weight above MaxWeight.
//
// A check whose operands are not finite numbers is skipped, so a corrupt
// sample reads as normal rather than aborting a grid search.
func Verify(r elevator.Reading) []Violation {
	var violations []Violation

	weightKnown := finite(r.Weight, r.MaxWeight)
	tempKnown := finite(r.Temp, r.MaxTemp)

	if weightKnown && r.Weight >= r.MaxWeight {
		violations = append(violations, ViolationWeightLimit)
	}

	if tempKnown && r.Temp >= r.MaxTemp {
		violations = append(violations, ViolationTempLimit)
	}

	if tempKnown && r.FireAlarm && r.Temp <= r.MaxTemp {
		violations = append(violations, ViolationSpoofedFire)
	}

	if weightKnown && r.OverweightAlarm && r.Weight <= r.MaxWeight {
		violations = append(violations, ViolationSpoofedOverload)
	}

	return violations
}

// Anomalous reports whether r violates at least one invariant.
func Anomalous(r elevator.Reading) bool {
	return len(Verify(r)) > 0
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
