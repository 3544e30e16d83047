package attack

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Kind names one attack behavior.
type Kind string

// Attack kinds.
const (
	None            Kind = "NONE"
	Bias            Kind = "BIAS"
	Surge           Kind = "SURGE"
	Random          Kind = "RANDOM"
	ButtonAttack    Kind = "BUTTON_ATTACK"
	AttackMaxTemp   Kind = "ATTACK_MAX_TEMP"
	AttackMaxWeight Kind = "ATTACK_MAX_WEIGHT"
)

// ErrUnknownKind is returned when a category names an attack that does not exist.
var ErrUnknownKind = errors.New("unknown attack kind")

// Categories returns the single-kind categories sampled by experiments.
func Categories() []Kind {
	return []Kind{None, Bias, Surge, Random, ButtonAttack, AttackMaxTemp, AttackMaxWeight}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return slices.Contains(Categories(), k)
}

// ParseKinds splits a comma separated category such as "BIAS,SURGE" into a
// deduplicated kind list. NONE and empty entries contribute nothing.
func ParseKinds(category string) ([]Kind, error) {
	var kinds []Kind

	for _, part := range strings.Split(category, ",") {
		k := Kind(strings.ToUpper(strings.TrimSpace(part)))
		if k == "" || k == None {
			continue
		}

		if !k.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, part)
		}

		if !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}

	return kinds, nil
}

// Category joins kinds back into the comma separated form, or NONE.
func Category(kinds []Kind) string {
	if len(kinds) == 0 {
		return string(None)
	}

	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}

	return strings.Join(parts, ",")
}
