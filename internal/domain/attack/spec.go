package attack

import "slices"

// Spec is a set of kinds applied during cycles [Start, End).
type Spec struct {
	Kinds []Kind
	Start int
	End   int
}

// NewSpec parses category and binds it to the window [start, end).
func NewSpec(category string, start, end int) (Spec, error) {
	kinds, err := ParseKinds(category)
	if err != nil {
		return Spec{}, err
	}

	return Spec{Kinds: kinds, Start: start, End: end}, nil
}

// Active reports whether cycle lies inside the window.
func (s Spec) Active(cycle int) bool {
	return cycle >= s.Start && cycle < s.End
}

// Has reports whether k is part of the spec.
func (s Spec) Has(k Kind) bool {
	return slices.Contains(s.Kinds, k)
}

// Category returns the comma separated category of the spec.
func (s Spec) Category() string {
	return Category(s.Kinds)
}
