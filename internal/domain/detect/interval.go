package detect

import (
	"fmt"
	"slices"
)

// Interval is a closed range of cycle indices.
type Interval struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// String renders the interval as "(lo, hi)".
func (i Interval) String() string {
	return fmt.Sprintf("(%d, %d)", i.Lo, i.Hi)
}

// Group folds indices into the minimal ascending list of disjoint closed
// intervals covering exactly the same set. Duplicates are allowed.
func Group(indices []int) []Interval {
	if len(indices) == 0 {
		return nil
	}

	sorted := slices.Clone(indices)
	slices.Sort(sorted)

	intervals := []Interval{{Lo: sorted[0], Hi: sorted[0]}}

	for _, idx := range sorted[1:] {
		last := &intervals[len(intervals)-1]
		if idx <= last.Hi+1 {
			last.Hi = max(last.Hi, idx)
			continue
		}

		intervals = append(intervals, Interval{Lo: idx, Hi: idx})
	}

	return intervals
}
