package detect

import "math"

// Params are the tunable CUSUM parameters.
type Params struct {
	// Drift is subtracted every step to ignore small sustained deviations.
	Drift float64 `json:"drift"`
	// Threshold is the decision level for either accumulator.
	Threshold float64 `json:"threshold"`
}

// CUSUM is a two-sided cumulative sum over absolute deviations.
type CUSUM struct {
	Params

	// Pos and Neg are the upper and lower cumulative sums.
	Pos float64
	Neg float64
}

// NewCUSUM returns an accumulator with both sums at zero.
func NewCUSUM(params Params) *CUSUM {
	return &CUSUM{Params: params}
}

// Update feeds one deviation and reports whether either sum crossed the
// threshold. Both sums restart from zero after an alarm. A non-finite
// deviation counts as zero so the sums stay usable.
func (c *CUSUM) Update(deviation float64) bool {
	if math.IsNaN(deviation) || math.IsInf(deviation, 0) {
		deviation = 0
	}

	c.Pos = math.Max(0, c.Pos+deviation-c.Drift)
	c.Neg = math.Max(0, c.Neg-deviation-c.Drift)

	if c.Pos > c.Threshold || c.Neg > c.Threshold {
		c.Reset()
		return true
	}

	return false
}

// Reset zeroes both accumulators.
func (c *CUSUM) Reset() {
	c.Pos = 0
	c.Neg = 0
}
