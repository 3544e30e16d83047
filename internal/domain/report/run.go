package report

import "time"

// Selection picks the rows worth reporting out of a grid.
type Selection struct {
	// MinEffectiveness is the exclusive lower bound on detection effectiveness.
	MinEffectiveness float64 `json:"min_detection_effectiveness"`
	// MaxFalseAlarmRate is the exclusive upper bound on the false-alarm rate.
	MaxFalseAlarmRate float64 `json:"max_false_alarm_rate"`
	// Category restricts rows to one category; empty keeps all.
	Category string `json:"category,omitempty"`
	// Best keeps only the best row per category.
	Best bool `json:"best,omitempty"`
}

// Apply narrows rows by category, then by the bounds, then to the best per
// category when requested.
func (s Selection) Apply(rows []Row) []Row {
	kept := Filter(ByCategory(rows, s.Category), s.MinEffectiveness, s.MaxFalseAlarmRate)
	if s.Best {
		kept = Best(kept)
	}

	return kept
}

// Run is one completed grid search.
type Run struct {
	// ID names the run.
	ID string `json:"id"`
	// StartedAt is when the grid search began.
	StartedAt time.Time `json:"started_at"`
	// Seed replays the grid search.
	Seed uint64 `json:"seed,string"`
	// Rows is the complete table in grid order.
	Rows []Row `json:"rows"`
	// Selected is Rows narrowed by the run's Selection.
	Selected []Row `json:"selected"`
}
