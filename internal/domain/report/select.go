package report

import (
	"slices"
	"strings"
)

// Filter keeps rows strictly above minEffectiveness and strictly below
// maxFalseAlarmRate.
func Filter(rows []Row, minEffectiveness, maxFalseAlarmRate float64) []Row {
	var kept []Row

	for _, row := range rows {
		if row.DetectionEffectiveness > minEffectiveness && row.FalseAlarmRate < maxFalseAlarmRate {
			kept = append(kept, row)
		}
	}

	return kept
}

// ByCategory keeps rows of the given category. An empty category keeps all rows.
func ByCategory(rows []Row, category string) []Row {
	if category == "" {
		return rows
	}

	var kept []Row

	for _, row := range rows {
		if strings.EqualFold(row.Category, category) {
			kept = append(kept, row)
		}
	}

	return kept
}

// Best returns one row per category: highest effectiveness, then lowest
// false-alarm rate, then earliest in input order. Categories are sorted.
func Best(rows []Row) []Row {
	best := make(map[string]Row)

	for _, row := range rows {
		current, ok := best[row.Category]
		if !ok || better(row, current) {
			best[row.Category] = row
		}
	}

	categories := make([]string, 0, len(best))
	for category := range best {
		categories = append(categories, category)
	}

	slices.Sort(categories)

	result := make([]Row, 0, len(categories))
	for _, category := range categories {
		result = append(result, best[category])
	}

	return result
}

func better(candidate, current Row) bool {
	if candidate.DetectionEffectiveness != current.DetectionEffectiveness {
		return candidate.DetectionEffectiveness > current.DetectionEffectiveness
	}

	return candidate.FalseAlarmRate < current.FalseAlarmRate
}
