package report

import (
	"strconv"
	"strings"

	"github.com/oshokin/elevator-ids/internal/domain/detect"
	"github.com/oshokin/elevator-ids/internal/domain/elevator"
)

// Row is one line of the result table.
type Row struct {
	Round     int     `json:"round"`
	Drift     float64 `json:"drift"`
	Threshold float64 `json:"threshold"`

	detect.Result

	// Readings is the trail the result was computed from. It is kept for the
	// plotting tools and never written to the table.
	Readings []elevator.Reading `json:"-"`
}

// Columns returns the table header. The order is a compatibility contract.
func Columns() []string {
	return []string{
		"round",
		"category",
		"drift",
		"threshold",
		"samples",
		"attacks",
		"attack_points",
		"change_points",
		"detected",
		"false_alarms",
		"detection_effectiveness",
		"false_alarm_rate",
	}
}

// Record renders the row as strings in Columns order.
func (r Row) Record() []string {
	return []string{
		strconv.Itoa(r.Round),
		r.Category,
		formatFloat(r.Drift),
		formatFloat(r.Threshold),
		strconv.Itoa(r.Samples),
		strconv.Itoa(r.Attacks),
		formatIntervals(r.AttackPoints),
		formatInts(r.ChangePoints),
		strconv.Itoa(r.Detected),
		strconv.Itoa(r.FalseAlarms),
		strconv.FormatFloat(r.DetectionEffectiveness, 'f', 2, 64),
		strconv.FormatFloat(r.FalseAlarmRate, 'f', 2, 64),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatIntervals(intervals []detect.Interval) string {
	parts := make([]string, len(intervals))
	for i, iv := range intervals {
		parts[i] = iv.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
