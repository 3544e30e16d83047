package experiment

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/elevator-ids/internal/domain/detect"
	"github.com/oshokin/elevator-ids/internal/domain/elevator"
	"github.com/oshokin/elevator-ids/internal/domain/report"
	"github.com/oshokin/elevator-ids/internal/service/experiment"
)

// RoundRequest asks for a single scored round.
type RoundRequest struct {
	Category  string  `json:"category"`
	Drift     float64 `json:"drift"`
	Threshold float64 `json:"threshold"`
	Cycles    int     `json:"cycles"`
	Sensor    string  `json:"sensor"`
	// Seed is sent as a string to survive the float64 numbers of Struct.
	Seed         uint64 `json:"seed,string"`
	WithReadings bool   `json:"with_readings"`
	RequestedBy  string `json:"requested_by"`
}

// RoundResponse carries the scored row and, on request, its trail.
type RoundResponse struct {
	Row      report.Row         `json:"row"`
	Readings []elevator.Reading `json:"readings,omitempty"`
}

// GridRequest asks for a grid search.
type GridRequest struct {
	Rounds      int              `json:"rounds"`
	Cycles      int              `json:"cycles"`
	Drifts      []float64        `json:"drifts"`
	Thresholds  []float64        `json:"thresholds"`
	Category    string           `json:"category"`
	Sensor      string           `json:"sensor"`
	Seed        uint64           `json:"seed,string"`
	Workers     int              `json:"workers"`
	Selection   report.Selection `json:"selection"`
	RequestedBy string           `json:"requested_by"`
}

// GridResponse is a completed run. Rows never carry readings.
type GridResponse = report.Run

// Options converts the request into runner options.
func (r *GridRequest) Options() experiment.Options {
	return experiment.Options{
		Rounds:     r.Rounds,
		Cycles:     r.Cycles,
		Drifts:     r.Drifts,
		Thresholds: r.Thresholds,
		Category:   r.Category,
		Sensor:     detect.Sensor(r.Sensor),
		Seed:       r.Seed,
		Workers:    r.Workers,
	}
}

// Round converts the request into a runner round request.
func (r *RoundRequest) Round() experiment.RoundRequest {
	return experiment.RoundRequest{
		Category: r.Category,
		Params:   detect.Params{Drift: r.Drift, Threshold: r.Threshold},
		Cycles:   r.Cycles,
		Sensor:   detect.Sensor(r.Sensor),
		Seed:     r.Seed,
	}
}

// Encode converts v into a Struct through its JSON form.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	out := new(structpb.Struct)
	if err = protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	return out, nil
}

// Decode fills v from s through its JSON form. A nil s decodes as an empty
// object.
func Decode(s *structpb.Struct, v any) error {
	if s == nil {
		s = new(structpb.Struct)
	}

	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	return nil
}
