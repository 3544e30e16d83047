package detect

import (
	"errors"
	"fmt"

	"github.com/oshokin/elevator-ids/internal/domain/elevator"
)

// Sensor selects the continuous channel the detector watches.
type Sensor string

// Supported sensors.
const (
	SensorTemp   Sensor = "temp"
	SensorWeight Sensor = "weight"
)

// ErrUnknownSensor is returned by ParseSensor for unsupported channels.
var ErrUnknownSensor = errors.New("unknown sensor")

// ParseSensor validates s. An empty string selects the temperature channel.
func ParseSensor(s string) (Sensor, error) {
	switch Sensor(s) {
	case "", SensorTemp:
		return SensorTemp, nil
	case SensorWeight:
		return SensorWeight, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSensor, s)
	}
}

// Observed extracts the sensor values from a reading trail.
func (s Sensor) Observed(readings []elevator.Reading) []float64 {
	values := make([]float64, len(readings))

	for i, r := range readings {
		if s == SensorWeight {
			values[i] = r.Weight
		} else {
			values[i] = r.Temp
		}
	}

	return values
}
