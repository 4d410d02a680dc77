package sensor

import "github.com/willrr/ha-toyota-willrr/api"

// Unit labels, fixed once at setup time from the metric configuration flag
const (
	UnitKilometers = "km"
	UnitMiles      = "mi"
	UnitPercent    = "%"
)

// Sensor is an instantiated descriptor bound to one vehicle. The value is
// always derived from the live snapshot passed to the descriptor functions,
// not from the snapshot that decided inclusion.
type Sensor struct {
	Descriptor
	VIN  string
	Unit string
}

// Project derives the sensor set for one vehicle from its capability flags.
// Absent capability metadata reads as all flags false. The result is decided
// once at setup time and not re-evaluated on later cycles.
func Project(snap api.VehicleSnapshot, metric bool) []Sensor {
	var caps api.Capabilities
	if snap.Vehicle.Capabilities != nil {
		caps = *snap.Vehicle.Capabilities
	}

	distanceUnit := UnitMiles
	if metric {
		distanceUnit = UnitKilometers
	}

	res := make([]Sensor, 0, len(descriptors))
	for _, desc := range descriptors {
		if !desc.capable(caps) {
			continue
		}

		var unit string
		switch {
		case desc.Distance:
			unit = distanceUnit
		case desc.Percentage:
			unit = UnitPercent
		}

		res = append(res, Sensor{
			Descriptor: desc,
			VIN:        snap.Vehicle.VIN,
			Unit:       unit,
		})
	}

	return res
}

// ProjectAll derives the sensor sets for all vehicles of a cycle result
func ProjectAll(cycle api.CycleResult, metric bool) []Sensor {
	var res []Sensor
	for _, snap := range cycle {
		res = append(res, Project(snap, metric)...)
	}

	return res
}
