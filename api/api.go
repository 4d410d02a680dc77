package api

import "context"

// Period identifies a driving statistics aggregation window
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods lists all statistics periods fetched per refresh cycle
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// Capabilities are the per-vehicle feature flags. Absent flags read as false.
type Capabilities struct {
	Telemetry      bool `json:"telemetryCapable"`
	FuelLevel      bool `json:"fuelLevelAvailable"`
	FuelRange      bool `json:"fuelRangeAvailable"`
	ElectricStatus bool `json:"econnectVehicleStatusCapable"`
}

// Dashboard is the mutable vehicle status payload. All fields are optional-
// the upstream omits values the vehicle does not report.
type Dashboard struct {
	Odometer       *float64 `json:"odometer,omitempty"`
	FuelLevel      *float64 `json:"fuelLevel,omitempty"`
	FuelRange      *float64 `json:"fuelRange,omitempty"`
	BatteryLevel   *float64 `json:"batteryLevel,omitempty"`
	BatteryRange   *float64 `json:"batteryRange,omitempty"`
	BatteryRangeAC *float64 `json:"batteryRangeWithAc,omitempty"`
	Range          *float64 `json:"range,omitempty"`
}

// Vehicle is one vehicle's metadata and current status
type Vehicle struct {
	VIN          string        `json:"vin"`
	Alias        string        `json:"alias,omitempty"`
	Model        string        `json:"model,omitempty"`
	Capabilities *Capabilities `json:"capabilities,omitempty"`
	Dashboard    *Dashboard    `json:"dashboard,omitempty"`
}

// Summary aggregates trips over one statistics period
type Summary struct {
	Distance     float64 `json:"distance"`
	Duration     float64 `json:"duration,omitempty"`
	FuelConsumed float64 `json:"fuelConsumed,omitempty"`
	EVDistance   float64 `json:"evDistance,omitempty"`
	AverageSpeed float64 `json:"averageSpeed,omitempty"`
}

// Statistics maps period to summary. Missing entries mean the summary was
// not available this cycle, which is valid.
type Statistics map[Period]*Summary

// VehicleSnapshot is one vehicle's status plus its statistics bundle.
// Immutable once constructed; replaced wholesale each refresh cycle.
type VehicleSnapshot struct {
	Vehicle    Vehicle    `json:"vehicle"`
	Statistics Statistics `json:"statistics,omitempty"`
}

// CycleResult is the ordered outcome of one polling cycle, one snapshot per
// vehicle returned by the upstream listing call
type CycleResult []VehicleSnapshot

// Vehicle returns the snapshot for the given VIN
func (r CycleResult) Vehicle(vin string) (VehicleSnapshot, bool) {
	for _, snap := range r {
		if snap.Vehicle.VIN == vin {
			return snap, true
		}
	}
	return VehicleSnapshot{}, false
}

// Client is the connected services api surface used by the coordinator
type Client interface {
	Login(ctx context.Context) error
	Vehicles(ctx context.Context) ([]Vehicle, error)
	Status(ctx context.Context, vin string) (Vehicle, error)
	Summary(ctx context.Context, vin string, period Period) (*Summary, error)
}
