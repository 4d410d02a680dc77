package toyota

import (
	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/util/oauth"
)

type loginResponse struct {
	UUID  string         `json:"uuid"`
	Token oauth.Token `json:"token"`
}

type extendedCapabilities struct {
	TelemetryCapable             bool `json:"telemetryCapable"`
	FuelLevelAvailable           bool `json:"fuelLevelAvailable"`
	FuelRangeAvailable           bool `json:"fuelRangeAvailable"`
	EconnectVehicleStatusCapable bool `json:"econnectVehicleStatusCapable"`
}

type vehicle struct {
	VIN                  string                `json:"vin"`
	Alias                string                `json:"alias"`
	ModelName            string                `json:"modelName"`
	ExtendedCapabilities *extendedCapabilities `json:"extendedCapabilities"`
	Dashboard            *dashboard            `json:"dashboard"`
}

type dashboard struct {
	Odometer           *float64 `json:"odometer"`
	FuelLevel          *float64 `json:"fuelLevel"`
	FuelRange          *float64 `json:"fuelRange"`
	BatteryLevel       *float64 `json:"batteryLevel"`
	BatteryRange       *float64 `json:"batteryRange"`
	BatteryRangeWithAC *float64 `json:"batteryRangeWithAc"`
	Range              *float64 `json:"range"`
}

type summaryResponse struct {
	Summary *summary `json:"summary"`
}

type summary struct {
	Distance     float64 `json:"distance"`
	Duration     float64 `json:"duration"`
	FuelConsumed float64 `json:"fuelConsumed"`
	EVDistance   float64 `json:"evDistance"`
	AverageSpeed float64 `json:"averageSpeed"`
}

func (v vehicle) decode() api.Vehicle {
	res := api.Vehicle{
		VIN:   v.VIN,
		Alias: v.Alias,
		Model: v.ModelName,
	}

	if c := v.ExtendedCapabilities; c != nil {
		res.Capabilities = &api.Capabilities{
			Telemetry:      c.TelemetryCapable,
			FuelLevel:      c.FuelLevelAvailable,
			FuelRange:      c.FuelRangeAvailable,
			ElectricStatus: c.EconnectVehicleStatusCapable,
		}
	}

	if d := v.Dashboard; d != nil {
		res.Dashboard = &api.Dashboard{
			Odometer:       d.Odometer,
			FuelLevel:      d.FuelLevel,
			FuelRange:      d.FuelRange,
			BatteryLevel:   d.BatteryLevel,
			BatteryRange:   d.BatteryRange,
			BatteryRangeAC: d.BatteryRangeWithAC,
			Range:          d.Range,
		}
	}

	return res
}

func (s *summary) decode() *api.Summary {
	if s == nil {
		return nil
	}

	return &api.Summary{
		Distance:     s.Distance,
		Duration:     s.Duration,
		FuelConsumed: s.FuelConsumed,
		EVDistance:   s.EVDistance,
		AverageSpeed: s.AverageSpeed,
	}
}
