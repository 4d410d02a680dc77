package sensor

import (
	"fmt"
	"math"

	"github.com/willrr/ha-toyota-willrr/api"
)

// Device and state classes rendered with each sensor
const (
	DeviceClassEnum     = "enum"
	DeviceClassDistance = "distance"
	DeviceClassBattery  = "battery"

	StateClassMeasurement     = "measurement"
	StateClassTotalIncreasing = "total_increasing"
)

// Descriptor statically describes one sensor: its metadata, the pure value
// and attribute derivations over a vehicle snapshot, and the capability gate
// evaluated once at setup time. Value and Attributes are total over missing
// data objects and signal absence by returning nil.
type Descriptor struct {
	Key         string
	Icon        string
	DeviceClass string
	StateClass  string
	Diagnostic  bool
	Distance    bool // carries the configured distance unit
	Percentage  bool
	Value       func(api.VehicleSnapshot) interface{}
	Attributes  func(api.VehicleSnapshot) map[string]interface{}
	capable     func(api.Capabilities) bool
}

// descriptors is the candidate table in evaluation order. The statistics
// descriptors are included unconditionally- no capability flag is known to
// gate them upstream.
var descriptors = []Descriptor{
	{
		Key:         "vin",
		Icon:        "mdi:car-info",
		DeviceClass: DeviceClassEnum,
		Diagnostic:  true,
		Value: func(s api.VehicleSnapshot) interface{} {
			return s.Vehicle.VIN
		},
		Attributes: vinAttributes,
		capable:    always,
	},
	{
		Key:         "odometer",
		Icon:        "mdi:counter",
		DeviceClass: DeviceClassDistance,
		StateClass:  StateClassTotalIncreasing,
		Distance:    true,
		Value:       dashboardValue(func(d *api.Dashboard) *float64 { return d.Odometer }),
		capable:     func(c api.Capabilities) bool { return c.Telemetry },
	},
	{
		Key:        "fuel_level",
		Icon:       "mdi:gas-station",
		StateClass: StateClassMeasurement,
		Percentage: true,
		Value:      dashboardValue(func(d *api.Dashboard) *float64 { return d.FuelLevel }),
		capable:    func(c api.Capabilities) bool { return c.FuelLevel },
	},
	{
		Key:         "fuel_range",
		Icon:        "mdi:map-marker-distance",
		DeviceClass: DeviceClassDistance,
		StateClass:  StateClassMeasurement,
		Distance:    true,
		Value:       dashboardValue(func(d *api.Dashboard) *float64 { return d.FuelRange }),
		capable:     func(c api.Capabilities) bool { return c.FuelRange },
	},
	{
		Key:         "battery_level",
		Icon:        "mdi:car-electric",
		DeviceClass: DeviceClassBattery,
		StateClass:  StateClassMeasurement,
		Percentage:  true,
		Value:       dashboardValue(func(d *api.Dashboard) *float64 { return d.BatteryLevel }),
		capable:     func(c api.Capabilities) bool { return c.ElectricStatus },
	},
	{
		Key:         "battery_range",
		Icon:        "mdi:map-marker-distance",
		DeviceClass: DeviceClassDistance,
		StateClass:  StateClassMeasurement,
		Distance:    true,
		Value:       dashboardValue(func(d *api.Dashboard) *float64 { return d.BatteryRange }),
		capable:     func(c api.Capabilities) bool { return c.ElectricStatus },
	},
	{
		Key:         "battery_range_ac",
		Icon:        "mdi:map-marker-distance",
		DeviceClass: DeviceClassDistance,
		StateClass:  StateClassMeasurement,
		Distance:    true,
		Value:       dashboardValue(func(d *api.Dashboard) *float64 { return d.BatteryRangeAC }),
		capable:     func(c api.Capabilities) bool { return c.ElectricStatus },
	},
	{
		Key:         "total_range",
		Icon:        "mdi:map-marker-distance",
		DeviceClass: DeviceClassDistance,
		StateClass:  StateClassMeasurement,
		Distance:    true,
		Value:       dashboardValue(func(d *api.Dashboard) *float64 { return d.Range }),
		// combined range needs both the electric status and the fuel range feed
		capable: func(c api.Capabilities) bool { return c.ElectricStatus && c.FuelRange },
	},
	statisticsDescriptor(api.PeriodDay),
	statisticsDescriptor(api.PeriodWeek),
	statisticsDescriptor(api.PeriodMonth),
	statisticsDescriptor(api.PeriodYear),
}

func statisticsDescriptor(period api.Period) Descriptor {
	return Descriptor{
		Key:         fmt.Sprintf("current_%s_statistics", period),
		Icon:        "mdi:history",
		DeviceClass: DeviceClassDistance,
		StateClass:  StateClassMeasurement,
		Distance:    true,
		Value: func(s api.VehicleSnapshot) interface{} {
			sum := s.Statistics[period]
			if sum == nil || sum.Distance == 0 {
				return nil
			}
			return math.Round(sum.Distance*10) / 10
		},
		Attributes: func(s api.VehicleSnapshot) map[string]interface{} {
			sum := s.Statistics[period]
			if sum == nil {
				return nil
			}
			return map[string]interface{}{
				"distance":      sum.Distance,
				"duration":      sum.Duration,
				"fuel_consumed": sum.FuelConsumed,
				"ev_distance":   sum.EVDistance,
				"average_speed": sum.AverageSpeed,
			}
		},
		capable: always,
	}
}

func always(api.Capabilities) bool {
	return true
}

// dashboardValue lifts a dashboard field accessor into a value function that
// tolerates a missing dashboard. Values are rounded to display precision.
func dashboardValue(get func(*api.Dashboard) *float64) func(api.VehicleSnapshot) interface{} {
	return func(s api.VehicleSnapshot) interface{} {
		d := s.Vehicle.Dashboard
		if d == nil {
			return nil
		}

		if v := get(d); v != nil {
			return math.Round(*v)
		}

		return nil
	}
}

func vinAttributes(s api.VehicleSnapshot) map[string]interface{} {
	res := map[string]interface{}{
		"alias": s.Vehicle.Alias,
		"model": s.Vehicle.Model,
	}

	if c := s.Vehicle.Capabilities; c != nil {
		res["telemetry"] = c.Telemetry
		res["fuel_level"] = c.FuelLevel
		res["fuel_range"] = c.FuelRange
		res["electric_status"] = c.ElectricStatus
	}

	return res
}
