package vehicle

import (
	"fmt"
	"strings"

	"github.com/thoas/go-funk"
	"github.com/willrr/ha-toyota-willrr/api"
)

// Ensure resolves a VIN against the account's vehicle list. An empty VIN
// resolves to the only vehicle on the account.
func Ensure(vin string, vehicles []api.Vehicle) (api.Vehicle, error) {
	if vin = strings.ToUpper(strings.TrimSpace(vin)); vin != "" {
		for _, v := range vehicles {
			if strings.ToUpper(v.VIN) == vin {
				return v, nil
			}
		}

		return api.Vehicle{}, fmt.Errorf("cannot find vehicle: %s", vin)
	}

	if len(vehicles) != 1 {
		return api.Vehicle{}, fmt.Errorf("cannot find vehicle: %v", vins(vehicles))
	}

	return vehicles[0], nil
}

// Filter returns the vehicles matching the configured VIN allowlist.
// An empty allowlist keeps all vehicles.
func Filter(vehicles []api.Vehicle, allow []string) []api.Vehicle {
	if len(allow) == 0 {
		return vehicles
	}

	upper := make([]string, 0, len(allow))
	for _, vin := range allow {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(vin)))
	}

	res := make([]api.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if funk.ContainsString(upper, strings.ToUpper(v.VIN)) {
			res = append(res, v)
		}
	}

	return res
}

func vins(vehicles []api.Vehicle) []string {
	res := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		res = append(res, v.VIN)
	}

	return res
}
