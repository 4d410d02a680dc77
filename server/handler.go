package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/willrr/ha-toyota-willrr/coordinator"
	"github.com/willrr/ha-toyota-willrr/sensor"
	"github.com/willrr/ha-toyota-willrr/util"
)

func jsonHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		h.ServeHTTP(w, r)
	})
}

func jsonWrite(w http.ResponseWriter, content interface{}) {
	if err := json.NewEncoder(w).Encode(content); err != nil {
		log.ERROR.Printf("httpd: failed to encode JSON: %v", err)
	}
}

// healthHandler reports the coordinator state. Without data or after a
// failed cycle the service is unavailable.
func healthHandler(coord *coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := struct {
			Healthy bool      `json:"healthy"`
			Updated time.Time `json:"updated,omitempty"`
			Error   string    `json:"error,omitempty"`
		}{
			Healthy: coord.Healthy(),
			Updated: coord.Updated(),
		}

		if err := coord.LastError(); err != nil {
			res.Error = err.Error()
		}

		if !res.Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		jsonWrite(w, res)
	}
}

// stateHandler returns the cached param values
func stateHandler(cache *util.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonWrite(w, cache.State())
	}
}

// vehiclesHandler lists the vehicles of the last good cycle
func vehiclesHandler(coord *coordinator.Coordinator) http.HandlerFunc {
	type vehicle struct {
		VIN   string `json:"vin"`
		Alias string `json:"alias,omitempty"`
		Model string `json:"model,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := coord.Data()

		res := make([]vehicle, 0, len(data))
		for _, snap := range data {
			res = append(res, vehicle{
				VIN:   snap.Vehicle.VIN,
				Alias: snap.Vehicle.Alias,
				Model: snap.Vehicle.Model,
			})
		}

		jsonWrite(w, res)
	}
}

// sensorsHandler evaluates a vehicle's sensors against the live cycle
// result on every request
func sensorsHandler(coord *coordinator.Coordinator, sensors []sensor.Sensor) http.HandlerFunc {
	type state struct {
		Key        string                 `json:"key"`
		Value      interface{}            `json:"value"`
		Unit       string                 `json:"unit,omitempty"`
		Attributes map[string]interface{} `json:"attributes,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		vin := mux.Vars(r)["vin"]

		snap, ok := coord.Data().Vehicle(vin)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			jsonWrite(w, map[string]string{"error": "unknown vehicle"})
			return
		}

		var res []state
		for _, s := range sensors {
			if s.VIN != vin {
				continue
			}

			st := state{
				Key:   s.Key,
				Value: s.Value(snap),
				Unit:  s.Unit,
			}
			if s.Attributes != nil {
				st.Attributes = s.Attributes(snap)
			}

			res = append(res, st)
		}

		jsonWrite(w, res)
	}
}
