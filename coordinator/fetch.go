package coordinator

import (
	"context"

	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/vehicle"
	"golang.org/x/sync/errgroup"
)

// fetch lists the account's vehicles and assembles one cycle result.
// Vehicles are processed sequentially; the four statistics requests of one
// vehicle run concurrently and succeed or fail as a unit.
func (c *Coordinator) fetch(ctx context.Context) (api.CycleResult, error) {
	vehicles, err := c.client.Vehicles(ctx)
	if err != nil {
		return nil, err
	}

	vehicles = vehicle.Filter(vehicles, c.conf.Vehicles)

	// an empty vehicle list is a valid, empty cycle
	res := make(api.CycleResult, 0, len(vehicles))

	for _, veh := range vehicles {
		status, err := c.client.Status(ctx, veh.VIN)
		if err != nil {
			return nil, err
		}

		// refresh the mutable status, keep the listing metadata
		veh.Dashboard = status.Dashboard

		snap := api.VehicleSnapshot{Vehicle: veh}

		if veh.VIN != "" {
			summaries := make([]*api.Summary, len(api.Periods))

			g, gctx := errgroup.WithContext(ctx)
			for i, period := range api.Periods {
				i, period := i, period
				g.Go(func() error {
					sum, err := c.client.Summary(gctx, veh.VIN, period)
					summaries[i] = sum
					return err
				})
			}

			if err := g.Wait(); err != nil {
				return nil, err
			}

			snap.Statistics = make(api.Statistics, len(api.Periods))
			for i, period := range api.Periods {
				if summaries[i] != nil {
					snap.Statistics[period] = summaries[i]
				}
			}
		}

		res = append(res, snap)
	}

	return res, nil
}
