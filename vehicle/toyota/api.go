package toyota

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/util"
	"github.com/willrr/ha-toyota-willrr/util/request"
	"golang.org/x/oauth2"
)

var (
	// AuthURI is the connected services login endpoint
	AuthURI = "https://ssoms.toyota-europe.com/authenticate"

	// ApiURI is the connected services data aggregation endpoint
	ApiURI = "https://myt-agg.toyota-europe.com/cma/api"
)

// API is the Toyota connected services client
type API struct {
	*request.Helper
	identity *Identity
	metric   bool
}

var _ api.Client = (*API)(nil)

// NewAPI creates the connected services api client. The metric flag selects
// the unit system for all distance values returned by the upstream.
func NewAPI(log *util.Logger, identity *Identity, metric bool) *API {
	v := &API{
		Helper:   request.NewHelper(log),
		identity: identity,
		metric:   metric,
	}

	// replace client transport with authenticated transport
	v.Client.Transport = &oauth2.Transport{
		Source: identity,
		Base:   v.Client.Transport,
	}

	// the refresh cycle budget is enforced through the request context
	v.Client.Timeout = 0

	return v
}

// Login implements api.Client
func (v *API) Login(ctx context.Context) error {
	return v.identity.Login(ctx)
}

// Vehicles lists the account's vehicles including capability metadata
func (v *API) Vehicles(ctx context.Context) ([]api.Vehicle, error) {
	var res []vehicle

	uri := fmt.Sprintf("%s/user/%s/vehicles?services=uio&metric=%t", ApiURI, v.identity.UUID(), v.metric)
	if err := v.getJSON(ctx, uri, &res); err != nil {
		return nil, err
	}

	vehicles := make([]api.Vehicle, 0, len(res))
	for _, veh := range res {
		vehicles = append(vehicles, veh.decode())
	}

	return vehicles, nil
}

// Status retrieves the vehicle's current status payload
func (v *API) Status(ctx context.Context, vin string) (api.Vehicle, error) {
	var res vehicle

	uri := fmt.Sprintf("%s/vehicles/%s/status?metric=%t", ApiURI, vin, v.metric)
	if err := v.getJSON(ctx, uri, &res); err != nil {
		return api.Vehicle{}, err
	}

	return res.decode(), nil
}

// Summary retrieves the driving statistics summary for the given period.
// A summary the upstream has no data for is returned as nil, not as error.
func (v *API) Summary(ctx context.Context, vin string, period api.Period) (*api.Summary, error) {
	var res summaryResponse

	uri := fmt.Sprintf("%s/vehicles/%s/statistics?period=%s&metric=%t", ApiURI, vin, period, v.metric)
	if err := v.getJSON(ctx, uri, &res); err != nil {
		var se request.StatusError
		if errors.As(err, &se) && se.HasStatus(http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return res.Summary.decode(), nil
}

func (v *API) getJSON(ctx context.Context, uri string, res interface{}) error {
	req, err := request.New(http.MethodGet, uri, nil, request.AcceptJSON, map[string]string{
		"UUID": v.identity.UUID(),
	})
	if err != nil {
		return err
	}

	return classify(v.DoJSON(req.WithContext(ctx), res))
}
