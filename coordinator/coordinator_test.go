package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/sensor"
	"github.com/willrr/ha-toyota-willrr/util"
)

type fakeClient struct {
	loginErr    error
	vehiclesErr error
	statusErr   error
	summaryErr  map[api.Period]error
	vehicles    []api.Vehicle
	block       bool // never answer until the context expires
	odometer    float64
	distance    float64
}

func (f *fakeClient) Login(ctx context.Context) error {
	return f.loginErr
}

func (f *fakeClient) Vehicles(ctx context.Context) ([]api.Vehicle, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.vehiclesErr != nil {
		return nil, f.vehiclesErr
	}
	return f.vehicles, nil
}

func (f *fakeClient) Status(ctx context.Context, vin string) (api.Vehicle, error) {
	if f.statusErr != nil {
		return api.Vehicle{}, f.statusErr
	}
	odo := f.odometer
	return api.Vehicle{VIN: vin, Dashboard: &api.Dashboard{Odometer: &odo}}, nil
}

func (f *fakeClient) Summary(ctx context.Context, vin string, period api.Period) (*api.Summary, error) {
	if err := f.summaryErr[period]; err != nil {
		return nil, err
	}
	return &api.Summary{Distance: f.distance}, nil
}

func testVehicle() api.Vehicle {
	return api.Vehicle{
		VIN:          "JT123456789012345",
		Alias:        "test",
		Capabilities: &api.Capabilities{Telemetry: true},
	}
}

func testCoordinator(client api.Client) *Coordinator {
	return New(util.NewLogger("test"), client, Config{Timeout: time.Second})
}

func TestRefreshSuccess(t *testing.T) {
	client := &fakeClient{
		vehicles: []api.Vehicle{testVehicle()},
		odometer: 1234,
		distance: 56.78,
	}
	c := testCoordinator(client)

	require.NoError(t, c.Refresh(context.Background()))
	require.True(t, c.LastSuccess())
	require.True(t, c.Healthy())

	data := c.Data()
	require.Len(t, data, 1)

	snap := data[0]
	assert.Equal(t, "JT123456789012345", snap.Vehicle.VIN)
	assert.Equal(t, "test", snap.Vehicle.Alias)

	require.NotNil(t, snap.Vehicle.Dashboard)
	require.NotNil(t, snap.Vehicle.Dashboard.Odometer)
	assert.Equal(t, 1234.0, *snap.Vehicle.Dashboard.Odometer)

	require.Len(t, snap.Statistics, 4)
	for _, period := range api.Periods {
		require.NotNil(t, snap.Statistics[period], string(period))
		assert.Equal(t, 56.78, snap.Statistics[period].Distance)
	}
}

func TestRefreshReplacesDataWholesale(t *testing.T) {
	client := &fakeClient{vehicles: []api.Vehicle{testVehicle()}, odometer: 1000}
	c := testCoordinator(client)

	require.NoError(t, c.Refresh(context.Background()))

	client.odometer = 2000
	require.NoError(t, c.Refresh(context.Background()))

	require.Len(t, c.Data(), 1)
	assert.Equal(t, 2000.0, *c.Data()[0].Vehicle.Dashboard.Odometer)
}

func TestRefreshEmptyVehicleList(t *testing.T) {
	c := testCoordinator(&fakeClient{})

	require.NoError(t, c.Refresh(context.Background()))
	require.True(t, c.LastSuccess())
	assert.Empty(t, c.Data())
}

func TestRefreshSilentErrors(t *testing.T) {
	for _, upstream := range []error{api.ErrAuthFail, api.ErrInternal, api.ErrValidation} {
		t.Run(upstream.Error(), func(t *testing.T) {
			client := &fakeClient{vehicles: []api.Vehicle{testVehicle()}, odometer: 1000}
			c := testCoordinator(client)

			require.NoError(t, c.Refresh(context.Background()))
			updated := c.Updated()

			client.vehiclesErr = upstream
			require.NoError(t, c.Refresh(context.Background()))

			// previous cycle result remains published unchanged
			require.Len(t, c.Data(), 1)
			assert.Equal(t, 1000.0, *c.Data()[0].Vehicle.Dashboard.Odometer)
			assert.Equal(t, updated, c.Updated())
			assert.True(t, c.LastSuccess())
			assert.NoError(t, c.LastError())
		})
	}
}

func TestRefreshRetryableErrors(t *testing.T) {
	tc := []struct {
		name     string
		upstream error
		reason   string
	}{
		{"general api error", errors.New("boom"), "boom"},
		{"connect timeout", api.ErrConnectTimeout, reasonUnreachable},
		{"read timeout", api.ErrReadTimeout, reasonTooSlow},
		{"cancelled", context.Canceled, reasonTooSlow},
		{"deadline", context.DeadlineExceeded, reasonTooSlow},
	}

	for _, tc := range tc {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{vehicles: []api.Vehicle{testVehicle()}, odometer: 1000}
			c := testCoordinator(client)

			require.NoError(t, c.Refresh(context.Background()))

			client.vehiclesErr = tc.upstream
			err := c.Refresh(context.Background())
			require.Error(t, err)
			assert.Equal(t, tc.reason, err.Error())

			// previous cycle result remains queryable
			require.Len(t, c.Data(), 1)
			assert.Equal(t, 1000.0, *c.Data()[0].Vehicle.Dashboard.Odometer)
			assert.False(t, c.LastSuccess())
			assert.EqualError(t, c.LastError(), tc.reason)
		})
	}
}

func TestRefreshTimeout(t *testing.T) {
	client := &fakeClient{block: true}
	c := New(util.NewLogger("test"), client, Config{Timeout: 50 * time.Millisecond})

	start := time.Now()
	err := c.Refresh(context.Background())

	require.Error(t, err)
	assert.Equal(t, reasonTooSlow, err.Error())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRefreshSummaryAllOrNothing(t *testing.T) {
	client := &fakeClient{vehicles: []api.Vehicle{testVehicle()}, odometer: 1000}
	c := testCoordinator(client)

	require.NoError(t, c.Refresh(context.Background()))

	client.odometer = 2000
	client.summaryErr = map[api.Period]error{api.PeriodWeek: errors.New("boom")}

	require.Error(t, c.Refresh(context.Background()))

	// no partially populated snapshot was published
	require.Len(t, c.Data(), 1)
	assert.Equal(t, 1000.0, *c.Data()[0].Vehicle.Dashboard.Odometer)
}

func TestRefreshSkipsStatisticsWithoutVIN(t *testing.T) {
	client := &fakeClient{vehicles: []api.Vehicle{{Alias: "unregistered"}}}
	c := testCoordinator(client)

	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, c.Data(), 1)
	assert.Nil(t, c.Data()[0].Statistics)
}

func TestRefreshVehicleAllowlist(t *testing.T) {
	client := &fakeClient{vehicles: []api.Vehicle{
		testVehicle(),
		{VIN: "JT999999999999999"},
	}}

	c := New(util.NewLogger("test"), client, Config{
		Timeout:  time.Second,
		Vehicles: []string{"jt123456789012345"},
	})

	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, c.Data(), 1)
	assert.Equal(t, "JT123456789012345", c.Data()[0].Vehicle.VIN)
}

func TestSetupLoginFailures(t *testing.T) {
	c := testCoordinator(&fakeClient{loginErr: api.ErrAuthFail})
	err := c.Setup(context.Background())
	require.ErrorIs(t, err, ErrAuthRequired)

	c = testCoordinator(&fakeClient{loginErr: api.ErrConnectTimeout})
	err = c.Setup(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
}

func TestSetupWithoutInitialData(t *testing.T) {
	// silent-tier failure on the eager cycle leaves setup without data
	c := testCoordinator(&fakeClient{vehiclesErr: api.ErrInternal})
	err := c.Setup(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
}

func TestPreparePublishesInitialData(t *testing.T) {
	client := &fakeClient{vehicles: []api.Vehicle{testVehicle()}, odometer: 1000, distance: 12.34}
	c := testCoordinator(client)

	require.NoError(t, c.Setup(context.Background()))

	sensors := sensor.ProjectAll(c.Data(), true)
	valueChan := make(chan util.Param, 32)
	c.Prepare(sensors, valueChan)
	close(valueChan)

	params := make(map[string]interface{})
	for p := range valueChan {
		params[p.UniqueID()] = p.Val
	}

	assert.Equal(t, "JT123456789012345", params["JT123456789012345.vin"])
	assert.Equal(t, 1000.0, params["JT123456789012345.odometer"])
	assert.Equal(t, 12.3, params["JT123456789012345.current_day_statistics"])
	assert.Equal(t, 1, params["vehicles"])
	assert.Equal(t, "", params["error"])
}

func TestRun(t *testing.T) {
	client := &fakeClient{vehicles: []api.Vehicle{testVehicle()}}
	c := testCoordinator(client)

	mock := clock.NewMock()
	c.clock = mock

	stopC := make(chan struct{})
	exitC := make(chan struct{})

	go func() {
		c.Run(stopC, time.Minute)
		close(exitC)
	}()

	// let the ticker start before advancing the clock
	time.Sleep(10 * time.Millisecond)
	mock.Add(time.Minute)

	require.Eventually(t, func() bool {
		return len(c.Data()) == 1
	}, time.Second, 10*time.Millisecond)

	close(stopC)
	<-exitC
}
