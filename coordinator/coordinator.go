package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/sensor"
	"github.com/willrr/ha-toyota-willrr/util"
)

const (
	// DefaultInterval is the fixed delay between refresh cycles
	DefaultInterval = 360 * time.Second

	// DefaultTimeout bounds one complete refresh cycle
	DefaultTimeout = 15 * time.Second
)

// Setup failure kinds. Both abort the integration load; ErrAuthRequired
// needs renewed credentials while ErrNotReady should simply be retried.
var (
	ErrAuthRequired = errors.New("re-authentication required")
	ErrNotReady     = errors.New("not ready")
)

// fixed reasons for retryable refresh failures
const (
	reasonUnreachable = "unable to connect to connected services"
	reasonTooSlow     = "update canceled: api too slow to respond, will try again later"
)

// Store persists statistics of successful cycles
type Store interface {
	Persist(cycle api.CycleResult) error
}

// Config holds the coordinator settings
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
	Vehicles []string // optional VIN allowlist
}

// Coordinator drives the fixed-interval refresh cycle against the connected
// services api and owns the last good cycle result. The result is replaced
// wholesale on success and retained unchanged on any failed cycle.
type Coordinator struct {
	log    *util.Logger
	clock  clock.Clock
	client api.Client
	conf   Config

	store     Store
	sensors   []sensor.Sensor
	valueChan chan<- util.Param

	mu          sync.RWMutex
	data        api.CycleResult
	updated     time.Time
	lastSuccess bool
	lastError   error
}

// New creates a coordinator for the given client
func New(log *util.Logger, client api.Client, conf Config) *Coordinator {
	if conf.Interval == 0 {
		conf.Interval = DefaultInterval
	}
	if conf.Timeout == 0 {
		conf.Timeout = DefaultTimeout
	}

	return &Coordinator{
		log:    log,
		clock:  clock.New(),
		client: client,
		conf:   conf,
	}
}

// WithStore attaches a statistics store
func (c *Coordinator) WithStore(store Store) *Coordinator {
	c.store = store
	return c
}

// Prepare attaches the projected sensor set and the publishing pipeline.
// Call before Run. Data from the eager setup cycle is published immediately.
func (c *Coordinator) Prepare(sensors []sensor.Sensor, valueChan chan<- util.Param) {
	c.sensors = sensors
	c.valueChan = valueChan

	if !c.Updated().IsZero() {
		c.publish()
	}
}

// Setup performs the credential login and the eager first refresh
func (c *Coordinator) Setup(ctx context.Context) error {
	if err := c.client.Login(ctx); err != nil {
		if errors.Is(err, api.ErrAuthFail) {
			return fmt.Errorf("%w: %v", ErrAuthRequired, err)
		}
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	if err := c.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	// a silent-tier failure on the first cycle leaves us without data
	if !c.LastSuccess() {
		return fmt.Errorf("%w: no initial data", ErrNotReady)
	}

	return nil
}

// Run executes refresh cycles until the stop channel closes. A cycle always
// runs to completion before the next tick is considered.
func (c *Coordinator) Run(stopC chan struct{}, interval time.Duration) {
	ticker := c.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.Refresh(context.Background())
		case <-stopC:
			return
		}
	}
}

// Refresh runs one polling cycle bounded by the configured timeout. Silent
// upstream failures yield nil and leave the published data untouched;
// retryable failures return an error with a human-readable reason while the
// previous data remains queryable.
func (c *Coordinator) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.conf.Timeout)
	defer cancel()

	start := c.clock.Now()
	cycle, err := c.fetch(ctx)
	refreshDuration.Observe(c.clock.Since(start).Seconds())

	return c.apply(cycle, err)
}

func (c *Coordinator) apply(cycle api.CycleResult, err error) error {
	switch {
	case err == nil:
		c.mu.Lock()
		c.data = cycle
		c.updated = c.clock.Now()
		c.lastSuccess = true
		c.lastError = nil
		c.mu.Unlock()

		refreshMetric.WithLabelValues("success").Inc()
		vehicleGauge.Set(float64(len(cycle)))
		c.log.DEBUG.Printf("refreshed %d vehicles: %+v", len(cycle), cycle)

		if c.store != nil {
			if err := c.store.Persist(cycle); err != nil {
				c.log.ERROR.Printf("persist statistics: %v", err)
			}
		}

		c.publish()

		return nil

	// silent tier- logged only, previous data stays published
	case errors.Is(err, api.ErrAuthFail),
		errors.Is(err, api.ErrInternal),
		errors.Is(err, api.ErrValidation):

		refreshMetric.WithLabelValues("silent").Inc()
		c.log.ERROR.Println(err)

		return nil

	// retryable tier- failure signalled, previous data stays published
	default:
		reason := err.Error()
		switch {
		case errors.Is(err, api.ErrConnectTimeout):
			reason = reasonUnreachable
		case errors.Is(err, api.ErrReadTimeout),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			reason = reasonTooSlow
		}

		failure := errors.New(reason)

		c.mu.Lock()
		c.lastSuccess = false
		c.lastError = failure
		c.mu.Unlock()

		refreshMetric.WithLabelValues("failure").Inc()
		c.log.ERROR.Printf("refresh failed: %v", err)

		if c.valueChan != nil {
			c.valueChan <- util.Param{Key: "error", Val: reason}
		}

		return failure
	}
}

// publish pushes the current value of every prepared sensor into the value
// channel, derived from the live cycle result
func (c *Coordinator) publish() {
	if c.valueChan == nil {
		return
	}

	data := c.Data()
	for _, s := range c.sensors {
		snap, ok := data.Vehicle(s.VIN)
		if !ok {
			continue
		}

		c.valueChan <- util.Param{Vehicle: s.VIN, Key: s.Key, Val: s.Value(snap)}
	}

	c.valueChan <- util.Param{Key: "updated", Val: c.Updated()}
	c.valueChan <- util.Param{Key: "vehicles", Val: len(data)}
	c.valueChan <- util.Param{Key: "error", Val: ""}
}

// Data returns the last good cycle result
func (c *Coordinator) Data() api.CycleResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// Updated returns the time of the last successful cycle
func (c *Coordinator) Updated() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updated
}

// LastSuccess indicates whether the most recent state change was a success
func (c *Coordinator) LastSuccess() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSuccess
}

// LastError returns the failure reason of the last retryable failure
func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Healthy indicates that data is available and the last cycle did not fail
func (c *Coordinator) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.updated.IsZero() && c.lastSuccess
}
