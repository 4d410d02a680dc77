package request

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/willrr/ha-toyota-willrr/util"
)

type roundTripper struct {
	log  *util.Logger
	base http.RoundTripper
}

var (
	reqMetric = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "toyota",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of upstream api requests",
		Objectives: map[float64]float64{
			0.5:  0.05,
			0.9:  0.01,
			0.99: 0.001,
		},
	}, []string{"host"})

	resMetric = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toyota",
		Subsystem: "http",
		Name:      "request_total",
		Help:      "Total count of upstream api requests",
	}, []string{"host", "status"})
)

func init() {
	prometheus.MustRegister(reqMetric, resMetric)
}

// NewTripper creates a logging and instrumenting roundtrip handler
func NewTripper(log *util.Logger, base http.RoundTripper) http.RoundTripper {
	return &roundTripper{
		log:  log,
		base: base,
	}
}

// RoundTrip executes the request via the base transport
func (r *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	r.log.TRACE.Printf("%s %s", req.Method, req.URL.String())

	startTime := time.Now()
	resp, err := r.base.RoundTrip(req)

	reqMetric.WithLabelValues(req.URL.Hostname()).Observe(time.Since(startTime).Seconds())

	if err == nil {
		resMetric.WithLabelValues(req.URL.Hostname(), strconv.Itoa(resp.StatusCode)).Inc()
	} else {
		resMetric.WithLabelValues(req.URL.Hostname(), "error").Inc()
	}

	return resp, err
}
