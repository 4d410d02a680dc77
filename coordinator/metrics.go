package coordinator

import "github.com/prometheus/client_golang/prometheus"

var (
	refreshMetric = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toyota",
		Subsystem: "refresh",
		Name:      "cycles_total",
		Help:      "Refresh cycles by outcome",
	}, []string{"outcome"})

	refreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "toyota",
		Subsystem: "refresh",
		Name:      "duration_seconds",
		Help:      "Duration of refresh cycles",
	})

	vehicleGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "toyota",
		Subsystem: "refresh",
		Name:      "vehicles",
		Help:      "Vehicles in the last successful cycle",
	})
)

func init() {
	prometheus.MustRegister(refreshMetric, refreshDuration, vehicleGauge)
}
