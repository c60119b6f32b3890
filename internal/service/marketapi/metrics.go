package marketapi

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketdash",
			Subsystem: "market_api",
			Name:      "latency_seconds",
			Help:      "Latency of market API calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	upstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketdash",
			Subsystem: "market_api",
			Name:      "errors_total",
			Help:      "Failed market API calls by endpoint and kind",
		},
		[]string{"endpoint", "kind"},
	)
)

func register() {
	once.Do(func() {
		prometheus.MustRegister(upstreamLatency, upstreamErrors)
	})
}
