package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

type collectors struct {
	grpcRequests    *prometheus.CounterVec
	grpcDuration    *prometheus.HistogramVec
	grpcRateLimited *prometheus.CounterVec

	storeQueries  *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec

	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cacheDuration *prometheus.HistogramVec

	postOperations    *prometheus.CounterVec
	accountOperations *prometheus.CounterVec

	health prometheus.Gauge
}

var (
	defaultOnce sync.Once
	defaultSet  *collectors
)

// defaultCollectors registers the service collectors with the global registry exactly once.
func defaultCollectors() *collectors {
	defaultOnce.Do(func() {
		defaultSet = newCollectors(prometheus.DefaultRegisterer)
	})
	return defaultSet
}

func newCollectors(reg prometheus.Registerer) *collectors {
	f := promauto.With(reg)
	return &collectors{
		grpcRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "grpc", Name: "requests_total",
			Help: "gRPC requests handled, by method and status code",
		}, []string{"method", "status"}),
		grpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "grpc", Name: "request_duration_seconds",
			Help:    "gRPC handler latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
		grpcRateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "grpc", Name: "rate_limited_total",
			Help: "gRPC requests rejected by the per-caller limiter",
		}, []string{"method"}),

		storeQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "store", Name: "queries_total",
			Help: "Record store and repository calls",
		}, []string{"query_type", "success"}),
		storeDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "store", Name: "query_duration_seconds",
			Help:    "Record store and repository latency",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"query_type"}),

		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "hits_total",
			Help: "Post cache hits",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "misses_total",
			Help: "Post cache misses",
		}),
		cacheDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "cache", Name: "operation_duration_seconds",
			Help:    "Post cache call latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"operation"}),

		postOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "post_operations_total",
			Help: "Post Manager operations, by kind and outcome",
		}, []string{"operation", "success"}),
		accountOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "account_operations_total",
			Help: "Registration and login attempts, by outcome",
		}, []string{"operation", "success"}),

		health: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "service_health",
			Help: "1 while the service is serving, 0 otherwise",
		}),
	}
}
