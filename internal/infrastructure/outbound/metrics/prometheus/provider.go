package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ports "notes-blog-service/internal/domain/ports/output"
)

type PrometheusMetricsProvider struct {
	c *collectors
}

// NewPrometheusMetricsProvider reports to the default registry served on /metrics.
func NewPrometheusMetricsProvider() ports.MetricsProvider {
	return &PrometheusMetricsProvider{c: defaultCollectors()}
}

// NewRegistryMetricsProvider reports to reg instead of the default registry.
func NewRegistryMetricsProvider(reg prometheus.Registerer) *PrometheusMetricsProvider {
	return &PrometheusMetricsProvider{c: newCollectors(reg)}
}

func (p *PrometheusMetricsProvider) IncrementGRPCRequests(method, status string) {
	p.c.grpcRequests.WithLabelValues(method, status).Inc()
}

func (p *PrometheusMetricsProvider) RecordGRPCRequestDuration(method, status string, duration time.Duration) {
	p.c.grpcDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementRateLimited(method string) {
	p.c.grpcRateLimited.WithLabelValues(method).Inc()
}

func (p *PrometheusMetricsProvider) IncrementDatabaseQueries(queryType string, success bool) {
	p.c.storeQueries.WithLabelValues(queryType, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) RecordDatabaseQueryDuration(queryType string, duration time.Duration) {
	p.c.storeDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementCacheHits() {
	p.c.cacheHits.Inc()
}

func (p *PrometheusMetricsProvider) IncrementCacheMisses() {
	p.c.cacheMisses.Inc()
}

func (p *PrometheusMetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {
	p.c.cacheDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementPostOperations(operation string, success bool) {
	p.c.postOperations.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) IncrementAccountOperations(operation string, success bool) {
	p.c.accountOperations.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) SetServiceHealth(healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	p.c.health.Set(v)
}
