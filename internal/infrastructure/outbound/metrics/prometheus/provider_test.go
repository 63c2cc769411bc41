package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetricsProvider_Counters(t *testing.T) {
	p := NewRegistryMetricsProvider(prometheus.NewRegistry())

	p.IncrementPostOperations("create", true)
	p.IncrementPostOperations("create", true)
	p.IncrementPostOperations("delete", false)
	assert.Equal(t, float64(2), testutil.ToFloat64(p.c.postOperations.WithLabelValues("create", "true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.c.postOperations.WithLabelValues("delete", "false")))

	p.IncrementAccountOperations("login", false)
	assert.Equal(t, float64(1), testutil.ToFloat64(p.c.accountOperations.WithLabelValues("login", "false")))

	p.IncrementCacheHits()
	p.IncrementCacheMisses()
	p.IncrementCacheMisses()
	assert.Equal(t, float64(1), testutil.ToFloat64(p.c.cacheHits))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.c.cacheMisses))

	p.SetServiceHealth(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(p.c.health))
	p.SetServiceHealth(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(p.c.health))
}

func TestPrometheusMetricsProvider_Names(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewRegistryMetricsProvider(reg)

	p.IncrementGRPCRequests("/notes.v1.NotesService/GetPost", "OK")
	p.RecordGRPCRequestDuration("/notes.v1.NotesService/GetPost", "OK", time.Millisecond)
	p.IncrementRateLimited("/notes.v1.NotesService/GetPost")
	p.IncrementDatabaseQueries("store_load", true)
	p.RecordDatabaseQueryDuration("store_load", 5*time.Millisecond)
	p.RecordCacheOperationDuration("get_post", time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Subset(t, names, []string{
		"notes_grpc_requests_total",
		"notes_grpc_request_duration_seconds",
		"notes_grpc_rate_limited_total",
		"notes_store_queries_total",
		"notes_store_query_duration_seconds",
		"notes_cache_operation_duration_seconds",
	})
}

func TestNewPrometheusMetricsProvider_SharesDefaultCollectors(t *testing.T) {
	a := NewPrometheusMetricsProvider().(*PrometheusMetricsProvider)
	b := NewPrometheusMetricsProvider().(*PrometheusMetricsProvider)
	assert.Same(t, a.c, b.c)
}
