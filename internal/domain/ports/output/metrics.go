package ports

import "time"

// MetricsProvider records service counters. Implementations must be safe for concurrent use.
type MetricsProvider interface {
	// gRPC surface; status is the gRPC code name.
	IncrementGRPCRequests(method, status string)
	RecordGRPCRequestDuration(method, status string, duration time.Duration)
	IncrementRateLimited(method string)

	// Record store and SQL repositories.
	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementPostOperations(operation string, success bool)
	IncrementAccountOperations(operation string, success bool)

	SetServiceHealth(healthy bool)
}
