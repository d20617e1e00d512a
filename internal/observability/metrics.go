package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codenest_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedRequests counts feed requests by tab.
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codenest_feed_requests_total",
		Help: "Total number of feed requests by tab",
	}, []string{"tab"})

	// EngagementToggles counts engagement toggles by kind and resulting state.
	EngagementToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codenest_engagement_toggles_total",
		Help: "Total number of engagement toggles by kind and new state",
	}, []string{"kind", "state"})

	// PostMutations counts post create/update/delete operations.
	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codenest_post_mutations_total",
		Help: "Total number of post mutations by operation",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codenest_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)
