package metrics

import "github.com/prometheus/client_golang/prometheus"

// Glossary and search metrics.
var (
	GlossaryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "glossary_cache_total",
			Help:      "Glossary snapshot cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	LinkSegmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_segments_total",
			Help:      "Segments produced by the glossary linker",
		},
		[]string{"kind"}, // "text" / "link"
	)

	LinkRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_requests_total",
			Help:      "Glossary link operations by outcome",
		},
		[]string{"status"}, // "ok" / "unavailable"
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_candidates",
			Help:      "Galls evaluated per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_matches",
			Help:      "Galls matched per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
	)
)

var domainMetricsRegistered bool

// RegisterDomainMetrics registers the glossary and search metrics. Must be called once from main.
func RegisterDomainMetrics() {
	if domainMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		GlossaryCacheTotal,
		LinkSegmentsTotal,
		LinkRequestsTotal,
		SearchCandidates,
		SearchMatches,
		RateLimitedTotal,
	)
	domainMetricsRegistered = true
}
