package observability

import (
	"skill-swap/internal/domain/swap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_http_request_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_http_rate_limited_total",
		Help: "Total number of requests rejected by the per-IP rate limiter.",
	})

	SwapsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_swaps_created_total",
		Help: "Total number of swap requests created.",
	})

	SwapTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of swap status changes by previous and new status.",
	}, []string{"from", "to"})
)

// SwapRecorder feeds the swap lifecycle counters.
type SwapRecorder struct{}

func (SwapRecorder) SwapCreated() {
	SwapsCreatedTotal.Inc()
}

func (SwapRecorder) SwapStatusChanged(from, to swap.Status) {
	SwapTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}
