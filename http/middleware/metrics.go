package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestMetrics observes every request served,
// registering these collectors with reg:
//
//   - trailhead_http_requests_total, a counter labeled by route, method and code
//   - trailhead_http_request_duration_seconds, a histogram labeled by route and method
//
// The route label is the name reported by name,
// or "unmatched" when no route matched,
// keeping label cardinality bound to the route table
// rather than the unbounded set of request paths.
//
// If reg is nil, collectors register with prometheus.DefaultRegisterer.
// Registering the same collectors twice panics,
// so construct RequestMetrics once per registry.
func RequestMetrics(reg prometheus.Registerer, name RouteNamer) Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	if name == nil {
		name = func(*http.Request) string { return "" }
	}

	factory := promauto.With(reg)
	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trailhead",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests served.",
	}, []string{"route", "method", "code"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trailhead",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(handler, w, r)

			route := name(r)
			if route == "" {
				route = "unmatched"
			}

			requests.WithLabelValues(route, r.Method, strconv.Itoa(m.Code)).Inc()
			duration.WithLabelValues(route, r.Method).Observe(m.Duration.Seconds())
		})
	}
}
