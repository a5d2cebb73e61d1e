package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this instrumentation to the trace.TracerProvider.
const tracerName = "github.com/xy-planning-network/trailhead/http/middleware"

// TraceRequest opens a span around each request served.
//
// The span is named after the route reported by name,
// falling back to the request path when no route matched.
// The span records the request method, route, target and resulting status code,
// and flags 5xx responses as errors.
//
// If tp is nil, the globally registered trace.TracerProvider is used;
// absent one of those, spans are no-ops.
func TraceRequest(tp trace.TracerProvider, name RouteNamer) Adapter {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	if name == nil {
		name = func(*http.Request) string { return "" }
	}

	tracer := tp.Tracer(tracerName)

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := name(r)
			spanName := route
			if spanName == "" {
				spanName = r.URL.Path
			}

			ctx, span := tracer.Start(r.Context(), spanName,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.route", route),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			m := httpsnoop.CaptureMetrics(handler, w, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", m.Code))
			if m.Code >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(m.Code))
			}
		})
	}
}
