package middleware

import (
	"net/http"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// NoopAdapter returns the handler unchanged.
//
// Constructors return NoopAdapter when they are missing
// whatever they need to do their work.
func NoopAdapter(handler http.Handler) http.Handler { return handler }

// A RouteNamer reports the name of the route matched for the request,
// or "" when nothing matched.
//
// Middlewares observing requests accept a RouteNamer so labels and span names
// can use the stable route name instead of the raw path.
type RouteNamer func(r *http.Request) string

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}
