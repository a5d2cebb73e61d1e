package router

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/trailhead/http/middleware"
)

// A Route maps a path pattern to an [http.HandlerFunc] under a unique name.
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// The name doubles as the Route's address for reverse lookup,
// so links can be generated instead of hardcoded.
type Route struct {
	Name        string
	Path        string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Mount returns a copy of routes with each Route's path placed under prefix.
//
// e.g., Mount("/api/v1", routes...) moves a Route for /registration to /api/v1/registration.
//
// Mount composes route groups ahead of constructing a [*Router],
// which admits no additions afterwards.
func Mount(prefix string, routes ...Route) []Route {
	prefix = strings.TrimSuffix(prefix, "/")
	mounted := make([]Route, len(routes))
	for i, route := range routes {
		path := route.Path
		if path == "/" {
			path = ""
		}

		route.Path = prefix + path
		mounted[i] = route
	}

	return mounted
}
