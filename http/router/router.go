package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/trailhead/http/middleware"
)

// Config tunes how a [*Router] matches and dispatches.
//
// The zero value matches exactly: trailing slashes are significant
// and literal segments compare case-sensitively.
type Config struct {
	// CaseInsensitive folds case when comparing literal segments,
	// so /Registration matches a Route declared at /registration.
	// Captured values are recorded verbatim either way.
	CaseInsensitive bool

	// NormalizeTrailingSlash strips one trailing slash from request paths
	// before matching, so /registration/ matches a Route declared at /registration.
	// The root path / is never stripped.
	NormalizeTrailingSlash bool

	// NotFound responds when no Route matches.
	// Defaults to replying 404 Not Found.
	NotFound http.Handler

	// OnEveryRequest is applied to every Route's handler,
	// ahead of the Route's own middlewares.
	OnEveryRequest []middleware.Adapter
}

// A MatchResult pairs the matched Route with the params
// its captures extracted from a path.
type MatchResult struct {
	Route  Route
	Params map[string]string
}

// A Router matches request paths against an ordered route table
// and dispatches to the handler of the first Route that fully matches.
//
// The table is immutable once [New] returns:
// routes are never added, removed, or mutated afterwards,
// so any number of goroutines can call [*Router.Match], [*Router.PathFor]
// and [*Router.ServeHTTP] concurrently without locking.
type Router struct {
	cfg    Config
	table  []compiledRoute
	byName map[string]int
}

// A compiledRoute carries a Route alongside its compiled pattern
// and its fully chained handler, both prepared at construction
// so dispatch does no per-request assembly.
type compiledRoute struct {
	route   Route
	pattern pattern
	handler http.Handler
}

// New compiles routes into a [*Router] configured by cfg.
//
// Declaration order is priority order: when two patterns both match a path,
// the one declared earlier wins.
// Declare /registration ahead of /registration/{pk:int}
// and the latter can never shadow the former.
//
// New fails when a Route lacks a name or a handler, when a path does not
// compile, and when two Routes share a name, which would make
// reverse lookup nondeterministic.
func New(cfg Config, routes ...Route) (*Router, error) {
	if cfg.NotFound == nil {
		cfg.NotFound = http.NotFoundHandler()
	}

	r := &Router{
		cfg:    cfg,
		table:  make([]compiledRoute, 0, len(routes)),
		byName: make(map[string]int, len(routes)),
	}

	for _, route := range routes {
		if route.Name == "" {
			return nil, fmt.Errorf("%w: route %q needs a name", ErrMissingData, route.Path)
		}

		if route.Handler == nil {
			return nil, fmt.Errorf("%w: route %q needs a handler", ErrMissingData, route.Name)
		}

		if _, ok := r.byName[route.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, route.Name)
		}

		p, err := parsePattern(route.Path)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", route.Name, err)
		}

		mws := append([]middleware.Adapter{}, cfg.OnEveryRequest...)
		mws = append(mws, route.Middlewares...)
		r.byName[route.Name] = len(r.table)
		r.table = append(r.table, compiledRoute{
			route:   route,
			pattern: p,
			handler: middleware.Chain(route.Handler, mws...),
		})
	}

	return r, nil
}

// Match resolves path to the first Route in declaration order
// whose pattern fully matches it, alongside the values its captures extracted.
//
// Capture constraints hold here, at match time:
// /registration/abc falls through a Route declared at /registration/{pk:int}
// and never reaches its handler.
//
// Match wraps [ErrNotFound] when no Route matches.
func (r *Router) Match(path string) (MatchResult, error) {
	_, match, err := r.match(path)
	return match, err
}

// PathFor reconstructs the path of the Route declared under name
// by substituting params into its captures in pattern order.
//
// PathFor wraps [ErrUnknownRoute] when no Route was declared under name,
// [ErrMissingParam] when a capture has no value in params,
// and [ErrParamConstraint] when a value does not satisfy a capture's type.
// Params beyond the pattern's captures are ignored.
func (r *Router) PathFor(name string, params map[string]string) (string, error) {
	i, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	path, err := r.table[i].pattern.build(params)
	if err != nil {
		return "", fmt.Errorf("route %q: %w", name, err)
	}

	return path, nil
}

// Routes returns a copy of the route table in declaration order.
func (r *Router) Routes() []Route {
	routes := make([]Route, len(r.table))
	for i, cr := range r.table {
		routes[i] = cr.route
	}

	return routes
}

// ServeHTTP matches the request path and dispatches to the matched Route's
// handler, with the [MatchResult] stashed in the request context for
// [Vars] and [CurrentRoute].
//
// When no Route matches, the configured NotFound handler responds instead.
// Errors a handler runs into are its own to respond with;
// the Router neither inspects nor intercepts them.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	i, match, err := r.match(req.URL.Path)
	if err != nil {
		r.cfg.NotFound.ServeHTTP(w, req)
		return
	}

	req = req.Clone(newContext(req.Context(), match))
	r.table[i].handler.ServeHTTP(w, req)
}

// match walks the table in declaration order,
// returning the index of the first fully matching Route.
func (r *Router) match(path string) (int, MatchResult, error) {
	parts, ok := splitPath(path, r.cfg.NormalizeTrailingSlash)
	if ok {
		for i, cr := range r.table {
			params, ok := cr.pattern.match(parts, r.cfg.CaseInsensitive)
			if !ok {
				continue
			}

			return i, MatchResult{Route: cr.route, Params: params}, nil
		}
	}

	return 0, MatchResult{}, fmt.Errorf("%w: %q", ErrNotFound, path)
}

// splitPath breaks path into its segments,
// stripping at most one trailing slash when normalize is set.
//
// Empty segments are kept; nothing matches them,
// so //registration stays distinct from /registration.
func splitPath(path string, normalize bool) ([]string, bool) {
	if path == "" || path[0] != '/' {
		return nil, false
	}

	if normalize && len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if path == "/" {
		return nil, true
	}

	return strings.Split(path[1:], "/"), true
}
