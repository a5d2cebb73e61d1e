package router

import (
	"context"
	"net/http"
)

// contextKey stays unexported so only dispatch can stash a MatchResult.
type contextKey int

const matchKey contextKey = iota

// newContext stashes match for retrieval by Vars and CurrentRoute.
func newContext(ctx context.Context, match MatchResult) context.Context {
	return context.WithValue(ctx, matchKey, match)
}

// Vars returns the params the matched Route's captures extracted
// from the dispatched request's path.
//
// Vars returns nil when r was not dispatched through a [*Router].
func Vars(r *http.Request) map[string]string {
	if match, ok := r.Context().Value(matchKey).(MatchResult); ok {
		return match.Params
	}

	return nil
}

// CurrentRoute returns the Route whose pattern matched the dispatched
// request's path and whether one did at all.
func CurrentRoute(r *http.Request) (Route, bool) {
	match, ok := r.Context().Value(matchKey).(MatchResult)
	return match.Route, ok
}
