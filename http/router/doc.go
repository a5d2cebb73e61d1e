/*

Package router matches request paths against an ordered table of named,
typed patterns and dispatches to the handler of the first full match.

A [Router] leverages a standardized data model - a [Route] -
when declaring how requests should be routed.
A name, a path pattern and an [http.HandlerFunc] comprise a [Route].
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

# Patterns

A path pattern names each of its segments either verbatim or as a capture:

	/registration
	/registration/{pk:int}
	/registration/{pk:int}/review

A capture consumes exactly one path segment and records it under the
capture's name, retrievable in a handler through [Vars].
Its type constrains what the segment may look like:
"int" admits decimal digits only, "uuid" admits canonical UUIDs,
and the default "string" admits any one nonempty segment.
The constraint holds at match time,
so /registration/abc never reaches the handler declared for /registration/{pk:int};
it falls through to later routes or to the not-found response.

Patterns compile when [New] builds the table, never per request.
A malformed pattern, a repeated capture name, or two routes
declared under one name all fail construction,
turning configuration mistakes into startup errors rather than
quiet production misroutes.

# Order

The table preserves declaration order, and earlier routes win.
Where one pattern shadows another - /registration and /registration/{pk:int}
do not overlap, but /registration/{slug} and /registration/{pk:int} would -
order is the tiebreak, so it is load-bearing configuration, not cosmetics.

# Reverse lookup

[*Router.PathFor] rebuilds a literal path from a route's name and a set of
capture values, so links come from the table instead of hardcoded strings.
Failures are explicit: an unknown name, a missing value and a value failing
its capture's type each wrap a distinct sentinel error.

# Policy knobs

Whether /registration/ means /registration, and whether /Registration does,
are configuration decisions, not guesses; see [Config].
By default both comparisons are exact.

*/
package router
