package resp

import (
	"net/url"
	"sort"

	"github.com/xy-planning-network/trailhead/http/keyring"
	"github.com/xy-planning-network/trailhead/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the message written to clients by Responder.Err
// in place of internal error detail.
func WithContactErrMsg(msg string) func(*Responder) {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithCtxKeys sets the keys whose *http.Request.Context values
// are included in the logs Err emits.
//
// WithCtxKeys filters out zero-value keys, dedupes the remainder and sorts it.
func WithCtxKeys(keys ...keyring.Keyable) func(*Responder) {
	set := make(map[string]keyring.Keyable, len(keys))
	for _, key := range keys {
		if key == nil || key.Key() == "" {
			continue
		}
		set[key.Key()] = key
	}

	var cleaned []keyring.Keyable
	if len(set) > 0 {
		cleaned = make([]keyring.Keyable, 0, len(set))
		for _, key := range set {
			cleaned = append(cleaned, key)
		}
		sort.Sort(keyring.ByKeyable(cleaned))
	}

	return func(d *Responder) {
		d.ctxKeys = cleaned
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, a default Logger will be configured.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for redirecting.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) func(*Responder) {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}
