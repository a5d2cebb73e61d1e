package outfitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/keyring"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
	"go.opentelemetry.io/otel/trace"
)

// setupLog logs the configuration steps run while an *Outfitter boots.
var setupLog logger.Logger

// An OutfitterOption configures an *Outfitter either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some OutfitterOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithKeyring is an example of the first.
// An unexported field on the passed in *Outfitter is updated with the enclosed value.
//
// WithRouter is an example of the second.
// An unexported field on the passed in *Outfitter
// is updated only when the closure it returns is called.
type OutfitterOption func(o *Outfitter) (OptFollowup, error)
type OptFollowup func() error

// WithContext exposes the provided context.Context to the trailhead app.
func WithContext(ctx context.Context) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		if ctx == nil {
			ctx = context.Background()
		}

		o.ctx = ctx
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using context %T", ctx), nil)
		}

		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) OutfitterOption {
	e := trailhead.Environment(envVar)
	err := e.Valid()
	if err == nil {
		return func(o *Outfitter) (OptFollowup, error) {
			o.env = e
			if setupLog != nil {
				setupLog.Debug(fmt.Sprintf("using env %s", e), nil)
			}

			return nil, nil
		}
	}

	return func(o *Outfitter) (OptFollowup, error) {
		o.env = trailhead.EnvVarOrEnv(environmentEnvVar, trailhead.Development)
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using env %s", o.env), nil)
		}

		return nil, nil
	}
}

// WithKeyring exposes the provided keyring.Keyringable to the trailhead app.
func WithKeyring(k keyring.Keyringable) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		if k == nil {
			return nil, errors.New("nil keyring")
		}

		o.kr = k
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using keyring %T", k), nil)
		}

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the trailhead app.
func WithLogger(l logger.Logger) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.l = l
		if setupLog == nil {
			setupLog = l
		}

		setupLog.Debug(fmt.Sprintf("using logger %T", l), nil)

		return nil, nil
	}
}

// WithObservability registers request metrics with reg and traces requests with tp.
// The default router wraps every route in
// [middleware.RequestMetrics] and [middleware.TraceRequest] when this option is set.
//
// WithObservability has no effect on a router supplied through WithRouter.
func WithObservability(reg prometheus.Registerer, tp trace.TracerProvider) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.obs = observability{on: true, reg: reg, tp: tp}
		if setupLog != nil {
			setupLog.Debug("using request metrics and tracing", nil)
		}

		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the trailhead app.
func WithResponder(d *resp.Responder) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		return func() error {
			o.Responder = d
			if setupLog != nil {
				setupLog.Debug("using responder", nil)
			}

			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the trailhead app.
func WithRouter(r *router.Router) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		return func() error {
			if o.srv == nil {
				o.srv = defaultServer(o.ctx)
			}

			o.Router = r
			o.srv.Handler = r

			if setupLog != nil {
				setupLog.Debug(fmt.Sprintf("using router %T", r), nil)
				setupLog.Debug(fmt.Sprintf("using server %T", o.srv), nil)
			}

			return nil
		}, nil
	}
}

// WithRoutes exposes the provided router.Routes to the trailhead app.
// The default router serves them; WithRouter supersedes this option.
func WithRoutes(routes ...router.Route) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.routes = routes
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using %d routes", len(routes)), nil)
		}

		return nil, nil
	}
}

// WithServer exposes the *http.Server to the trailhead app.
func WithServer(s *http.Server) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		old := o.srv
		o.srv = s

		if old != nil {
			o.srv.Handler = old.Handler
		}

		return nil, nil
	}
}
