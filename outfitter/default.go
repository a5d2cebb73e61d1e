package outfitter

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/keyring"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// Contact defaults
	contactUsEnvVar = "CONTACT_US_EMAIL"
	contactUsTmpl   = "We ran into an issue. Please contact us at %s."

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Maintenance mode defaults
	maintModeEnvVar = "MAINTENANCE_MODE"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// observability holds the sinks WithObservability routes request telemetry into.
type observability struct {
	on  bool
	reg prometheus.Registerer
	tp  trace.TracerProvider
}

// defaultOpts are the default OutfitterOptions New applies
// before those passed into it.
func defaultOpts() []OutfitterOption {
	return []OutfitterOption{
		WithContext(context.Background()),
		WithEnv(""),
		defaultLogger(),
		defaultKeyring(),
		defaultURL(),
		defaultResponder(),
		defaultRouter(),
	}
}

// defaultLogger constructs a logger.Logger from the LOG_LEVEL env var
// and exposes it through WithLogger.
func defaultLogger() OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		lvl := trailhead.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo)
		return WithLogger(logger.NewLogger(logger.WithLevel(lvl)))(o)
	}
}

// defaultKeyring constructs a keyring.Keyringable
// holding the context keys trailhead middleware stashes values under.
func defaultKeyring() OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		kr := keyring.NewKeyring(trailhead.RequestIDKey, trailhead.IpAddrKey, trailhead.ResponderKey)
		return WithKeyring(kr)(o)
	}
}

// defaultURL reads the base URL from the BASE_URL env var.
func defaultURL() OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.url = trailhead.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using base url %s", o.url), nil)
		}

		return nil, nil
	}
}

// defaultResponder constructs a followup option configuring
// the [*resp.Responder] http.Handlers respond with.
//
// defaultResponder waits for the logger, base URL and keyring options to run first.
func defaultResponder() OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		return func() error {
			args := []resp.ResponderOptFn{
				resp.WithCtxKeys(o.kr.RequestIDKey(), o.kr.IpAddrKey()),
				resp.WithLogger(o.l),
				resp.WithRootUrl(o.url.String()),
			}
			if contact := os.Getenv(contactUsEnvVar); contact != "" {
				args = append(args, resp.WithContactErrMsg(fmt.Sprintf(contactUsTmpl, contact)))
			}

			o.Responder = resp.NewResponder(args...)
			if setupLog != nil {
				setupLog.Debug("using responder", nil)
			}

			return nil
		}, nil
	}
}

// defaultRouter constructs a followup option configuring
// the [*router.Router] the web server serves.
//
// The router answers unmatched paths with a JSON 404
// and wraps every route in these middlewares:
//
//   - middleware.RequestID
//   - middleware.InjectIPAddress
//   - middleware.LogRequest
//   - middleware.ReportPanic
//
// WithObservability prepends middleware.RequestMetrics and middleware.TraceRequest.
func defaultRouter() OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		return func() error {
			if o.srv == nil {
				o.srv = defaultServer(o.ctx)
			}

			mws := []middleware.Adapter{
				middleware.RequestID(o.kr.RequestIDKey()),
				middleware.InjectIPAddress(),
				middleware.LogRequest(o.l),
				middleware.ReportPanic(o.env),
			}
			if o.obs.on {
				mws = append([]middleware.Adapter{
					middleware.RequestMetrics(o.obs.reg, routeName),
					middleware.TraceRequest(o.obs.tp, routeName),
				}, mws...)
			}

			cfg := router.Config{
				// NOTE(dlk): route the 404 through o so a Responder
				// configured by a later option handles it.
				NotFound: http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
					data := map[string]string{"error": http.StatusText(http.StatusNotFound)}
					if err := o.Json(wx, rx, resp.Code(http.StatusNotFound), resp.Data(data)); err != nil {
						o.l.Error(err.Error(), nil)
					}
				}),
				OnEveryRequest: mws,
			}

			r, err := router.New(cfg, o.routes...)
			if err != nil {
				return err
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

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := trailhead.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  trailhead.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  trailhead.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: trailhead.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}

// routeName labels a request with the name of the route serving it.
func routeName(r *http.Request) string {
	if route, ok := router.CurrentRoute(r); ok {
		return route.Name
	}

	return ""
}
