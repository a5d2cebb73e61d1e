package outfitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/keyring"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
)

// An Outfitter equips and manages all components of a trailhead app,
// exposing them to one another.
type Outfitter struct {
	*resp.Responder
	*router.Router

	ctx    context.Context
	env    trailhead.Environment
	kr     keyring.Keyringable
	l      logger.Logger
	obs    observability
	routes []router.Route
	srv    *http.Server
	url    *url.URL
}

// New constructs an *Outfitter from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...OutfitterOption) (*Outfitter, error) {
	o := new(Outfitter)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Outfitter under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *Outfitter
	// until either (1) user supplied OutfitterOptions or (2) default OutfitterOptions
	// configure the *Outfitter first.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(o)
		if err != nil {
			return o, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}
	}

	return o, nil
}

func (o *Outfitter) EmitEnv() trailhead.Environment   { return o.env }
func (o *Outfitter) EmitKeyring() keyring.Keyringable { return o.kr }
func (o *Outfitter) EmitLogger() logger.Logger        { return o.l }

// Directory assembles the navigational index of the Routes the Outfitter serves,
// grouping Links under the leading segment of their paths.
//
// Routes whose paths require params have no standalone link and are left out,
// as are all Routes when the Environment keeps the directory private.
func (o *Outfitter) Directory() trailhead.Directory {
	if !o.env.DirectoryEnabled() {
		return make(trailhead.Directory, 0)
	}

	base := strings.TrimSuffix(o.url.String(), "/")
	groups := make(map[string]int)
	dir := make(trailhead.Directory, 0)
	for _, route := range o.Router.Routes() {
		path, err := o.Router.PathFor(route.Name, nil)
		if err != nil {
			continue
		}

		title := linkGroupTitle(path)
		i, ok := groups[title]
		if !ok {
			i = len(dir)
			groups[title] = i
			dir = append(dir, trailhead.LinkGroup{Title: title})
		}

		dir[i].Links = append(dir[i].Links, trailhead.Link{Name: route.Name, URL: base + path})
	}

	return dir.Filter()
}

// linkGroupTitle derives the LinkGroup title for a path from its leading segment.
func linkGroupTitle(path string) string {
	if path == "/" {
		return "root"
	}

	if next := strings.IndexByte(path[1:], '/'); next != -1 {
		return path[1 : next+1]
	}

	return path[1:]
}

// Embark begins the web server.
//
// These, and (*Outfitter).Shutdown, stop Embark:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (o *Outfitter) Embark() error {
	var cancel context.CancelFunc
	o.ctx, cancel = context.WithCancel(o.ctx)

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		s := <-ch
		o.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
		cancel()
	}()

	go func() {
		o.srv.Handler = o.Router
		if trailhead.EnvVarOrBool(maintModeEnvVar, false) {
			o.l.Info("starting in maintenance mode", nil)
			o.srv.Handler = MaintModeHandler(o.Responder, o.l)
		}

		o.l.Info(fmt.Sprintf("running web server at %s", o.srv.Addr), nil)
		if err := o.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			o.l.Error(err.Error(), nil)
		}
	}()

	<-o.ctx.Done()
	return o.Shutdown()
}

// Shutdown shutdowns the web server.
func (o *Outfitter) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	o.l.Info("shutting down web server", nil)
	err := o.srv.Shutdown(shutdownCtx)
	if err == http.ErrServerClosed {
		o.l.Info("web server shutdown successfully", nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	o.l.Info("web server shutdown successfully", nil)
	return nil
}
