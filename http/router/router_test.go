package router_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/router"
	"pgregory.net/rapid"
)

func noopHandler() http.HandlerFunc {
	return func(http.ResponseWriter, *http.Request) {}
}

func registrationRoutes() []router.Route {
	return []router.Route{
		{Name: "root", Path: "/", Handler: noopHandler()},
		{Name: "registration", Path: "/registration", Handler: noopHandler()},
		{Name: "registration_edit", Path: "/registration/{pk:int}", Handler: noopHandler()},
		{Name: "registration_review", Path: "/registration/{pk:int}/review", Handler: noopHandler()},
		{Name: "profile", Path: "/profiles/{id:uuid}", Handler: noopHandler()},
		{Name: "file", Path: "/files/{name}", Handler: noopHandler()},
	}
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name   string
		routes []router.Route
		err    error
	}{
		{"Zero-Routes", nil, nil},
		{"Valid", registrationRoutes(), nil},
		{
			"Missing-Name",
			[]router.Route{{Path: "/registration", Handler: noopHandler()}},
			router.ErrMissingData,
		},
		{
			"Missing-Handler",
			[]router.Route{{Name: "registration", Path: "/registration"}},
			router.ErrMissingData,
		},
		{
			"Duplicate-Name",
			[]router.Route{
				{Name: "registration", Path: "/registration", Handler: noopHandler()},
				{Name: "registration", Path: "/registration/{pk:int}", Handler: noopHandler()},
			},
			router.ErrDuplicateName,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := router.New(router.Config{}, tc.routes...)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Nil(t, r)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, r)
		})
	}
}

func TestNewBadPattern(t *testing.T) {
	tcs := []struct {
		name    string
		pattern string
	}{
		{"Empty", ""},
		{"No-Leading-Slash", "registration"},
		{"Trailing-Slash", "/registration/"},
		{"Empty-Segment", "/registration//edit"},
		{"Unclosed-Brace", "/registration/{pk"},
		{"Stray-Brace", "/registration/pk}"},
		{"Nameless-Capture", "/registration/{}"},
		{"Typed-Nameless-Capture", "/registration/{:int}"},
		{"Unknown-Type", "/registration/{pk:float}"},
		{"Repeated-Capture", "/{pk}/{pk}"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			route := router.Route{Name: "registration", Path: tc.pattern, Handler: noopHandler()}
			_, err := router.New(router.Config{}, route)
			require.ErrorIs(t, err, router.ErrBadPattern)
		})
	}
}

func TestRouterMatch(t *testing.T) {
	// Arrange
	r, err := router.New(router.Config{}, registrationRoutes()...)
	require.NoError(t, err)

	for _, tc := range []struct {
		name   string
		path   string
		route  string
		params map[string]string
		err    error
	}{
		{"Root", "/", "root", map[string]string{}, nil},
		{"Static", "/registration", "registration", map[string]string{}, nil},
		{"Captured", "/registration/42", "registration_edit", map[string]string{"pk": "42"}, nil},
		{"Leading-Zeros", "/registration/0042", "registration_edit", map[string]string{"pk": "0042"}, nil},
		{"Literal-Tail", "/registration/42/review", "registration_review", map[string]string{"pk": "42"}, nil},
		{
			"UUID",
			"/profiles/b9a1d5b2-93ab-4d6a-9e9b-4f1f4a2f6c7d",
			"profile",
			map[string]string{"id": "b9a1d5b2-93ab-4d6a-9e9b-4f1f4a2f6c7d"},
			nil,
		},
		{"Opaque", "/files/readme.txt", "file", map[string]string{"name": "readme.txt"}, nil},
		{"Alpha-PK", "/registration/abc", "", nil, router.ErrNotFound},
		{"Mixed-PK", "/registration/4x2", "", nil, router.ErrNotFound},
		{"Bad-UUID", "/profiles/not-a-uuid", "", nil, router.ErrNotFound},
		{"Empty-Capture", "/files/", "", nil, router.ErrNotFound},
		{"Trailing-Slash", "/registration/", "", nil, router.ErrNotFound},
		{"Wrong-Case", "/Registration", "", nil, router.ErrNotFound},
		{"Too-Deep", "/registration/42/review/x", "", nil, router.ErrNotFound},
		{"Unknown", "/signup", "", nil, router.ErrNotFound},
		{"Empty-Path", "", "", nil, router.ErrNotFound},
		{"No-Leading-Slash", "registration", "", nil, router.ErrNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			match, err := r.Match(tc.path)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.route, match.Route.Name)
			require.Equal(t, tc.params, match.Params)
		})
	}
}

func TestRouterMatchOrder(t *testing.T) {
	// Arrange
	literal := router.Route{Name: "registration_new", Path: "/registration/new", Handler: noopHandler()}
	capture := router.Route{Name: "registration_show", Path: "/registration/{slug}", Handler: noopHandler()}

	t.Run("Literal-First", func(t *testing.T) {
		r, err := router.New(router.Config{}, literal, capture)
		require.NoError(t, err)

		match, err := r.Match("/registration/new")
		require.NoError(t, err)
		require.Equal(t, "registration_new", match.Route.Name)
		require.Empty(t, match.Params)

		match, err = r.Match("/registration/42")
		require.NoError(t, err)
		require.Equal(t, "registration_show", match.Route.Name)
		require.Equal(t, map[string]string{"slug": "42"}, match.Params)
	})

	t.Run("Capture-First", func(t *testing.T) {
		r, err := router.New(router.Config{}, capture, literal)
		require.NoError(t, err)

		match, err := r.Match("/registration/new")
		require.NoError(t, err)
		require.Equal(t, "registration_show", match.Route.Name)
		require.Equal(t, map[string]string{"slug": "new"}, match.Params)
	})
}

func TestRouterMatchTrailingSlash(t *testing.T) {
	// Arrange
	r, err := router.New(router.Config{NormalizeTrailingSlash: true}, registrationRoutes()...)
	require.NoError(t, err)

	for _, tc := range []struct {
		name  string
		path  string
		route string
	}{
		{"Root", "/", "root"},
		{"Bare", "/registration", "registration"},
		{"Trailing", "/registration/", "registration"},
		{"Captured-Trailing", "/registration/42/", "registration_edit"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			match, err := r.Match(tc.path)
			require.NoError(t, err)
			require.Equal(t, tc.route, match.Route.Name)
		})
	}

	// "/files/" trims to "/files", which no route matches.
	_, err = r.Match("/files/")
	require.ErrorIs(t, err, router.ErrNotFound)
}

func TestRouterMatchCaseInsensitive(t *testing.T) {
	// Arrange
	r, err := router.New(router.Config{CaseInsensitive: true}, registrationRoutes()...)
	require.NoError(t, err)

	// Act
	match, err := r.Match("/Registration/42")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "registration_edit", match.Route.Name)
	require.Equal(t, map[string]string{"pk": "42"}, match.Params)

	// Captured values keep the casing the request sent.
	match, err = r.Match("/FILES/ReadMe.TXT")
	require.NoError(t, err)
	require.Equal(t, "file", match.Route.Name)
	require.Equal(t, map[string]string{"name": "ReadMe.TXT"}, match.Params)
}

func TestRouterPathFor(t *testing.T) {
	// Arrange
	r, err := router.New(router.Config{}, registrationRoutes()...)
	require.NoError(t, err)

	tcs := []struct {
		name   string
		route  string
		params map[string]string
		path   string
		err    error
	}{
		{"Root", "root", nil, "/", nil},
		{"Static", "registration", nil, "/registration", nil},
		{"Captured", "registration_edit", map[string]string{"pk": "42"}, "/registration/42", nil},
		{"Literal-Tail", "registration_review", map[string]string{"pk": "42"}, "/registration/42/review", nil},
		{"Surplus-Param", "registration", map[string]string{"pk": "42"}, "/registration", nil},
		{"Opaque", "file", map[string]string{"name": "readme.txt"}, "/files/readme.txt", nil},
		{"Unknown-Route", "signup", nil, "", router.ErrUnknownRoute},
		{"Missing-Param", "registration_edit", nil, "", router.ErrMissingParam},
		{"Empty-Param", "registration_edit", map[string]string{"pk": ""}, "", router.ErrParamConstraint},
		{"Alpha-PK", "registration_edit", map[string]string{"pk": "abc"}, "", router.ErrParamConstraint},
		{"Bad-UUID", "profile", map[string]string{"id": "b9a1d5b2"}, "", router.ErrParamConstraint},
		// a value holding a slash would build a path no capture can match back
		{"Slashed-Param", "file", map[string]string{"name": "a/b"}, "", router.ErrParamConstraint},
		{"Slash-Only-Param", "file", map[string]string{"name": "/"}, "", router.ErrParamConstraint},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := r.PathFor(tc.route, tc.params)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.path, actual)
		})
	}
}

func TestRouterRoutes(t *testing.T) {
	// Arrange
	declared := registrationRoutes()
	r, err := router.New(router.Config{}, declared...)
	require.NoError(t, err)

	// Act
	actual := r.Routes()

	// Assert
	require.Len(t, actual, len(declared))
	for i, route := range declared {
		require.Equal(t, route.Name, actual[i].Name)
		require.Equal(t, route.Path, actual[i].Path)
	}

	// Mutating the copy leaves the table alone.
	actual[0].Name = "mutated"
	require.Equal(t, "root", r.Routes()[0].Name)
}

func TestRouterServeHTTP(t *testing.T) {
	t.Run("Dispatch", func(t *testing.T) {
		// Arrange
		routes := []router.Route{
			{Name: "registration", Path: "/registration", Handler: noopHandler()},
			{
				Name: "registration_edit",
				Path: "/registration/{pk:int}",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, router.Vars(r)["pk"])
				},
			},
		}
		r, err := router.New(router.Config{}, routes...)
		require.NoError(t, err)
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registration/42", nil))

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "42", w.Body.String())
	})

	t.Run("Current-Route", func(t *testing.T) {
		// Arrange
		var name string
		var ok bool
		route := router.Route{
			Name: "registration",
			Path: "/registration",
			Handler: func(_ http.ResponseWriter, r *http.Request) {
				var current router.Route
				current, ok = router.CurrentRoute(r)
				name = current.Name
			},
		}
		r, err := router.New(router.Config{}, route)
		require.NoError(t, err)

		// Act
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/registration", nil))

		// Assert
		require.True(t, ok)
		require.Equal(t, "registration", name)
	})

	t.Run("Not-Found", func(t *testing.T) {
		// Arrange
		r, err := router.New(router.Config{}, registrationRoutes()...)
		require.NoError(t, err)
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registration/abc", nil))

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Custom-Not-Found", func(t *testing.T) {
		// Arrange
		cfg := router.Config{NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})}
		r, err := router.New(cfg, registrationRoutes()...)
		require.NoError(t, err)
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signup", nil))

		// Assert
		require.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("Middleware-Order", func(t *testing.T) {
		// Arrange
		var calls []string
		mark := func(tag string) middleware.Adapter {
			return func(h http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					calls = append(calls, tag)
					h.ServeHTTP(w, r)
				})
			}
		}
		cfg := router.Config{OnEveryRequest: []middleware.Adapter{mark("global")}}
		route := router.Route{
			Name:        "registration",
			Path:        "/registration",
			Handler:     func(http.ResponseWriter, *http.Request) { calls = append(calls, "handler") },
			Middlewares: []middleware.Adapter{mark("route")},
		}
		r, err := router.New(cfg, route)
		require.NoError(t, err)

		// Act
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/registration", nil))

		// Assert
		require.Equal(t, []string{"global", "route", "handler"}, calls)
	})

	t.Run("Middleware-Sees-Match", func(t *testing.T) {
		// Arrange
		tag := func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if current, ok := router.CurrentRoute(r); ok {
					w.Header().Set("X-Route", current.Name)
				}
				h.ServeHTTP(w, r)
			})
		}
		cfg := router.Config{OnEveryRequest: []middleware.Adapter{tag}}
		r, err := router.New(cfg, registrationRoutes()...)
		require.NoError(t, err)
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registration/42", nil))

		// Assert
		require.Equal(t, "registration_edit", w.Header().Get("X-Route"))
	})
}

func TestRouterPathForMatchRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		// Distinct leading literals keep generated routes from shadowing one another.
		numRoutes := rapid.IntRange(1, 5).Draw(rt, "numRoutes")
		types := []router.CaptureType{router.CaptureString, router.CaptureInt, router.CaptureUUID}

		routes := make([]router.Route, numRoutes)
		captures := make([]map[string]router.CaptureType, numRoutes)
		for i := range routes {
			head := fmt.Sprintf("r%d%s", i, rapid.StringMatching(`[a-z]{2,6}`).Draw(rt, "head"))
			path := "/" + head
			captures[i] = map[string]router.CaptureType{}

			numSegments := rapid.IntRange(0, 3).Draw(rt, "numSegments")
			for j := 0; j < numSegments; j++ {
				if !rapid.Bool().Draw(rt, "isCapture") {
					path += "/" + rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "literal")
					continue
				}

				name := fmt.Sprintf("p%d", j)
				typ := rapid.SampledFrom(types).Draw(rt, "type")
				captures[i][name] = typ
				if typ == router.CaptureString {
					path += fmt.Sprintf("/{%s}", name)
				} else {
					path += fmt.Sprintf("/{%s:%s}", name, typ)
				}
			}

			routes[i] = router.Route{Name: fmt.Sprintf("route_%d", i), Path: path, Handler: noopHandler()}
		}

		r, err := router.New(router.Config{}, routes...)
		if err != nil {
			rt.Fatalf("New failed: %v", err)
		}

		for i, route := range routes {
			params := map[string]string{}
			for name, typ := range captures[i] {
				switch typ {
				case router.CaptureInt:
					params[name] = rapid.StringMatching(`[0-9]{1,9}`).Draw(rt, "intVal")
				case router.CaptureUUID:
					params[name] = rapid.StringMatching(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`).Draw(rt, "uuidVal")
				default:
					params[name] = rapid.StringMatching(`[a-zA-Z0-9._~/-]{1,10}`).Draw(rt, "stringVal")
				}
			}

			var slashed bool
			for _, val := range params {
				if strings.Contains(val, "/") {
					slashed = true
					break
				}
			}

			path, err := r.PathFor(route.Name, params)
			if slashed {
				if !errors.Is(err, router.ErrParamConstraint) {
					rt.Fatalf("PathFor(%q, %v) err = %v, want ErrParamConstraint", route.Name, params, err)
				}
				continue
			}
			if err != nil {
				rt.Fatalf("PathFor(%q, %v) failed: %v", route.Name, params, err)
			}

			match, err := r.Match(path)
			if err != nil {
				rt.Fatalf("Match(%q) failed: %v", path, err)
			}
			if match.Route.Name != route.Name {
				rt.Fatalf("Match(%q) hit %q, want %q", path, match.Route.Name, route.Name)
			}
			if len(match.Params) != len(params) {
				rt.Fatalf("Match(%q) captured %v, want %v", path, match.Params, params)
			}
			for name, want := range params {
				if match.Params[name] != want {
					rt.Fatalf("Match(%q) captured %v, want %v", path, match.Params, params)
				}
			}
		}
	})
}
