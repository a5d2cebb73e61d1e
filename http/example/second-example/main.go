/*
second-example composes route groups with router.Mount
and loosens matching with the router.Config knobs.

NormalizeTrailingSlash admits /api/v1/registration/ for /api/v1/registration.
CaseInsensitive admits /API/V1/registration for the same.
Captured values are recorded verbatim either way,
which the {id:uuid} route below relies on for lookups.

The show handler is a standalone function instead of a method on api:
middleware.InjectResponder hands it the Responder through the request context.
*/
package main

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/middleware"
	. "github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/outfitter"
)

// A registration is the resource this example serves,
// addressed by uuid rather than serial pk.
type registration struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

var registrations = map[string]registration{
	"9bd0cda5-3b4f-4f0e-8e3a-1d1c9be44a4b": {ID: "9bd0cda5-3b4f-4f0e-8e3a-1d1c9be44a4b", Email: "peggy@example.com"},
	"f71f627d-6d49-4fad-9b5c-3ae2db1bf0a8": {ID: "f71f627d-6d49-4fad-9b5c-3ae2db1bf0a8", Email: "victor@example.com"},
}

// api wraps a configured *Outfitter.
type api struct {
	*outfitter.Outfitter
}

// index links to the mounted group so clients need not know the prefix.
func (a *api) index(w http.ResponseWriter, r *http.Request) {
	path, err := a.PathFor("v1_registration", nil)
	if err != nil {
		a.Err(w, r, err)
		return
	}

	if err := a.Json(w, r, Data(map[string]string{"v1": path})); err != nil {
		a.Err(w, r, err)
	}
}

func (a *api) list(w http.ResponseWriter, r *http.Request) {
	items := make([]registration, 0, len(registrations))
	for _, reg := range registrations {
		items = append(items, reg)
	}

	if err := a.Json(w, r, Data(items)); err != nil {
		a.Err(w, r, err)
	}
}

// show looks a registration up by the verbatim uuid capture,
// pulling its Responder out of the request context.
func show(w http.ResponseWriter, r *http.Request) {
	d, ok := r.Context().Value(trailhead.ResponderKey).(*Responder)
	if !ok {
		http.Error(w, "no responder in context", http.StatusInternalServerError)
		return
	}

	id := router.Vars(r)["id"]

	reg, ok := registrations[id]
	if !ok {
		data := map[string]string{"error": "no registration " + id}
		if err := d.Json(w, r, Code(http.StatusNotFound), Data(data)); err != nil {
			d.Err(w, r, err)
		}
		return
	}

	if err := d.Json(w, r, Data(reg)); err != nil {
		d.Err(w, r, err)
	}
}

// routes mounts the v1 group under its prefix ahead of construction;
// the table admits no additions afterwards.
func routes(a *api, d *Responder) []router.Route {
	v1 := router.Mount("/api/v1",
		router.Route{Name: "v1_registration", Path: "/registration", Handler: a.list},
		router.Route{
			Name:        "v1_registration_show",
			Path:        "/registration/{id:uuid}",
			Handler:     show,
			Middlewares: []middleware.Adapter{middleware.InjectResponder(d, trailhead.ResponderKey)},
		},
	)

	return append([]router.Route{{Name: "root", Path: "/", Handler: a.index}}, v1...)
}

// newAPI boots an Outfitter around a router with loosened matching.
//
// The Responder exists before the route table so InjectResponder can carry it;
// WithResponder hands the Outfitter the same one.
func newAPI() (*api, error) {
	a := new(api)
	d := NewResponder()

	r, err := router.New(
		router.Config{CaseInsensitive: true, NormalizeTrailingSlash: true},
		routes(a, d)...,
	)
	if err != nil {
		return nil, err
	}

	o, err := outfitter.New(outfitter.WithRouter(r), outfitter.WithResponder(d))
	if err != nil {
		return nil, err
	}

	a.Outfitter = o

	return a, nil
}

func main() {
	a, err := newAPI()
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := a.Embark(); err != nil {
		fmt.Println(err)
		return
	}
}
