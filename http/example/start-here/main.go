/*
start-here provides a toy example use of trailhead's http stack,
focusing on the basics of:

(1) constructing a default Outfitter;
(2) binding named routes to handlers;
(3) reading typed captures with router.Vars;
(4) and using resp.Fn functional options for declaring how
	the Responder forms the response payload.
*/
package main

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	. "github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/outfitter"
)

// A registration is the resource this example serves.
type registration struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Plan  string `json:"plan"`
}

// app wraps a configured *Outfitter.
// The methods attached to it are the handlers the Router
// will direct requests to.
type app struct {
	*outfitter.Outfitter

	mu   sync.Mutex
	regs map[int]registration
}

// index points clients at the rest of the example
// with links the Router generates itself.
func (a *app) index(w http.ResponseWriter, r *http.Request) {
	if err := a.Json(w, r, Data(a.Directory())); err != nil {
		a.Err(w, r, err)
	}
}

// registrations dispatches on method:
// the route table matches paths, leaving methods to handlers.
func (a *app) registrations(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		a.create(w, r)
		return
	}

	a.list(w, r)
}

// list responds with every registration alongside the link
// for editing each, generated by PathFor instead of hardcoded.
func (a *app) list(w http.ResponseWriter, r *http.Request) {
	type item struct {
		registration
		Edit string `json:"edit"`
	}

	a.mu.Lock()
	ids := make([]int, 0, len(a.regs))
	for id := range a.regs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]item, 0, len(ids))
	for _, id := range ids {
		path, err := a.PathFor("registration_edit", map[string]string{"pk": strconv.Itoa(id)})
		if err != nil {
			a.mu.Unlock()
			a.Err(w, r, err)
			return
		}

		items = append(items, item{registration: a.regs[id], Edit: path})
	}
	a.mu.Unlock()

	if err := a.Json(w, r, Data(items)); err != nil {
		a.Err(w, r, err)
	}
}

// create adds a registration and redirects to its edit link.
func (a *app) create(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	id := len(a.regs) + 1
	a.regs[id] = registration{ID: id, Email: r.URL.Query().Get("email"), Plan: "basic"}
	a.mu.Unlock()

	path, err := a.PathFor("registration_edit", map[string]string{"pk": strconv.Itoa(id)})
	if err != nil {
		a.Err(w, r, err)
		return
	}

	if err := a.Redirect(w, r, Url(path), Code(http.StatusSeeOther)); err != nil {
		a.Err(w, r, err)
	}
}

// edit responds with the registration addressed by the pk capture.
//
// The {pk:int} capture admits digits only,
// so the Atoi here cannot fail on a dispatched request.
func (a *app) edit(w http.ResponseWriter, r *http.Request) {
	pk, _ := strconv.Atoi(router.Vars(r)["pk"])

	a.mu.Lock()
	reg, ok := a.regs[pk]
	a.mu.Unlock()
	if !ok {
		data := map[string]string{"error": fmt.Sprintf("no registration %d", pk)}
		if err := a.Json(w, r, Code(http.StatusNotFound), Data(data)); err != nil {
			a.Err(w, r, err)
		}
		return
	}

	if err := a.Json(w, r, Data(reg)); err != nil {
		a.Err(w, r, err)
	}
}

// review shows a literal segment following a typed capture:
// /registration/{pk:int}/review matches /registration/7/review and nothing else.
func (a *app) review(w http.ResponseWriter, r *http.Request) {
	pk, _ := strconv.Atoi(router.Vars(r)["pk"])

	data := map[string]any{"id": pk, "status": "in review"}
	if err := a.Json(w, r, Data(data)); err != nil {
		a.Err(w, r, err)
	}
}

// newApp constructs an Outfitter serving the registration routes.
//
// Declaration order is priority order,
// though none of these patterns can shadow another:
// they differ in segment count or in a literal.
func newApp() (*app, error) {
	a := &app{regs: map[int]registration{
		1: {ID: 1, Email: "mallory@example.com", Plan: "basic"},
		2: {ID: 2, Email: "trent@example.com", Plan: "premium"},
	}}

	o, err := outfitter.New(outfitter.WithRoutes(
		router.Route{Name: "root", Path: "/", Handler: a.index},
		router.Route{Name: "registration", Path: "/registration", Handler: a.registrations},
		router.Route{Name: "registration_edit", Path: "/registration/{pk:int}", Handler: a.edit},
		router.Route{Name: "registration_review", Path: "/registration/{pk:int}/review", Handler: a.review},
	))
	if err != nil {
		return nil, err
	}

	a.Outfitter = o

	return a, nil
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}

	// start the web server until receiving a signal to stop.
	if err := a.Embark(); err != nil {
		fmt.Println(err)
		return
	}
}
