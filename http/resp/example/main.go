package main

import (
	"errors"
	"net/http"

	. "github.com/xy-planning-network/trailhead/http/resp"
)

// Handler shares the initialized Responder across all example responses.
type Handler struct {
	*Responder
}

// root is a fully-formed use of Responder.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"sick": "such data",
		"wow":  "so data",
		"ooh":  "dataaaa",
	}
	if err := h.Json(w, r, Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// created shows overriding the default status code.
func (h *Handler) created(w http.ResponseWriter, r *http.Request) {
	if err := h.Json(w, r, Code(http.StatusCreated), Data(map[string]interface{}{"id": 42})); err != nil {
		h.Err(w, r, err)
	}
}

// away redirects home with query params tacked on.
//
// note the Params before Url: the Responder retries options
// needing state set by a later one.
func (h *Handler) away(w http.ResponseWriter, r *http.Request) {
	err := h.Redirect(w, r, Params(map[string]string{"from": "away"}), Url("http://localhost:8081/"))
	if err != nil {
		h.Err(w, r, err)
	}
}

// broken lands in Responder.Err, writing the contact message in place of the error itself.
func (h *Handler) broken(w http.ResponseWriter, r *http.Request) {
	h.Err(w, r, errors.New("the database is on fire"))
}

func main() {
	// allocate our responder
	d := NewResponder(
		WithRootUrl("http://localhost:8081"),
		WithContactErrMsg("Sorry! Write us at help@example.com."),
	)

	// setup routing
	h := &Handler{d}
	http.HandleFunc("/broken", h.broken)
	http.HandleFunc("/away", h.away)
	http.HandleFunc("/created", h.created)
	http.HandleFunc("/", h.root)

	// run the server
	http.ListenAndServe("localhost:8081", nil)
}
