// Package web serves the crewwatch view: a page with a refresh button, a
// loading indicator and the rendered roster.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/crewwatch-io/crewwatch/internal/logging"
	"github.com/crewwatch-io/crewwatch/internal/store"
)

// htmxRequestHeader is the header htmx sets on requests it initiates.
const htmxRequestHeader = "HX-Request"

// Handler routes the web view endpoints.
type Handler struct {
	store *store.Store[crew.State]
	src   crew.Source
}

// NewHandler builds the HTTP handler around the store and roster source.
func NewHandler(st *store.Store[crew.State], src crew.Source) http.Handler {
	h := &Handler{store: st, src: src}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.page)
	mux.HandleFunc("GET /crew", h.roster)
	mux.HandleFunc("POST /crew/refresh", h.refresh)
	mux.HandleFunc("GET /api/crew", h.apiCrew)
	mux.HandleFunc("GET /healthz", h.healthz)
	return mux
}

// page renders the full page with the current roster state.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, h.store.State()); err != nil {
		logging.Error("render page", "error", err)
	}
}

// roster renders just the roster fragment.
func (h *Handler) roster(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rosterTmpl.Execute(w, h.store.State()); err != nil {
		logging.Error("render roster", "error", err)
	}
}

// refresh triggers the fetch effect. The handler awaits completion so the
// response reflects the terminal state; the in-flight loading indicator is
// the client's concern. The effect outlives request cancellation so an
// impatient client cannot leave the store stuck mid-transition.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	done := h.store.Run(context.WithoutCancel(r.Context()), crew.Fetch(h.src))

	select {
	case <-done:
	case <-r.Context().Done():
		w.WriteHeader(http.StatusRequestTimeout)
		return
	}

	if !isHTMXRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.roster(w, r)
}

// apiCrew returns the current roster state as JSON.
func (h *Handler) apiCrew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.store.State()); err != nil {
		logging.Error("encode crew state", "error", err)
	}
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// isHTMXRequest reports whether the request was initiated by htmx.
func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(htmxRequestHeader), "true")
}
