// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"movies_web/internal/app"
)

type Handlers struct{ C *app.ReviewsController }

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/reviews", h.index)
	s.mux.Get("/reviews/", h.index)
	s.mux.Get("/reviews/index", h.index)
	s.mux.Get("/reviews/details", h.details)
	s.mux.Get("/reviews/details/", h.details)
	s.mux.Get("/reviews/details/{id}", h.details)
}

func writeProblem(w http.ResponseWriter, p problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// etagOf hashes a rendered body into a weak ETag.
func etagOf(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// render writes a controller result: a view as HTML, anything else as a problem document.
func render(w http.ResponseWriter, r *http.Request, res app.Result) {
	if res.View == "" {
		writeProblem(w, problem{Status: res.Status, Errors: res.Errors})
		return
	}

	body, err := renderView(res.View, res.Model)
	if err != nil {
		log.Error().Err(err).Str("view", res.View).Msg("render view failed")
		writeProblem(w, problem{Status: http.StatusInternalServerError})
		return
	}

	etag := etagOf(body)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag && res.Status == http.StatusOK {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(res.Status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("view", res.View).Msg("failed to write view body")
	}
}

// GET /reviews?subject=...
func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	var q app.IndexQuery
	// an empty subject binds as no subject
	if s := r.URL.Query().Get("subject"); s != "" {
		q.Subject = &s
	}
	render(w, r, h.C.Index(r.Context(), q))
}

// GET /reviews/details/{id}
func (h *Handlers) details(w http.ResponseWriter, r *http.Request) {
	var id *int
	// a missing or non-numeric id binds as no id
	if n, err := strconv.Atoi(chi.URLParam(r, "id")); err == nil {
		id = &n
	}
	render(w, r, h.C.Details(r.Context(), id))
}
