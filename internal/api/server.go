// Package api exposes the lookup over HTTP.
package api

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/linkedin-lookup/internal/model"
)

// Resolver performs one lookup.
type Resolver interface {
	Lookup(ctx context.Context, q model.Query) (*model.LookupResult, error)
}

// Deps are the collaborators the router needs.
type Deps struct {
	Resolver Resolver
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// StaticDir holds the built frontend. Empty or missing disables it.
	StaticDir string
}

// NewRouter builds the HTTP handler.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withLogger)
	r.Use(withRecover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	h := &lookupHandler{resolver: deps.Resolver}
	r.Post("/api/lookup", h.ServeHTTP)

	r.NotFound(notFound(deps.StaticDir))

	return r
}

// notFound serves the SPA for non-API paths when the frontend build exists.
func notFound(staticDir string) http.HandlerFunc {
	jsonNotFound := func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found."})
	}

	if staticDir == "" {
		return jsonNotFound
	}
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		return jsonNotFound
	}

	spa := spaHandler(staticDir)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			jsonNotFound(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			jsonNotFound(w, r)
			return
		}
		spa.ServeHTTP(w, r)
	}
}
