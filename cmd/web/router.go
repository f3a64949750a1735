package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/academy-web/internal/catalog"
	"finitefield.org/academy-web/internal/metrics"
	"finitefield.org/academy-web/internal/observability"
	"finitefield.org/academy-web/internal/pages"
	"finitefield.org/academy-web/internal/seo"
)

// app holds the immutable dependencies shared by every handler.
type app struct {
	resolver *seo.Resolver
	pages    *pages.Registry
	catalog  *catalog.Client
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; deploy only behind a proxy that sets it.
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLoggerMiddleware(a.logger))
	r.Use(observability.RecoveryMiddleware(a.logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	r.Route("/api/seo", func(r chi.Router) {
		r.Post("/resolve", a.handleResolve)
		r.Post("/validate", a.handleValidate)
		r.Get("/organization", a.handleOrganization)
		r.Get("/pages/head", a.handlePageHead)
		r.Get("/courses/{slug}/head", a.handleCourseHead)
		r.Get("/jobs/{id}/head", a.handleJobHead)
		r.Get("/events/{id}/head", a.handleEventHead)
	})
	return r
}
