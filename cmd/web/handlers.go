package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/academy-web/internal/catalog"
	"finitefield.org/academy-web/internal/head"
	"finitefield.org/academy-web/internal/httpx"
	"finitefield.org/academy-web/internal/observability"
	"finitefield.org/academy-web/internal/pages"
	"finitefield.org/academy-web/internal/seo"
)

const maxRequestBytes = 64 << 10

type resolveRequest struct {
	Meta seo.Input       `json:"meta"`
	Type string          `json:"type,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type resolveResponse struct {
	Meta           seo.Metadata         `json:"meta"`
	StructuredData map[string]any       `json:"structuredData,omitempty"`
	Warnings       seo.ValidationResult `json:"warnings"`
}

type validateResponse struct {
	Valid    bool                 `json:"valid"`
	Warnings seo.ValidationResult `json:"warnings"`
}

func (a *app) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp := resolveResponse{
		Meta:     a.resolver.Resolve(req.Meta),
		Warnings: a.validate(req.Meta.Fields()),
	}
	kind := ""
	if req.Type != "" {
		rec, ok, err := seo.DecodeRecord(req.Type, req.Data)
		if err != nil {
			httpx.WriteError(r.Context(), w, httpx.NewError("invalid_structured_data", err.Error(), http.StatusBadRequest))
			return
		}
		if ok {
			resp.StructuredData, _ = a.resolver.StructuredData(rec)
			kind = string(rec.Kind())
		} else {
			observability.FromContext(r.Context()).Debug("unknown structured data type", zap.String("type", req.Type))
		}
	}
	a.metrics.IncResolution(kind)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (a *app) handleValidate(w http.ResponseWriter, r *http.Request) {
	var fields seo.Fields
	if !decodeBody(w, r, &fields) {
		return
	}
	warnings := a.validate(fields)
	httpx.WriteJSON(w, http.StatusOK, validateResponse{Valid: warnings.Valid(), Warnings: warnings})
}

func (a *app) validate(fields seo.Fields) seo.ValidationResult {
	result := seo.Validate(fields)
	a.metrics.AddValidationWarnings(result.Fields())
	return result
}

func (a *app) handleOrganization(w http.ResponseWriter, r *http.Request) {
	data, _ := a.resolver.StructuredData(seo.Organization{})
	w.Header().Set("Cache-Control", "public, max-age=3600")
	httpx.WriteJSON(w, http.StatusOK, data)
}

func (a *app) handlePageHead(w http.ResponseWriter, r *http.Request) {
	page, err := a.pages.Lookup(r.URL.Query().Get("path"))
	if errors.Is(err, pages.ErrUnknownPage) {
		httpx.WriteError(r.Context(), w, httpx.NewError("page_not_found", "no metadata registered for path", http.StatusNotFound))
		return
	}
	if err != nil {
		a.fail(r.Context(), w, err)
		return
	}

	var blocks []map[string]any
	kind := ""
	if rec, ok := page.Record(); ok {
		data, _ := a.resolver.StructuredData(rec)
		blocks = append(blocks, data)
		kind = string(rec.Kind())
	}
	if page.SearchPath != "" {
		blocks = append(blocks, a.resolver.WebSite(page.SearchPath))
	}
	if len(page.Breadcrumbs) > 0 {
		blocks = append(blocks, a.resolver.BreadcrumbList(page.Breadcrumbs))
	}
	a.writeHead(w, r, page.Meta, kind, blocks...)
}

func (a *app) handleCourseHead(w http.ResponseWriter, r *http.Request) {
	course, err := a.catalog.Course(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.catalogError(w, r, err)
		return
	}
	data, _ := a.resolver.StructuredData(course.Record())
	a.writeHead(w, r, course.Input(), string(seo.KindCourse), data)
}

func (a *app) handleJobHead(w http.ResponseWriter, r *http.Request) {
	job, err := a.catalog.Job(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.catalogError(w, r, err)
		return
	}
	data, _ := a.resolver.StructuredData(job.Record())
	a.writeHead(w, r, job.Input(), string(seo.KindJobPosting), data)
}

func (a *app) handleEventHead(w http.ResponseWriter, r *http.Request) {
	event, err := a.catalog.Event(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.catalogError(w, r, err)
		return
	}
	data, _ := a.resolver.StructuredData(event.Record())
	a.writeHead(w, r, event.Input(), string(seo.KindEvent), data)
}

// writeHead resolves in, logs any length warnings for the content author and
// writes the rendered head fragment.
func (a *app) writeHead(w http.ResponseWriter, r *http.Request, in seo.Input, kind string, blocks ...map[string]any) {
	if warnings := a.validate(in.Fields()); !warnings.Valid() {
		observability.FromContext(r.Context()).Info("seo length warnings", zap.Any("warnings", warnings))
	}
	a.metrics.IncResolution(kind)

	fragment, err := head.String(a.resolver.Resolve(in), blocks...)
	if err != nil {
		a.fail(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, fragment)
}

func (a *app) catalogError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("record_not_found", "record not found", http.StatusNotFound))
	case errors.Is(err, catalog.ErrDisabled):
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog backend not configured", http.StatusServiceUnavailable))
	default:
		observability.FromContext(ctx).Error("catalog fetch failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("catalog_error", "failed to load record", http.StatusBadGateway))
	}
}

func (a *app) fail(ctx context.Context, w http.ResponseWriter, err error) {
	observability.FromContext(ctx).Error("request failed", zap.Error(err))
	httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(v); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_json", err.Error(), http.StatusBadRequest))
		return false
	}
	return true
}
