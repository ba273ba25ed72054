// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/content"
	"newsdesk/internal/ident"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
)

// ArticleService is the subset of the content repository the handlers use.
type ArticleService interface {
	List(ctx context.Context, p content.ListParams) ([]models.Article, error)
	Get(ctx context.Context, ref string) (*content.Detail, error)
	Create(ctx context.Context, in models.ArticleInput, callerID uuid.UUID) (*models.Article, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ArticlePatch, callerID uuid.UUID) (*models.Article, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
	Increment(ctx context.Context, id uuid.UUID, c models.Counter) (int, error)
}

// Articles groups the article endpoints.
type Articles struct {
	svc ArticleService
}

// NewArticles creates the article handler group.
func NewArticles(svc ArticleService) *Articles {
	return &Articles{svc: svc}
}

// List handles GET /api/articles?status=&category=&author=&limit=&offset=.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := content.ListParams{
		Status:   q.Get("status"),
		Category: q.Get("category"),
	}

	var err error
	if p.Limit, err = queryInt(q.Get("limit"), "limit"); err != nil {
		writeError(w, r, err)
		return
	}
	if p.Offset, err = queryInt(q.Get("offset"), "offset"); err != nil {
		writeError(w, r, err)
		return
	}
	if a := q.Get("author"); a != "" {
		id, ok := ident.Parse(a)
		if !ok {
			writeError(w, r, apperr.Validationf("author must be an id"))
			return
		}
		p.AuthorID = &id
	}

	items, err := h.svc.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Get handles GET /api/articles/{id}, where the path segment is an id or
// a slug.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, d, "")
}

// Create handles POST /api/articles. The author is always the caller.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ArticleInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), in, middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, a, "article created")
}

// Update handles PUT and PATCH /api/articles/{id}. Both are partial: only
// the fields present in the body change.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.ArticlePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := h.svc.Update(r.Context(), id, patch, middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, a, "article updated")
}

// Delete handles DELETE /api/articles/{id}.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id, middleware.CallerFromCtx(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, nil, "article deleted")
}

// counterResult is the body of a successful increment.
type counterResult struct {
	ID      uuid.UUID      `json:"id"`
	Counter models.Counter `json:"counter"`
	Value   int            `json:"value"`
}

// Increment handles POST /api/articles/{id}/{counter}.
func (h *Articles) Increment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c := models.Counter(chi.URLParam(r, "counter"))

	n, err := h.svc.Increment(r.Context(), id, c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, counterResult{ID: id, Counter: c, Value: n}, "")
}

// pathID parses the {id} URL parameter, writing a 400 when it is not an id.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, ok := ident.Parse(raw)
	if !ok {
		writeError(w, r, apperr.Validationf("%q is not a valid id", raw))
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validationf("%s must be a non-negative integer", name)
	}
	return n, nil
}
