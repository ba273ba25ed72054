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
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
)

// CategoryService is the category catalogue as the handlers see it.
type CategoryService interface {
	List(ctx context.Context, f models.CategoryFilter) ([]models.Category, error)
	Get(ctx context.Context, ref string) (*models.Category, error)
	Create(ctx context.Context, in models.CategoryInput, callerID uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, in models.CategoryInput, callerID uuid.UUID) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
	Reorder(ctx context.Context, items []models.ReorderItem, callerID uuid.UUID) error
}

// Categories groups the category endpoints.
type Categories struct {
	svc CategoryService
}

// NewCategories creates the category handler group.
func NewCategories(svc CategoryService) *Categories {
	return &Categories{svc: svc}
}

// List handles GET /api/categories?type=&active=.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f models.CategoryFilter
	if t := q.Get("type"); t != "" {
		ct := models.ContentType(t)
		f.ContentType = &ct
	}
	if a := q.Get("active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			writeError(w, r, apperr.Validationf("active must be true or false"))
			return
		}
		f.ActiveOnly = active
	}

	items, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Get handles GET /api/categories/{id}; the segment may also be a slug.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c, "")
}

// Create handles POST /api/categories.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.Create(r.Context(), in, middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, c, "category created")
}

// Update handles PUT /api/categories/{id}.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.Update(r.Context(), id, in, middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c, "category updated")
}

// Delete handles DELETE /api/categories/{id}.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id, middleware.CallerFromCtx(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, nil, "category deleted")
}

// Reorder handles POST /api/categories/reorder with a body of
// [{"id": "...", "order": 0}, ...].
func (h *Categories) Reorder(w http.ResponseWriter, r *http.Request) {
	var items []models.ReorderItem
	if err := decodeJSON(w, r, &items); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Reorder(r.Context(), items, middleware.CallerFromCtx(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, nil, "categories reordered")
}
