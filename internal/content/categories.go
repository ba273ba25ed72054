// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/ident"
	"newsdesk/internal/models"
)

// CategoryStore is the storage backend for categories. FindByID, FindBySlug
// and Update return (nil, nil) when no row matches.
type CategoryStore interface {
	CategoryLookup
	List(ctx context.Context, f models.CategoryFilter) ([]models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

// Categories manages the category catalogue and keeps the slug cache in
// step with renames and deletions made through it.
type Categories struct {
	store    CategoryStore
	resolver *CategoryResolver
}

// NewCategories returns a category service. resolver should share the
// cache used by the article repository.
func NewCategories(store CategoryStore, resolver *CategoryResolver) *Categories {
	return &Categories{store: store, resolver: resolver}
}

// List returns categories ordered by sort_order then name.
func (s *Categories) List(ctx context.Context, f models.CategoryFilter) ([]models.Category, error) {
	if f.ContentType != nil && !f.ContentType.Valid() {
		return nil, apperr.Validationf("unknown content type %q", *f.ContentType)
	}
	items, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Category{}
	}
	return items, nil
}

// Get returns the category identified by an id or a slug.
func (s *Categories) Get(ctx context.Context, ref string) (*models.Category, error) {
	var (
		c   *models.Category
		err error
	)
	if id, ok := ident.Parse(ref); ok {
		c, err = s.store.FindByID(ctx, id)
	} else {
		c, err = s.store.FindBySlug(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("category %q not found", ref)
	}
	return c, nil
}

// Create adds a category. The slug is derived from the name when absent.
func (s *Categories) Create(ctx context.Context, in models.CategoryInput, callerID uuid.UUID) (*models.Category, error) {
	if callerID == uuid.Nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}
	c, err := categoryFromInput(in)
	if err != nil {
		return nil, err
	}
	created, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	slog.Info("category created", "id", created.ID, "slug", created.Slug, "by", callerID)
	return created, nil
}

// Update replaces a category's attributes. Both the old and the new slug are
// evicted from the slug cache.
func (s *Categories) Update(ctx context.Context, id uuid.UUID, in models.CategoryInput, callerID uuid.UUID) (*models.Category, error) {
	if callerID == uuid.Nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFoundf("category %s not found", id)
	}

	c, err := categoryFromInput(in)
	if err != nil {
		return nil, err
	}
	if c.ParentID != nil && *c.ParentID == id {
		return nil, apperr.Validationf("a category cannot be its own parent")
	}
	c.ID = id

	updated, err := s.store.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFoundf("category %s not found", id)
	}

	s.resolver.Forget(ctx, current.Slug)
	s.resolver.Forget(ctx, updated.Slug)
	slog.Info("category updated", "id", id, "slug", updated.Slug, "by", callerID)
	return updated, nil
}

// Delete removes a category. The store refuses while content references it.
func (s *Categories) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return apperr.Unauthorizedf("authentication required")
	}
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if current != nil {
		s.resolver.Forget(ctx, current.Slug)
	}
	slog.Info("category deleted", "id", id, "by", callerID)
	return nil
}

// Reorder updates sort_order for several categories at once.
func (s *Categories) Reorder(ctx context.Context, items []models.ReorderItem, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return apperr.Unauthorizedf("authentication required")
	}
	if len(items) == 0 {
		return apperr.Validationf("no categories to reorder")
	}
	return s.store.Reorder(ctx, items)
}

func categoryFromInput(in models.CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return nil, apperr.Validationf("name is too long (max 100 characters)")
	}
	categorySlug, err := deriveSlug(in.Slug, name)
	if err != nil {
		return nil, err
	}
	for _, ct := range in.ContentTypes {
		if !ct.Valid() {
			return nil, apperr.Validationf("unknown content type %q", ct)
		}
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	types := in.ContentTypes
	if types == nil {
		types = []models.ContentType{}
	}

	return &models.Category{
		Name:         name,
		Slug:         categorySlug,
		Description:  strings.TrimSpace(in.Description),
		Color:        strings.TrimSpace(in.Color),
		Icon:         strings.TrimSpace(in.Icon),
		ParentID:     in.ParentID,
		SortOrder:    in.SortOrder,
		IsActive:     active,
		ContentTypes: types,
	}, nil
}
