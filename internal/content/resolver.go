// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content is the single access point for reading and mutating
// articles and the categories they reference. Identifier classification,
// image normalization and category resolution all happen here, so callers
// never see raw storage rows.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/ident"
	"newsdesk/internal/models"
)

// SlugCache memoizes category slug→id lookups. Implementations must be safe
// for concurrent use.
type SlugCache interface {
	Get(ctx context.Context, slug string) (uuid.UUID, bool)
	Set(ctx context.Context, slug string, id uuid.UUID)
	Delete(ctx context.Context, slug string)
}

// CategoryLookup finds categories by id or slug. Both return (nil, nil)
// when no row matches.
type CategoryLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// CategoryResolver converts category references between their two forms:
// the id used by foreign keys and the slug used in URLs and the legacy
// content.category column.
type CategoryResolver struct {
	lookup CategoryLookup
	cache  SlugCache
}

// NewCategoryResolver returns a resolver backed by lookup. A nil cache
// disables memoization.
func NewCategoryResolver(lookup CategoryLookup, cache SlugCache) *CategoryResolver {
	if cache == nil {
		cache = noCache{}
	}
	return &CategoryResolver{lookup: lookup, cache: cache}
}

// ResolveToID returns the category id for ref. A UUID-shaped ref is assumed
// to already be an id and is returned without a lookup; anything else is a
// slug, served from the cache when possible.
func (r *CategoryResolver) ResolveToID(ctx context.Context, ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.Nil, apperr.Validationf("category reference is empty")
	}
	if id, ok := ident.Parse(ref); ok {
		return id, nil
	}
	if id, ok := r.cache.Get(ctx, ref); ok {
		return id, nil
	}

	slog.Debug("category slug cache miss", "slug", ref)
	c, err := r.lookup.FindBySlug(ctx, ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve category slug: %w", err)
	}
	if c == nil {
		return uuid.Nil, apperr.NotFoundf("category %q not found", ref)
	}

	r.cache.Set(ctx, ref, c.ID)
	return c.ID, nil
}

// ResolveToSlug returns the current slug of the category with the given id.
func (r *CategoryResolver) ResolveToSlug(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := r.lookup.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("resolve category id: %w", err)
	}
	if c == nil {
		return "", apperr.NotFoundf("category %s not found", id)
	}
	return c.Slug, nil
}

// Resolve returns both forms for ref in one call: the id to store in
// category_id and the slug for the legacy mirror column. An unresolvable
// reference is a validation failure from the writer's point of view.
func (r *CategoryResolver) Resolve(ctx context.Context, ref string) (uuid.UUID, string, error) {
	id, err := r.ResolveToID(ctx, ref)
	if err != nil {
		return uuid.Nil, "", asValidation(err, "unknown category %q", ref)
	}
	slug, err := r.ResolveToSlug(ctx, id)
	if err != nil {
		return uuid.Nil, "", asValidation(err, "unknown category %q", ref)
	}
	return id, slug, nil
}

// Forget evicts a slug, used when a category is renamed or removed.
func (r *CategoryResolver) Forget(ctx context.Context, slug string) {
	if slug != "" {
		r.cache.Delete(ctx, slug)
	}
}

// asValidation turns a NotFound into a Validation error; other errors pass through.
func asValidation(err error, format string, args ...any) error {
	if apperr.Is(err, apperr.NotFound) {
		return apperr.Wrap(apperr.Validation, err, fmt.Sprintf(format, args...))
	}
	return err
}

type noCache struct{}

func (noCache) Get(context.Context, string) (uuid.UUID, bool) { return uuid.Nil, false }
func (noCache) Set(context.Context, string, uuid.UUID)        {}
func (noCache) Delete(context.Context, string)                {}
