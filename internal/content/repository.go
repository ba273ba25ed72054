// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/ident"
	"newsdesk/internal/imageurl"
	"newsdesk/internal/markdown"
	"newsdesk/internal/models"
)

// ArticleStore is the storage backend for articles. Lookups return
// (nil, nil) when no row matches; Update and Increment report a missing
// row through their found result.
type ArticleStore interface {
	List(ctx context.Context, f models.ArticleFilter) ([]models.Article, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	Update(ctx context.Context, id uuid.UUID, ch models.ArticleChanges) (*models.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Increment(ctx context.Context, id uuid.UUID, c models.Counter) (int, bool, error)
}

// ListParams are the caller-facing list filters. Status "" or "all" means
// any status; Category may be an id or a slug.
type ListParams struct {
	Status   string
	Category string
	AuthorID *uuid.UUID
	Limit    int
	Offset   int
}

// Detail is the single-article read model: the article with its author and
// its dates rendered as canonical ISO-8601 strings in UTC.
type Detail struct {
	*models.Article
	PublishedAt   *string `json:"published_at"`
	PublishedDate *string `json:"published_date"`
	// ContentHTML is the body rendered from Markdown; nil without a body.
	ContentHTML *string `json:"content_html"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Repository reads and mutates articles.
type Repository struct {
	articles   ArticleStore
	categories *CategoryResolver
	images     *imageurl.Normalizer
	now        func() time.Time
}

// NewRepository wires a Repository from its collaborators.
func NewRepository(articles ArticleStore, categories *CategoryResolver, images *imageurl.Normalizer) *Repository {
	return &Repository{
		articles:   articles,
		categories: categories,
		images:     images,
		now:        time.Now,
	}
}

// List returns articles newest-created first, each with its category
// projection and a normalized featured image. A category slug that does
// not resolve yields an empty result, not an error.
func (r *Repository) List(ctx context.Context, p ListParams) ([]models.Article, error) {
	var f models.ArticleFilter

	if s := strings.TrimSpace(p.Status); s != "" && s != "all" {
		status := models.ContentStatus(s)
		if !status.Valid() {
			return nil, apperr.Validationf("unknown status %q", s)
		}
		f.Status = &status
	}

	if p.Category != "" {
		id, err := r.categories.ResolveToID(ctx, p.Category)
		if apperr.Is(err, apperr.NotFound) {
			return []models.Article{}, nil
		}
		if err != nil {
			return nil, err
		}
		f.CategoryID = &id
	}

	if p.Limit < 0 || p.Offset < 0 {
		return nil, apperr.Validationf("limit and offset must not be negative")
	}
	f.AuthorID = p.AuthorID
	f.Limit = p.Limit
	f.Offset = p.Offset

	items, err := r.articles.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Article{}
	}
	for i := range items {
		r.normalize(&items[i])
	}
	return items, nil
}

// Get looks an article up by id when ref is UUID-shaped, otherwise by slug.
func (r *Repository) Get(ctx context.Context, ref string) (*Detail, error) {
	var (
		a   *models.Article
		err error
	)
	if id, ok := ident.Parse(ref); ok {
		a, err = r.articles.FindByID(ctx, id)
	} else {
		a, err = r.articles.FindBySlug(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFoundf("article %q not found", ref)
	}

	r.normalize(a)
	if a.Author == nil {
		a.Author = &models.Author{ID: a.AuthorID}
	} else {
		a.Author.AvatarURL = r.images.NormalizePtr(a.Author.AvatarURL)
	}
	return newDetail(a), nil
}

// Create inserts a new article authored by callerID.
func (r *Repository) Create(ctx context.Context, in models.ArticleInput, callerID uuid.UUID) (*models.Article, error) {
	if callerID == uuid.Nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}

	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := validateSummary(in.Summary); err != nil {
		return nil, err
	}
	if in.Content != nil {
		if err := validateBody(*in.Content); err != nil {
			return nil, err
		}
	}
	tags, err := validateTags(in.Tags)
	if err != nil {
		return nil, err
	}
	articleSlug, err := deriveSlug(in.Slug, title)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ContentStatusDraft
	}
	if !status.Valid() {
		return nil, apperr.Validationf("unknown status %q", status)
	}

	categoryID, categorySlug, err := r.categories.Resolve(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	a := &models.Article{
		Type:           models.ContentTypeArticle,
		Title:          title,
		Slug:           articleSlug,
		Summary:        strings.TrimSpace(in.Summary),
		Content:        in.Content,
		Status:         status,
		CategoryID:     categoryID,
		LegacyCategory: categorySlug,
		AuthorID:       callerID,
		Tags:           tags,
		FeaturedImage:  blankToNil(in.FeaturedImage),
	}
	if in.Content != nil {
		a.ReadTime = ReadTime(*in.Content)
	}
	if status == models.ContentStatusPublished {
		now := r.now()
		a.PublishedAt = &now
	}

	created, err := r.articles.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	slog.Info("article created", "id", created.ID, "slug", created.Slug, "author", callerID)

	r.normalize(created)
	return created, nil
}

// Update applies a partial update to the article with the given id.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch models.ArticlePatch, callerID uuid.UUID) (*models.Article, error) {
	if callerID == uuid.Nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}
	if patch.Empty() {
		return nil, apperr.Validationf("no fields to update")
	}

	current, err := r.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFoundf("article %s not found", id)
	}

	ch, err := r.changes(ctx, current, patch)
	if err != nil {
		return nil, err
	}

	updated, err := r.articles.Update(ctx, id, ch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFoundf("article %s not found", id)
	}
	slog.Info("article updated", "id", id, "by", callerID)

	r.normalize(updated)
	return updated, nil
}

// changes turns a caller patch into column writes, resolving the category
// and deriving published_at and read_time.
func (r *Repository) changes(ctx context.Context, current *models.Article, p models.ArticlePatch) (models.ArticleChanges, error) {
	var ch models.ArticleChanges

	if p.Title != nil {
		title, err := validateTitle(*p.Title)
		if err != nil {
			return ch, err
		}
		ch.Title = &title
	}
	if p.Slug != nil {
		s, err := deriveSlug(*p.Slug, "")
		if err != nil {
			return ch, err
		}
		ch.Slug = &s
	}
	if p.Summary != nil {
		if err := validateSummary(*p.Summary); err != nil {
			return ch, err
		}
		summary := strings.TrimSpace(*p.Summary)
		ch.Summary = &summary
	}
	if p.Content != nil {
		if err := validateBody(*p.Content); err != nil {
			return ch, err
		}
		rt := ReadTime(*p.Content)
		ch.Content = p.Content
		ch.ReadTime = &rt
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return ch, apperr.Validationf("unknown status %q", *p.Status)
		}
		ch.Status = p.Status
		// published_at is stamped once and never cleared on unpublish.
		if *p.Status == models.ContentStatusPublished && current.PublishedAt == nil {
			now := r.now()
			ch.PublishedAt = &now
		}
	}
	if p.CategoryID != nil {
		id, categorySlug, err := r.categories.Resolve(ctx, *p.CategoryID)
		if err != nil {
			return ch, err
		}
		ch.CategoryID = &id
		ch.LegacyCategory = &categorySlug
	}
	if p.Tags != nil {
		tags, err := validateTags(*p.Tags)
		if err != nil {
			return ch, err
		}
		ch.Tags = &tags
	}
	if p.FeaturedImage != nil {
		ch.FeaturedImage = p.FeaturedImage
	}
	return ch, nil
}

// Delete removes the article with the given id. Deleting a missing id is
// not distinguished from success.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return apperr.Unauthorizedf("authentication required")
	}
	if err := r.articles.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("article deleted", "id", id, "by", callerID)
	return nil
}

// Increment bumps one engagement counter and returns its new value.
func (r *Repository) Increment(ctx context.Context, id uuid.UUID, c models.Counter) (int, error) {
	if !c.Valid() {
		return 0, apperr.Validationf("unknown counter %q", c)
	}
	n, found, err := r.articles.Increment(ctx, id, c)
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", c, err)
	}
	if !found {
		return 0, apperr.NotFoundf("article %s not found", id)
	}
	return n, nil
}

// normalize rewrites stored image references into public URLs.
func (r *Repository) normalize(a *models.Article) {
	a.FeaturedImage = r.images.NormalizePtr(a.FeaturedImage)
	if a.Tags == nil {
		a.Tags = []string{}
	}
}

func newDetail(a *models.Article) *Detail {
	d := &Detail{
		Article:   a,
		CreatedAt: isoDateTime(a.CreatedAt),
		UpdatedAt: isoDateTime(a.UpdatedAt),
	}
	if a.PublishedAt != nil {
		dt := isoDateTime(*a.PublishedAt)
		date := a.PublishedAt.UTC().Format(time.DateOnly)
		d.PublishedAt = &dt
		d.PublishedDate = &date
	}
	if a.Content != nil && *a.Content != "" {
		if html, err := markdown.ToHTML(*a.Content); err != nil {
			slog.Warn("render article body", "id", a.ID, "error", err)
		} else {
			d.ContentHTML = &html
		}
	}
	return d
}

func isoDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// blankToNil treats an empty optional string as absent.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
