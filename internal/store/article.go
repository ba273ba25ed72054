// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"newsdesk/internal/apperr"
	"newsdesk/internal/models"
)

// ArticleStore handles article rows of the unified content table.
type ArticleStore struct {
	db    *sql.DB
	types *pgtype.Map
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db, types: pgtype.NewMap()}
}

// articleColumns are selected with the content table aliased as c.
const articleColumns = `c.id, c.type, c.title, c.slug, c.summary, c.content, c.status,
	c.category_id, c.category, c.author_id, c.tags, c.featured_image, c.published_at,
	c.views, c.likes, c.shares, c.read_time, c.created_at, c.updated_at`

// categoryRefColumns project the joined category as cat.
const categoryRefColumns = `cat.id, cat.name, cat.slug, cat.color, cat.icon`

// authorColumns project the joined user as u.
const authorColumns = `u.id, u.display_name, u.avatar_url`

func (s *ArticleStore) scanArticle(row rowScanner, extra ...any) (*models.Article, error) {
	var a models.Article
	dest := []any{
		&a.ID, &a.Type, &a.Title, &a.Slug, &a.Summary, &a.Content, &a.Status,
		&a.CategoryID, &a.LegacyCategory, &a.AuthorID, s.types.SQLScanner(&a.Tags),
		&a.FeaturedImage, &a.PublishedAt,
		&a.Views, &a.Likes, &a.Shares, &a.ReadTime, &a.CreatedAt, &a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &a, nil
}

// joinedCategory receives the nullable columns of the category join.
type joinedCategory struct {
	id    uuid.NullUUID
	name  sql.NullString
	slug  sql.NullString
	color sql.NullString
	icon  sql.NullString
}

func (j *joinedCategory) dest() []any {
	return []any{&j.id, &j.name, &j.slug, &j.color, &j.icon}
}

func (j *joinedCategory) ref() *models.CategoryRef {
	if !j.id.Valid {
		return nil
	}
	return &models.CategoryRef{
		ID: j.id.UUID, Name: j.name.String, Slug: j.slug.String,
		Color: j.color.String, Icon: j.icon.String,
	}
}

// joinedAuthor receives the nullable columns of the users join.
type joinedAuthor struct {
	id     uuid.NullUUID
	name   sql.NullString
	avatar sql.NullString
}

func (j *joinedAuthor) dest() []any {
	return []any{&j.id, &j.name, &j.avatar}
}

func (j *joinedAuthor) author() *models.Author {
	if !j.id.Valid {
		return nil
	}
	a := &models.Author{ID: j.id.UUID, Name: j.name.String}
	if j.avatar.Valid {
		v := j.avatar.String
		a.AvatarURL = &v
	}
	return a
}

// List returns articles matching f, newest first, each with its category
// projection.
func (s *ArticleStore) List(ctx context.Context, f models.ArticleFilter) ([]models.Article, error) {
	where := []string{"c.type = 'article'"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Status != nil {
		where = append(where, "c.status = "+arg(*f.Status))
	}
	if f.CategoryID != nil {
		where = append(where, "c.category_id = "+arg(*f.CategoryID))
	}
	if f.AuthorID != nil {
		where = append(where, "c.author_id = "+arg(*f.AuthorID))
	}

	query := `SELECT ` + articleColumns + `, ` + categoryRefColumns + `
		FROM content c
		LEFT JOIN categories cat ON cat.id = c.category_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY c.created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	items := []models.Article{}
	for rows.Next() {
		var cat joinedCategory
		a, err := s.scanArticle(rows, cat.dest()...)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.CategoryRef = cat.ref()
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return items, nil
}

// findOne reads a single article with its category and author joins.
func (s *ArticleStore) findOne(ctx context.Context, column string, value any) (*models.Article, error) {
	var (
		cat    joinedCategory
		author joinedAuthor
	)
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+`, `+categoryRefColumns+`, `+authorColumns+`
		FROM content c
		LEFT JOIN categories cat ON cat.id = c.category_id
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.`+column+` = $1 AND c.type = 'article'`, value)

	a, err := s.scanArticle(row, append(cat.dest(), author.dest()...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.CategoryRef = cat.ref()
	a.Author = author.author()
	return a, nil
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a, err := s.findOne(ctx, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindBySlug retrieves an article by its slug, whatever its status.
// Returns nil if not found.
func (s *ArticleStore) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	a, err := s.findOne(ctx, "slug", slug)
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// Create inserts a new article and returns it with the generated ID and
// timestamps.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO content AS c (type, title, slug, summary, content, status,
		                          category_id, category, author_id, tags,
		                          featured_image, published_at, read_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+articleColumns,
		models.ContentTypeArticle, a.Title, a.Slug, a.Summary, a.Content, a.Status,
		a.CategoryID, a.LegacyCategory, a.AuthorID, tags,
		nullIfEmpty(a.FeaturedImage), a.PublishedAt, a.ReadTime,
	)
	created, err := s.scanArticle(row)
	if err != nil {
		return nil, writeError("create article", err)
	}
	return created, nil
}

// Update writes the non-nil fields of ch to the article with the given id
// and returns the updated row. Returns nil if not found. updated_at is
// maintained by the database.
func (s *ArticleStore) Update(ctx context.Context, id uuid.UUID, ch models.ArticleChanges) (*models.Article, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if ch.Title != nil {
		set("title", *ch.Title)
	}
	if ch.Slug != nil {
		set("slug", *ch.Slug)
	}
	if ch.Summary != nil {
		set("summary", *ch.Summary)
	}
	if ch.Content != nil {
		set("content", *ch.Content)
	}
	if ch.Status != nil {
		set("status", *ch.Status)
	}
	if ch.CategoryID != nil {
		set("category_id", *ch.CategoryID)
	}
	if ch.LegacyCategory != nil {
		set("category", *ch.LegacyCategory)
	}
	if ch.Tags != nil {
		tags := *ch.Tags
		if tags == nil {
			tags = []string{}
		}
		set("tags", tags)
	}
	if ch.FeaturedImage != nil {
		set("featured_image", nullIfEmpty(ch.FeaturedImage))
	}
	if ch.PublishedAt != nil {
		// First publication wins, even against a concurrent publish that
		// read the row before this one landed.
		args = append(args, *ch.PublishedAt)
		sets = append(sets, fmt.Sprintf("published_at = COALESCE(c.published_at, $%d)", len(args)))
	}
	if ch.ReadTime != nil {
		set("read_time", *ch.ReadTime)
	}

	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}

	args = append(args, id)
	row := s.db.QueryRowContext(ctx, `
		UPDATE content AS c SET `+strings.Join(sets, ", ")+`
		WHERE c.id = $`+fmt.Sprint(len(args))+` AND c.type = 'article'
		RETURNING `+articleColumns, args...)

	updated, err := s.scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, writeError("update article", err)
	}
	return updated, nil
}

// Delete removes an article by ID. Deleting a missing row is not an error.
func (s *ArticleStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1 AND type = 'article'`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// counterColumns maps counters to their column names.
var counterColumns = map[models.Counter]string{
	models.CounterViews:  "views",
	models.CounterLikes:  "likes",
	models.CounterShares: "shares",
}

// Increment atomically adds one to a counter and returns its new value.
// found is false when no article has the given id.
func (s *ArticleStore) Increment(ctx context.Context, id uuid.UUID, c models.Counter) (int, bool, error) {
	column, ok := counterColumns[c]
	if !ok {
		return 0, false, fmt.Errorf("unknown counter %q", c)
	}

	var n int
	err := s.db.QueryRowContext(ctx, `
		UPDATE content SET `+column+` = `+column+` + 1
		WHERE id = $1 AND type = 'article'
		RETURNING `+column, id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("increment %s: %w", column, err)
	}
	return n, true, nil
}

// writeError translates constraint violations on content writes.
func writeError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return apperr.Wrap(apperr.Conflict, err, "an article with this slug already exists")
	case codeForeignKeyViolation:
		return apperr.Wrap(apperr.Validation, err, "referenced category does not exist")
	case codeCheckViolation:
		return apperr.Wrap(apperr.Validation, err, "a field has a value outside its allowed set")
	}
	return fmt.Errorf("%s: %w", op, err)
}
