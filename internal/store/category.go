// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"newsdesk/internal/apperr"
	"newsdesk/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db    *sql.DB
	types *pgtype.Map
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db, types: pgtype.NewMap()}
}

const categoryColumns = `id, name, slug, description, color, icon, parent_id, sort_order,
	is_active, content_types, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func (s *CategoryStore) scanCategory(row rowScanner) (*models.Category, error) {
	var (
		c     models.Category
		types []string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.Icon,
		&c.ParentID, &c.SortOrder, &c.IsActive, s.types.SQLScanner(&types),
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ContentTypes = make([]models.ContentType, len(types))
	for i, t := range types {
		c.ContentTypes[i] = models.ContentType(t)
	}
	return &c, nil
}

func contentTypeArg(types []models.ContentType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// List returns categories ordered by sort_order, then name. A category with
// no content types applies to every type.
func (s *CategoryStore) List(ctx context.Context, f models.CategoryFilter) ([]models.Category, error) {
	var contentType any
	if f.ContentType != nil {
		contentType = string(*f.ContentType)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE (NOT $1 OR is_active)
		  AND ($2::text IS NULL OR cardinality(content_types) = 0 OR $2::text = ANY(content_types))
		ORDER BY sort_order, name
	`, f.ActiveOnly, contentType)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := s.scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := s.scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := s.scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, color, icon, parent_id,
		                        sort_order, is_active, content_types)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Color, c.Icon, c.ParentID,
		c.SortOrder, c.IsActive, contentTypeArg(c.ContentTypes),
	)
	result, err := s.scanCategory(row)
	if err != nil {
		return nil, categoryWriteError("create category", err)
	}
	return result, nil
}

// Update replaces the attributes of an existing category and returns it.
// Returns nil if not found.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, color = $4, icon = $5,
			parent_id = $6, sort_order = $7, is_active = $8, content_types = $9
		WHERE id = $10
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Color, c.Icon, c.ParentID,
		c.SortOrder, c.IsActive, contentTypeArg(c.ContentTypes), c.ID,
	)
	result, err := s.scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, categoryWriteError("update category", err)
	}
	return result, nil
}

// Delete removes a category by ID. Children are re-parented (ON DELETE SET
// NULL); a category still referenced by content cannot be deleted.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if pgCode(err) == codeForeignKeyViolation {
		return apperr.Wrap(apperr.Conflict, err, "category is still referenced by content")
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Reorder updates sort_order for multiple categories in a transaction.
func (s *CategoryStore) Reorder(ctx context.Context, items []models.ReorderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE categories SET sort_order = $1 WHERE id = $2`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.Order, item.ID); err != nil {
			return fmt.Errorf("reorder category %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// categoryWriteError translates constraint violations on category writes.
func categoryWriteError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return apperr.Wrap(apperr.Conflict, err, "a category with this slug already exists")
	case codeForeignKeyViolation:
		return apperr.Wrap(apperr.Validation, err, "parent category does not exist")
	}
	return fmt.Errorf("%s: %w", op, err)
}
