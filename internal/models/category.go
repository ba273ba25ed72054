// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a classification bucket referenced by content. The slug is
// unique and used in URLs and the legacy content.category column; the id is
// what foreign keys point at.
type Category struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	Color        string        `json:"color"`
	Icon         string        `json:"icon"`
	ParentID     *uuid.UUID    `json:"parent_id"`
	SortOrder    int           `json:"sort_order"`
	IsActive     bool          `json:"is_active"`
	ContentTypes []ContentType `json:"content_types"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// AppliesTo reports whether the category accepts content of type t. An
// empty set applies to every type.
func (c *Category) AppliesTo(t ContentType) bool {
	if len(c.ContentTypes) == 0 {
		return true
	}
	for _, ct := range c.ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// CategoryRef is the shallow projection joined onto listed content.
type CategoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color string    `json:"color"`
	Icon  string    `json:"icon"`
}

// CategoryInput is the payload for creating or replacing a category.
type CategoryInput struct {
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	Color        string        `json:"color"`
	Icon         string        `json:"icon"`
	ParentID     *uuid.UUID    `json:"parent_id"`
	SortOrder    int           `json:"sort_order"`
	IsActive     *bool         `json:"is_active"`
	ContentTypes []ContentType `json:"content_types"`
}

// CategoryFilter narrows a category listing.
type CategoryFilter struct {
	ActiveOnly  bool
	ContentType *ContentType
}

// ReorderItem represents a single item in a reorder request.
type ReorderItem struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}
