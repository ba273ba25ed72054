// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes articles, podcasts and index entries in the
// unified content table.
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypePodcast ContentType = "podcast"
	ContentTypeIndice  ContentType = "indice"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeArticle, ContentTypePodcast, ContentTypeIndice:
		return true
	}
	return false
}

// ContentStatus represents the publishing state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusReview    ContentStatus = "review"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// Valid reports whether s is one of the known statuses. Transitions between
// statuses are not restricted.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusReview, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// Counter names one of the engagement counters on a content row.
type Counter string

const (
	CounterViews  Counter = "views"
	CounterLikes  Counter = "likes"
	CounterShares Counter = "shares"
)

// Valid reports whether c names a known counter column.
func (c Counter) Valid() bool {
	switch c {
	case CounterViews, CounterLikes, CounterShares:
		return true
	}
	return false
}

// Article is a row of the content table with type "article".
//
// LegacyCategory mirrors the slug of CategoryID. It exists only because the
// schema still declares the "category" column NOT NULL; the repository
// derives it on every write and nothing else should set it.
type Article struct {
	ID             uuid.UUID     `json:"id"`
	Type           ContentType   `json:"type"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Summary        string        `json:"summary"`
	Content        *string       `json:"content"`
	Status         ContentStatus `json:"status"`
	CategoryID     uuid.UUID     `json:"category_id"`
	LegacyCategory string        `json:"category"`
	AuthorID       uuid.UUID     `json:"author_id"`
	Tags           []string      `json:"tags"`
	FeaturedImage  *string       `json:"featured_image"`
	PublishedAt    *time.Time    `json:"published_at"`
	Views          int           `json:"views"`
	Likes          int           `json:"likes"`
	Shares         int           `json:"shares"`
	ReadTime       int           `json:"read_time"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Read-only projections populated by store joins.
	CategoryRef *CategoryRef `json:"category_ref,omitempty"`
	Author      *Author      `json:"author,omitempty"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ContentStatusPublished
}

// ArticleInput is the payload accepted by the create operation. CategoryID
// may carry either the category's id or its slug.
type ArticleInput struct {
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Summary       string        `json:"summary"`
	Content       *string       `json:"content"`
	Status        ContentStatus `json:"status"`
	CategoryID    string        `json:"category_id"`
	Tags          []string      `json:"tags"`
	FeaturedImage *string       `json:"featured_image"`

	// AuthorID is accepted on the wire but never used: the author is always
	// the authenticated caller.
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
}

// ArticlePatch is a partial update. Nil fields are left untouched. Derived
// and storage-managed columns (counters, joins, created_at, updated_at,
// author_id, read_time, published_at) have no field here and are dropped
// when a payload is decoded.
type ArticlePatch struct {
	Title         *string        `json:"title"`
	Slug          *string        `json:"slug"`
	Summary       *string        `json:"summary"`
	Content       *string        `json:"content"`
	Status        *ContentStatus `json:"status"`
	CategoryID    *string        `json:"category_id"`
	Tags          *[]string      `json:"tags"`
	FeaturedImage *string        `json:"featured_image"`
}

// Empty reports whether the patch changes nothing.
func (p *ArticlePatch) Empty() bool {
	return p.Title == nil && p.Slug == nil && p.Summary == nil && p.Content == nil &&
		p.Status == nil && p.CategoryID == nil && p.Tags == nil && p.FeaturedImage == nil
}

// ArticleChanges is the set of column writes the repository hands to the
// store after resolving and deriving fields. Nil means "leave as is".
type ArticleChanges struct {
	Title          *string
	Slug           *string
	Summary        *string
	Content        *string
	Status         *ContentStatus
	CategoryID     *uuid.UUID
	LegacyCategory *string
	Tags           *[]string
	FeaturedImage  *string
	PublishedAt    *time.Time
	ReadTime       *int
}

// ArticleFilter narrows a list query. A nil field means no constraint;
// Limit <= 0 means no limit.
type ArticleFilter struct {
	Status     *ContentStatus
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Limit      int
	Offset     int
}
