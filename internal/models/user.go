// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"github.com/google/uuid"
)

// Role represents a newsroom user's permission level. Users are managed by
// the external auth provider; this service only reads them for bylines.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleAuthor Role = "author"
)

// Author is the byline projection of a user joined onto a single article.
// Name and AvatarURL are empty when no user row matches the author id.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
}
