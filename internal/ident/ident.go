// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ident classifies lookup references as durable UUID identifiers or
// human-readable slugs. Every boundary that accepts "id or slug" goes
// through IsUUID so the two never get misrouted.
package ident

import (
	"regexp"

	"github.com/google/uuid"
)

// uuidPattern is the canonical 8-4-4-4-12 hex form. uuid.Parse alone is too
// lenient here: it also accepts braces, URNs and the unhyphenated form.
var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUUID reports whether s is a canonically formatted UUID (case-insensitive).
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// Parse returns the UUID for s when IsUUID(s) holds.
func Parse(s string) (uuid.UUID, bool) {
	if !IsUUID(s) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
