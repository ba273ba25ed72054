// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"math"
	"strings"
	"unicode/utf8"

	"newsdesk/internal/apperr"
	"newsdesk/internal/ident"
	"newsdesk/internal/slug"
)

// Validation limits for article and category fields.
const (
	maxTitleLen        = 300
	maxSummaryLen      = 1_000
	maxContentLen      = 500_000
	maxTags            = 50
	maxCategoryNameLen = 100

	// wordsPerMinute is the reading speed used for read_time.
	wordsPerMinute = 200
)

// ReadTime returns the estimated reading time in minutes for content:
// the word count divided by 200, rounded up.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// validateTitle trims and checks an article title.
func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.Validationf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", apperr.Validationf("title is too long (max 300 characters)")
	}
	return title, nil
}

// validateSummary checks the summary length.
func validateSummary(summary string) error {
	if utf8.RuneCountInString(summary) > maxSummaryLen {
		return apperr.Validationf("summary is too long (max 1,000 characters)")
	}
	return nil
}

// validateBody checks the long-form content length.
func validateBody(body string) error {
	if utf8.RuneCountInString(body) > maxContentLen {
		return apperr.Validationf("content is too long (max 500,000 characters)")
	}
	return nil
}

// validateTags trims tags and drops empty ones, keeping order.
func validateTags(tags []string) ([]string, error) {
	if len(tags) > maxTags {
		return nil, apperr.Validationf("too many tags (max 50)")
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// deriveSlug normalizes an explicit slug, or derives one from fallback
// (the title or name) when explicit is blank.
func deriveSlug(explicit, fallback string) (string, error) {
	source := explicit
	if strings.TrimSpace(source) == "" {
		source = fallback
	}
	s := slug.Generate(source)
	if s == "" {
		return "", apperr.Validationf("could not derive a URL-safe slug from %q", source)
	}
	// A UUID-shaped slug would be routed to id lookups.
	if ident.IsUUID(s) {
		return "", apperr.Validationf("slug %q must not have the shape of an id", s)
	}
	return s, nil
}
