// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SeedEditorEmail is the address of the development editor account.
const SeedEditorEmail = "redaction@newsdesk.local"

type seedCategory struct {
	name         string
	slug         string
	description  string
	color        string
	icon         string
	contentTypes []string
}

// defaultCategories are the sections of the site as they existed before
// categories were editable.
var defaultCategories = []seedCategory{
	{"Économie", "economie", "Conjoncture, croissance et politiques publiques", "#0f766e", "chart-line", []string{"article"}},
	{"Finance", "finance", "Marchés, banques et entreprises", "#1d4ed8", "landmark", []string{"article"}},
	{"Matières premières", "matieres-premieres", "Énergie, métaux et produits agricoles", "#b45309", "oil-can", []string{"article", "indice"}},
	{"Devises", "devises", "Taux de change et politique monétaire", "#7c3aed", "coins", []string{"article", "indice"}},
	{"Indices", "indices", "Indices boursiers et cotations", "#be123c", "chart-bar", []string{"indice"}},
	{"Podcasts", "podcasts", "Émissions et entretiens audio", "#0369a1", "microphone", []string{"podcast"}},
}

// Seed populates the database with initial development data: the default
// categories and one editor user. Existing rows are left untouched, so it
// is safe to call on every start.
func Seed(ctx context.Context, db *sql.DB) error {
	for i, c := range defaultCategories {
		_, err := db.ExecContext(ctx, `
			INSERT INTO categories (name, slug, description, color, icon, sort_order, content_types)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (slug) DO NOTHING
		`, c.name, c.slug, c.description, c.color, c.icon, i, c.contentTypes)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping users")
		return nil
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO users (email, display_name, role)
		VALUES ($1, $2, $3)
	`, SeedEditorEmail, "Rédaction", "editor")
	if err != nil {
		return fmt.Errorf("seed insert editor: %w", err)
	}

	slog.Info("database seeded with default categories and editor user", "email", SeedEditorEmail)
	return nil
}
