package database

import (
	"context"
	"testing"

	"newsdesk/internal/slug"
)

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only inserts what is missing. We don't clear the database first
	// because other test packages may be running concurrently against it.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	for _, c := range defaultCategories {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE slug = $1", c.slug).Scan(&count); err != nil {
			t.Fatalf("count category %s: %v", c.slug, err)
		}
		if count != 1 {
			t.Errorf("category %s: got %d rows, want 1", c.slug, count)
		}
	}

	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount < 1 {
		t.Errorf("expected at least 1 user, got %d", userCount)
	}
}

func TestDefaultCategorySlugs(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range defaultCategories {
		if seen[c.slug] {
			t.Errorf("duplicate slug %q", c.slug)
		}
		seen[c.slug] = true
		if got := slug.Generate(c.name); got != c.slug {
			t.Errorf("%s: slug derived from name is %q", c.slug, got)
		}
		if len(c.contentTypes) == 0 {
			t.Errorf("%s: expected at least one content type", c.slug)
		}
	}
	for _, want := range []string{"economie", "finance", "matieres-premieres", "devises", "indices", "podcasts"} {
		if !seen[want] {
			t.Errorf("missing default category %q", want)
		}
	}
}
