package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/models"
)

func TestCategoryStoreCRUD(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	slug := "test-category-" + testSuffix()
	created, err := s.Create(ctx, &models.Category{
		Name:         "Devises émergentes",
		Slug:         slug,
		Description:  "Réal, rand, roupie",
		Color:        "#7c3aed",
		Icon:         "coins",
		SortOrder:    4,
		IsActive:     true,
		ContentTypes: []models.ContentType{models.ContentTypeArticle, models.ContentTypeIndice},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", created.ID) })

	if len(created.ContentTypes) != 2 || created.ContentTypes[1] != models.ContentTypeIndice {
		t.Errorf("content types: got %v", created.ContentTypes)
	}

	found, err := s.FindBySlug(ctx, slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("FindBySlug: got %+v", found)
	}

	found.Name = "Devises"
	found.Slug = slug + "-renamed"
	found.IsActive = false
	updated, err := s.Update(ctx, found)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != slug+"-renamed" || updated.IsActive {
		t.Errorf("update: got %+v", updated)
	}

	if old, err := s.FindBySlug(ctx, slug); err != nil || old != nil {
		t.Errorf("old slug: got %v, %v", old, err)
	}

	missing, err := s.Update(ctx, &models.Category{ID: uuid.New(), Name: "x", Slug: "x-" + testSuffix()})
	if err != nil || missing != nil {
		t.Errorf("Update missing: got %v, %v", missing, err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if c, _ := s.FindByID(ctx, created.ID); c != nil {
		t.Error("expected nil after delete")
	}
}

func TestCategoryStoreDuplicateSlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	cat := testCategory(t, db, "Unique")

	_, err := s.Create(context.Background(), &models.Category{Name: "Copie", Slug: cat.Slug, IsActive: true})
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestCategoryStoreDeleteReferenced(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()
	cat := testCategory(t, db, "Référencée")

	slug := "test-ref-" + testSuffix()
	t.Cleanup(func() { cleanContent(t, db, slug) })
	if _, err := NewArticleStore(db).Create(ctx, newTestArticle(cat, uuid.New(), slug)); err != nil {
		t.Fatalf("create article: %v", err)
	}

	err := s.Delete(ctx, cat.ID)
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestCategoryStoreListFilters(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	active := testCategory(t, db, "Active articles")
	inactive, err := s.Create(ctx, &models.Category{
		Name: "Inactive", Slug: "test-inactive-" + testSuffix(), IsActive: false,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", inactive.ID) })

	has := func(items []models.Category, id uuid.UUID) bool {
		for _, c := range items {
			if c.ID == id {
				return true
			}
		}
		return false
	}

	all, err := s.List(ctx, models.CategoryFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !has(all, active.ID) || !has(all, inactive.ID) {
		t.Error("unfiltered list should include both categories")
	}

	onlyActive, err := s.List(ctx, models.CategoryFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if !has(onlyActive, active.ID) || has(onlyActive, inactive.ID) {
		t.Error("active filter mismatch")
	}

	podcast := models.ContentTypePodcast
	podcasts, err := s.List(ctx, models.CategoryFilter{ContentType: &podcast})
	if err != nil {
		t.Fatalf("List podcast: %v", err)
	}
	if has(podcasts, active.ID) {
		t.Error("article-only category listed for podcasts")
	}
	if !has(podcasts, inactive.ID) {
		t.Error("category without content types should apply to podcasts")
	}
}

func TestCategoryStoreReorder(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()
	a := testCategory(t, db, "A")
	b := testCategory(t, db, "B")

	err := s.Reorder(ctx, []models.ReorderItem{{ID: a.ID, Order: 90}, {ID: b.ID, Order: 91}})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	got, err := s.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SortOrder != 91 {
		t.Errorf("sort_order: got %d, want 91", got.SortOrder)
	}
}
