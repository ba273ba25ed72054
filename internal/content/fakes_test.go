package content

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/cache"
	"newsdesk/internal/imageurl"
	"newsdesk/internal/models"
)

const testStorageURL = "https://xyz.supabase.co"

// fakeCategories is an in-memory CategoryStore that counts slug lookups.
type fakeCategories struct {
	mu          sync.Mutex
	byID        map[uuid.UUID]models.Category
	slugLookups int
	idLookups   int
	deleteErr   error
}

func newFakeCategories(cats ...models.Category) *fakeCategories {
	f := &fakeCategories{byID: make(map[uuid.UUID]models.Category)}
	for _, c := range cats {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCategories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idLookups++
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCategories) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slugLookups++
	for _, c := range f.byID {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) List(_ context.Context, flt models.CategoryFilter) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Category
	for _, c := range f.byID {
		if flt.ActiveOnly && !c.IsActive {
			continue
		}
		if flt.ContentType != nil && !c.AppliesTo(*flt.ContentType) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Slug == c.Slug {
			return nil, apperr.Conflictf("a category with this slug already exists")
		}
	}
	created := *c
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.byID[created.ID] = created
	return &created, nil
}

func (f *fakeCategories) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[c.ID]; !ok {
		return nil, nil
	}
	updated := *c
	f.byID[c.ID] = updated
	return &updated, nil
}

func (f *fakeCategories) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCategories) Reorder(_ context.Context, items []models.ReorderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range items {
		c, ok := f.byID[it.ID]
		if !ok {
			continue
		}
		c.SortOrder = it.Order
		f.byID[it.ID] = c
	}
	return nil
}

// fakeArticles is an in-memory ArticleStore enforcing slug uniqueness and
// the category foreign key.
type fakeArticles struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]models.Article
	categories *fakeCategories
	authors    map[uuid.UUID]models.Author
	clock      time.Time
	lastFilter models.ArticleFilter
	listErr    error
}

func newFakeArticles(categories *fakeCategories) *fakeArticles {
	return &fakeArticles{
		rows:       make(map[uuid.UUID]models.Article),
		categories: categories,
		authors:    make(map[uuid.UUID]models.Author),
		clock:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakeArticles) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeArticles) withRef(a models.Article) models.Article {
	if c, ok := f.categories.byID[a.CategoryID]; ok {
		a.CategoryRef = &models.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug, Color: c.Color, Icon: c.Icon}
	}
	return a
}

func (f *fakeArticles) List(_ context.Context, flt models.ArticleFilter) ([]models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = flt
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Article
	for _, a := range f.rows {
		if flt.Status != nil && a.Status != *flt.Status {
			continue
		}
		if flt.CategoryID != nil && a.CategoryID != *flt.CategoryID {
			continue
		}
		if flt.AuthorID != nil && a.AuthorID != *flt.AuthorID {
			continue
		}
		out = append(out, f.withRef(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if flt.Offset > 0 {
		if flt.Offset >= len(out) {
			return nil, nil
		}
		out = out[flt.Offset:]
	}
	if flt.Limit > 0 && flt.Limit < len(out) {
		out = out[:flt.Limit]
	}
	return out, nil
}

func (f *fakeArticles) FindByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.Type != models.ContentTypeArticle {
		return nil, nil
	}
	return f.withAuthor(a), nil
}

func (f *fakeArticles) FindBySlug(_ context.Context, slug string) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.Slug == slug && a.Type == models.ContentTypeArticle {
			return f.withAuthor(a), nil
		}
	}
	return nil, nil
}

func (f *fakeArticles) withAuthor(a models.Article) *models.Article {
	if au, ok := f.authors[a.AuthorID]; ok {
		au := au
		a.Author = &au
	}
	return &a
}

func (f *fakeArticles) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.Slug == a.Slug {
			return nil, apperr.Conflictf("an article with this slug already exists")
		}
	}
	if _, ok := f.categories.byID[a.CategoryID]; !ok {
		return nil, apperr.Validationf("referenced category does not exist")
	}
	row := *a
	row.ID = uuid.New()
	row.CreatedAt = f.tick()
	row.UpdatedAt = row.CreatedAt
	f.rows[row.ID] = row
	return &row, nil
}

func (f *fakeArticles) Update(_ context.Context, id uuid.UUID, ch models.ArticleChanges) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	if ch.Slug != nil {
		for otherID, existing := range f.rows {
			if otherID != id && existing.Slug == *ch.Slug {
				return nil, apperr.Conflictf("an article with this slug already exists")
			}
		}
		a.Slug = *ch.Slug
	}
	if ch.Title != nil {
		a.Title = *ch.Title
	}
	if ch.Summary != nil {
		a.Summary = *ch.Summary
	}
	if ch.Content != nil {
		c := *ch.Content
		a.Content = &c
	}
	if ch.Status != nil {
		a.Status = *ch.Status
	}
	if ch.CategoryID != nil {
		a.CategoryID = *ch.CategoryID
	}
	if ch.LegacyCategory != nil {
		a.LegacyCategory = *ch.LegacyCategory
	}
	if ch.Tags != nil {
		a.Tags = *ch.Tags
	}
	if ch.FeaturedImage != nil {
		if *ch.FeaturedImage == "" {
			a.FeaturedImage = nil
		} else {
			v := *ch.FeaturedImage
			a.FeaturedImage = &v
		}
	}
	if ch.PublishedAt != nil && a.PublishedAt == nil {
		a.PublishedAt = ch.PublishedAt
	}
	if ch.ReadTime != nil {
		a.ReadTime = *ch.ReadTime
	}
	a.UpdatedAt = f.tick()
	f.rows[id] = a
	return &a, nil
}

func (f *fakeArticles) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeArticles) Increment(_ context.Context, id uuid.UUID, c models.Counter) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return 0, false, nil
	}
	var n int
	switch c {
	case models.CounterViews:
		a.Views++
		n = a.Views
	case models.CounterLikes:
		a.Likes++
		n = a.Likes
	case models.CounterShares:
		a.Shares++
		n = a.Shares
	default:
		return 0, false, errors.New("bad counter")
	}
	f.rows[id] = a
	return n, true, nil
}

// insert stores a row directly, bypassing the repository.
func (f *fakeArticles) insert(a models.Article) models.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = f.tick()
		a.UpdatedAt = a.CreatedAt
	}
	f.rows[a.ID] = a
	return a
}

// fixture bundles a repository with its fakes.
type fixture struct {
	repo       *Repository
	categories *fakeCategories
	articles   *fakeArticles
	cache      *cache.MemorySlugCache
	economie   models.Category
	finance    models.Category
	caller     uuid.UUID
}

func newFixture() *fixture {
	economie := models.Category{
		ID: uuid.MustParse("0b7a4d3e-1c2f-4a5b-8c9d-0e1f2a3b4c5d"), Name: "Économie", Slug: "economie",
		Color: "#0f766e", Icon: "chart", IsActive: true,
		ContentTypes: []models.ContentType{models.ContentTypeArticle},
	}
	finance := models.Category{
		ID: uuid.MustParse("6f1e2d3c-4b5a-4978-8695-a4b3c2d1e0f9"), Name: "Finance", Slug: "finance",
		Color: "#1d4ed8", Icon: "bank", IsActive: true, SortOrder: 1,
	}
	cats := newFakeCategories(economie, finance)
	arts := newFakeArticles(cats)
	c := cache.NewMemorySlugCache(16, time.Minute)
	resolver := NewCategoryResolver(cats, c)
	repo := NewRepository(arts, resolver, imageurl.NewNormalizer(testStorageURL, "images"))
	repo.now = func() time.Time { return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC) }

	return &fixture{
		repo:       repo,
		categories: cats,
		articles:   arts,
		cache:      c,
		economie:   economie,
		finance:    finance,
		caller:     uuid.MustParse("9d8c7b6a-5f4e-4d3c-a2b1-0f9e8d7c6b5a"),
	}
}
