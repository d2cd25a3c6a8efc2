package catalog_test

import (
	"context"
	"sort"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Reproducen los contratos
// relevantes: (nil, nil) cuando no existe, verificación de version en los
// updates y unicidad de código y slug.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	categories map[string]*entity.Category            // por ID
	descs      map[string]*entity.CategoryDescription // por categoryID|locale
	products   map[string][]string                    // productID → category IDs
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[string]*entity.Category),
		descs:      make(map[string]*entity.CategoryDescription),
		products:   make(map[string][]string),
	}
}

func cloneCategory(c *entity.Category) *entity.Category {
	out := *c
	out.Lineage = append([]string{}, c.Lineage...)
	return &out
}

func descKey(categoryID, locale string) string { return categoryID + "|" + locale }

// memCategoryRepo implementa repository.CategoryRepository sobre memStore.
type memCategoryRepo struct{ s *memStore }

var _ repository.CategoryRepository = (*memCategoryRepo)(nil)

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range r.s.categories {
		if existing.StoreID == c.StoreID && existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, storeID, id string) (*entity.Category, error) {
	c, ok := r.s.categories[id]
	if !ok || c.StoreID != storeID {
		return nil, nil
	}
	return cloneCategory(c), nil
}

func (r *memCategoryRepo) GetByCode(_ context.Context, storeID, code string) (*entity.Category, error) {
	for _, c := range r.s.categories {
		if c.StoreID == storeID && c.Code == code {
			return cloneCategory(c), nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) ListByIDs(_ context.Context, storeID string, ids []string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok && c.StoreID == storeID {
			out = append(out, cloneCategory(c))
		}
	}
	return out, nil
}

func (r *memCategoryRepo) ListDescendants(_ context.Context, storeID, nodeID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.StoreID == storeID && c.HasAncestor(nodeID) {
			out = append(out, cloneCategory(c))
		}
	}
	sortByID(out)
	return out, nil
}

func (r *memCategoryRepo) ListWindow(_ context.Context, storeID string, scopeLineage []string, maxDepth int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.StoreID != storeID || c.Depth > maxDepth {
			continue
		}
		if scopeLineage != nil && !lineageHasPrefix(c.Lineage, scopeLineage) {
			continue
		}
		out = append(out, cloneCategory(c))
	}
	sortByID(out)
	return out, nil
}

func (r *memCategoryRepo) UpdateLineage(_ context.Context, c *entity.Category) error {
	return r.versionedWrite(c, func(stored *entity.Category) {
		stored.ParentID = c.ParentID
		stored.Lineage = append([]string{}, c.Lineage...)
		stored.Depth = c.Depth
		stored.UpdatedAt = c.UpdatedAt
	})
}

func (r *memCategoryRepo) UpdateVisible(_ context.Context, c *entity.Category) error {
	return r.versionedWrite(c, func(stored *entity.Category) {
		stored.Visible = c.Visible
		stored.UpdatedAt = c.UpdatedAt
	})
}

func (r *memCategoryRepo) UpdateVisibleSubtree(_ context.Context, storeID, nodeID string, visible bool) error {
	for _, c := range r.s.categories {
		if c.StoreID == storeID && c.HasAncestor(nodeID) {
			c.Visible = visible
			c.Version++
		}
	}
	return nil
}

func (r *memCategoryRepo) UpdateSortOrder(_ context.Context, c *entity.Category) error {
	return r.versionedWrite(c, func(stored *entity.Category) {
		stored.SortOrder = c.SortOrder
		stored.UpdatedAt = c.UpdatedAt
	})
}

func (r *memCategoryRepo) versionedWrite(c *entity.Category, apply func(stored *entity.Category)) error {
	stored, ok := r.s.categories[c.ID]
	if !ok {
		return domain.ErrConcurrentModification
	}
	if stored.Version != c.Version {
		return domain.ErrConcurrentModification
	}
	apply(stored)
	stored.Version++
	return nil
}

func (r *memCategoryRepo) CountChildren(_ context.Context, storeID, parentID string) (int, error) {
	n := 0
	for _, c := range r.s.categories {
		if c.StoreID == storeID && c.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, storeID, id string) error {
	if c, ok := r.s.categories[id]; ok && c.StoreID == storeID {
		delete(r.s.categories, id)
	}
	return nil
}

func (r *memCategoryRepo) DeleteSubtree(_ context.Context, storeID, nodeID string) error {
	for id, c := range r.s.categories {
		if c.StoreID != storeID {
			continue
		}
		if id == nodeID || c.HasAncestor(nodeID) {
			delete(r.s.categories, id)
		}
	}
	return nil
}

// memDescriptionRepo implementa repository.CategoryDescriptionRepository.
type memDescriptionRepo struct{ s *memStore }

var _ repository.CategoryDescriptionRepository = (*memDescriptionRepo)(nil)

func (r *memDescriptionRepo) Create(ctx context.Context, d *entity.CategoryDescription) error {
	inUse, _ := r.SlugInUse(ctx, d.StoreID, d.Locale, d.FriendlyURL, d.CategoryID)
	if inUse {
		return domain.ErrSlugConflict
	}
	cp := *d
	r.s.descs[descKey(d.CategoryID, d.Locale)] = &cp
	return nil
}

func (r *memDescriptionRepo) Upsert(_ context.Context, d *entity.CategoryDescription) error {
	cp := *d
	r.s.descs[descKey(d.CategoryID, d.Locale)] = &cp
	return nil
}

func (r *memDescriptionRepo) GetBySlug(_ context.Context, storeID, locale, slug string) (*entity.CategoryDescription, error) {
	for _, d := range r.s.descs {
		if d.StoreID == storeID && d.Locale == locale && d.FriendlyURL == slug {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memDescriptionRepo) ListByCategoryIDs(_ context.Context, storeID, locale string, categoryIDs []string) ([]*entity.CategoryDescription, error) {
	var out []*entity.CategoryDescription
	for _, id := range categoryIDs {
		if d, ok := r.s.descs[descKey(id, locale)]; ok && d.StoreID == storeID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDescriptionRepo) SlugInUse(_ context.Context, storeID, locale, slug, excludingCategoryID string) (bool, error) {
	for _, d := range r.s.descs {
		if d.StoreID == storeID && d.Locale == locale && d.FriendlyURL == slug && d.CategoryID != excludingCategoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDescriptionRepo) DeleteByCategoryIDs(_ context.Context, storeID string, categoryIDs []string) error {
	for _, id := range categoryIDs {
		for key, d := range r.s.descs {
			if d.StoreID == storeID && d.CategoryID == id {
				delete(r.s.descs, key)
			}
		}
	}
	return nil
}

// memProductRepo implementa repository.ProductCategoryRepository.
type memProductRepo struct{ s *memStore }

var _ repository.ProductCategoryRepository = (*memProductRepo)(nil)

func (r *memProductRepo) ListCategoryIDsByProduct(_ context.Context, _, productID string) ([]string, error) {
	return r.s.products[productID], nil
}

// memTxRunner pasa los repos del mismo store al callback. No simula rollback:
// los casos de uso validan antes de escribir, que es lo que se ejercita aquí.
type memTxRunner struct{ s *memStore }

var _ catalog.TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) Run(ctx context.Context, fn func(
	catRepo repository.CategoryRepository,
	descRepo repository.CategoryDescriptionRepository,
) error) error {
	return fn(&memCategoryRepo{s: t.s}, &memDescriptionRepo{s: t.s})
}

func sortByID(cats []*entity.Category) {
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
}

func lineageHasPrefix(lineage, prefix []string) bool {
	if len(lineage) < len(prefix) {
		return false
	}
	for i, id := range prefix {
		if lineage[i] != id {
			return false
		}
	}
	return true
}
