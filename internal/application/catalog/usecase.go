// Package catalog implementa los casos de uso del árbol de categorías:
// la fachada única que consumen los handlers HTTP.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/hierarchy"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
	"github.com/jhoicas/Catalogo-api/pkg/slug"
)

// UseCase fachada del catálogo de categorías. Las lecturas van directo a los
// repositorios del pool; las escrituras pasan por el TxRunner.
type UseCase struct {
	catRepo  repository.CategoryRepository
	descRepo repository.CategoryDescriptionRepository
	prodRepo repository.ProductCategoryRepository
	tx       TxRunner
	log      *logger.Logger
}

// NewUseCase construye la fachada.
func NewUseCase(
	catRepo repository.CategoryRepository,
	descRepo repository.CategoryDescriptionRepository,
	prodRepo repository.ProductCategoryRepository,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{catRepo: catRepo, descRepo: descRepo, prodRepo: prodRepo, tx: tx, log: log}
}

// Create crea una categoría bajo el padre indicado (o en la raíz) junto con
// sus descripciones. Código duplicado en la tienda → ErrDuplicate; padre
// inexistente → ErrNotFound; slug repetido en (tienda, idioma) → ErrSlugConflict.
func (uc *UseCase) Create(ctx context.Context, storeID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if storeID == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}

	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		ParentID:  in.ParentID,
		Code:      in.Code,
		Visible:   visible,
		SortOrder: in.SortOrder,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	descriptions := make([]*entity.CategoryDescription, 0, len(in.Descriptions))

	err := uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, descRepo repository.CategoryDescriptionRepository) error {
		existing, err := catRepo.GetByCode(ctx, storeID, in.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}

		var parent *entity.Category
		if in.ParentID != "" {
			parent, err = catRepo.GetByID(ctx, storeID, in.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.ErrNotFound
			}
		}
		category.Lineage, category.Depth = hierarchy.ComputeLineage(parent)

		if err := catRepo.Create(ctx, category); err != nil {
			return err
		}

		for _, d := range in.Descriptions {
			desc, err := buildDescription(ctx, descRepo, category, d)
			if err != nil {
				return err
			}
			if err := descRepo.Create(ctx, desc); err != nil {
				return err
			}
			descriptions = append(descriptions, desc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("store_id", storeID).
		Str("category_id", category.ID).
		Str("code", category.Code).
		Int("depth", category.Depth).
		Msg("categoría creada")

	resp := toCategoryResponse(category, nil)
	for _, d := range descriptions {
		resp.Descriptions = append(resp.Descriptions, toDescriptionResponse(d))
	}
	return resp, nil
}

// GetByCode obtiene una categoría por código, con la descripción del idioma
// pedido si existe. Devuelve (nil, nil) si no hay categoría.
func (uc *UseCase) GetByCode(ctx context.Context, storeID, code, locale string) (*dto.CategoryResponse, error) {
	category, err := uc.catRepo.GetByCode(ctx, storeID, code)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	desc, err := uc.descriptionFor(ctx, storeID, locale, category.ID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, desc), nil
}

// GetByFriendlyURL resuelve (tienda, idioma, slug) → categoría, o (nil, nil).
func (uc *UseCase) GetByFriendlyURL(ctx context.Context, storeID, locale, friendlyURL string) (*dto.CategoryResponse, error) {
	desc, err := uc.descRepo.GetBySlug(ctx, storeID, locale, friendlyURL)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, nil
	}
	category, err := uc.catRepo.GetByID(ctx, storeID, desc.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category, desc), nil
}

// ListByProduct devuelve las categorías asociadas a un producto. La asociación
// la mantiene el módulo de productos; aquí solo se resuelven los IDs.
func (uc *UseCase) ListByProduct(ctx context.Context, storeID, productID, locale string) (*dto.CategoryListResponse, error) {
	ids, err := uc.prodRepo.ListCategoryIDsByProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{Items: []dto.CategoryResponse{}}
	if len(ids) == 0 {
		return out, nil
	}
	categories, err := uc.catRepo.ListByIDs(ctx, storeID, ids)
	if err != nil {
		return nil, err
	}
	descs, err := uc.descriptionsFor(ctx, storeID, locale, categoryIDs(categories))
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		out.Items = append(out.Items, *toCategoryResponse(c, descs[c.ID]))
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// buildDescription arma la entidad de descripción y aplica el contrato de
// unicidad del slug. Un friendly URL vacío se deriva del nombre.
func buildDescription(ctx context.Context, descRepo repository.CategoryDescriptionRepository, category *entity.Category, in dto.DescriptionInput) (*entity.CategoryDescription, error) {
	if in.Locale == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	friendly := in.FriendlyURL
	if friendly == "" {
		friendly = slug.Make(in.Name)
	}
	if friendly == "" {
		return nil, domain.ErrInvalidInput
	}
	inUse, err := descRepo.SlugInUse(ctx, category.StoreID, in.Locale, friendly, category.ID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, domain.ErrSlugConflict
	}
	return &entity.CategoryDescription{
		CategoryID:      category.ID,
		StoreID:         category.StoreID,
		Locale:          in.Locale,
		Name:            in.Name,
		FriendlyURL:     friendly,
		MetaTitle:       in.MetaTitle,
		MetaKeywords:    in.MetaKeywords,
		MetaDescription: in.MetaDescription,
	}, nil
}

func (uc *UseCase) descriptionFor(ctx context.Context, storeID, locale, categoryID string) (*entity.CategoryDescription, error) {
	descs, err := uc.descriptionsFor(ctx, storeID, locale, []string{categoryID})
	if err != nil {
		return nil, err
	}
	return descs[categoryID], nil
}

func (uc *UseCase) descriptionsFor(ctx context.Context, storeID, locale string, ids []string) (map[string]*entity.CategoryDescription, error) {
	out := make(map[string]*entity.CategoryDescription)
	if locale == "" || len(ids) == 0 {
		return out, nil
	}
	descs, err := uc.descRepo.ListByCategoryIDs(ctx, storeID, locale, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range descs {
		out[d.CategoryID] = d
	}
	return out, nil
}

func categoryIDs(categories []*entity.Category) []string {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func toCategoryResponse(c *entity.Category, desc *entity.CategoryDescription) *dto.CategoryResponse {
	resp := &dto.CategoryResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		ParentID:  c.ParentID,
		Lineage:   c.Lineage,
		Depth:     c.Depth,
		Code:      c.Code,
		Visible:   c.Visible,
		SortOrder: c.SortOrder,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if desc != nil {
		d := toDescriptionResponse(desc)
		resp.Description = &d
	}
	return resp
}

func toDescriptionResponse(d *entity.CategoryDescription) dto.DescriptionResponse {
	return dto.DescriptionResponse{
		Locale:          d.Locale,
		Name:            d.Name,
		FriendlyURL:     d.FriendlyURL,
		MetaTitle:       d.MetaTitle,
		MetaKeywords:    d.MetaKeywords,
		MetaDescription: d.MetaDescription,
	}
}
