package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// CategoryDescriptionRepository puerto de persistencia para los textos
// localizados. La unicidad (store, locale, friendly_url) vive aquí.
type CategoryDescriptionRepository interface {
	Create(ctx context.Context, desc *entity.CategoryDescription) error

	// Upsert inserta o reemplaza la descripción de (category, locale).
	Upsert(ctx context.Context, desc *entity.CategoryDescription) error

	// GetBySlug resuelve (store, locale, slug) → descripción, o (nil, nil).
	GetBySlug(ctx context.Context, storeID, locale, slug string) (*entity.CategoryDescription, error)

	// ListByCategoryIDs devuelve las descripciones en el idioma dado para el
	// conjunto de categorías (una consulta; sin fallback de idioma).
	ListByCategoryIDs(ctx context.Context, storeID, locale string, categoryIDs []string) ([]*entity.CategoryDescription, error)

	// SlugInUse indica si el slug ya pertenece a otra categoría distinta de
	// excludingCategoryID dentro de (store, locale).
	SlugInUse(ctx context.Context, storeID, locale, slug, excludingCategoryID string) (bool, error)

	DeleteByCategoryIDs(ctx context.Context, storeID string, categoryIDs []string) error
}
