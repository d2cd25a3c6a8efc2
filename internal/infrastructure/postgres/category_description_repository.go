package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.CategoryDescriptionRepository = (*CategoryDescriptionRepo)(nil)

const descriptionColumns = `category_id, store_id, locale, name, friendly_url, meta_title, meta_keywords, meta_description`

// CategoryDescriptionRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla lleva UNIQUE(store_id, locale, friendly_url) como respaldo del
// contrato de unicidad del slug.
type CategoryDescriptionRepo struct {
	q Querier
}

// NewCategoryDescriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryDescriptionRepository(q Querier) *CategoryDescriptionRepo {
	return &CategoryDescriptionRepo{q: q}
}

// Create inserta una descripción. Slug repetido en (tienda, idioma) → ErrSlugConflict.
func (r *CategoryDescriptionRepo) Create(ctx context.Context, d *entity.CategoryDescription) error {
	query := `
		INSERT INTO category_descriptions (` + descriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.CategoryID, d.StoreID, d.Locale, d.Name, d.FriendlyURL,
		d.MetaTitle, d.MetaKeywords, d.MetaDescription,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("insert description: %w", err)
	}
	return nil
}

// Upsert inserta o reemplaza la descripción de (category, locale).
func (r *CategoryDescriptionRepo) Upsert(ctx context.Context, d *entity.CategoryDescription) error {
	query := `
		INSERT INTO category_descriptions (` + descriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (category_id, locale) DO UPDATE SET
			name = EXCLUDED.name,
			friendly_url = EXCLUDED.friendly_url,
			meta_title = EXCLUDED.meta_title,
			meta_keywords = EXCLUDED.meta_keywords,
			meta_description = EXCLUDED.meta_description`
	_, err := r.q.Exec(ctx, query,
		d.CategoryID, d.StoreID, d.Locale, d.Name, d.FriendlyURL,
		d.MetaTitle, d.MetaKeywords, d.MetaDescription,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("upsert description: %w", err)
	}
	return nil
}

// GetBySlug resuelve (tienda, idioma, slug) → descripción, o (nil, nil).
func (r *CategoryDescriptionRepo) GetBySlug(ctx context.Context, storeID, locale, slug string) (*entity.CategoryDescription, error) {
	query := `
		SELECT ` + descriptionColumns + ` FROM category_descriptions
		WHERE store_id = $1 AND locale = $2 AND friendly_url = $3`
	var d entity.CategoryDescription
	err := r.q.QueryRow(ctx, query, storeID, locale, slug).Scan(
		&d.CategoryID, &d.StoreID, &d.Locale, &d.Name, &d.FriendlyURL,
		&d.MetaTitle, &d.MetaKeywords, &d.MetaDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get description by slug: %w", err)
	}
	return &d, nil
}

// ListByCategoryIDs devuelve las descripciones del idioma para el conjunto de
// categorías (una consulta, sin fallback de idioma).
func (r *CategoryDescriptionRepo) ListByCategoryIDs(ctx context.Context, storeID, locale string, categoryIDs []string) ([]*entity.CategoryDescription, error) {
	query := `
		SELECT ` + descriptionColumns + ` FROM category_descriptions
		WHERE store_id = $1 AND locale = $2 AND category_id = ANY($3)`
	rows, err := r.q.Query(ctx, query, storeID, locale, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("list descriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CategoryDescription
	for rows.Next() {
		var d entity.CategoryDescription
		if err := rows.Scan(
			&d.CategoryID, &d.StoreID, &d.Locale, &d.Name, &d.FriendlyURL,
			&d.MetaTitle, &d.MetaKeywords, &d.MetaDescription,
		); err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// SlugInUse indica si el slug pertenece a otra categoría dentro de (tienda, idioma).
func (r *CategoryDescriptionRepo) SlugInUse(ctx context.Context, storeID, locale, slug, excludingCategoryID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM category_descriptions
			WHERE store_id = $1 AND locale = $2 AND friendly_url = $3 AND category_id <> $4
		)`
	var inUse bool
	if err := r.q.QueryRow(ctx, query, storeID, locale, slug, excludingCategoryID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return inUse, nil
}

// DeleteByCategoryIDs elimina todas las descripciones del conjunto de categorías.
func (r *CategoryDescriptionRepo) DeleteByCategoryIDs(ctx context.Context, storeID string, categoryIDs []string) error {
	query := `DELETE FROM category_descriptions WHERE store_id = $1 AND category_id = ANY($2)`
	if _, err := r.q.Exec(ctx, query, storeID, categoryIDs); err != nil {
		return fmt.Errorf("delete descriptions: %w", err)
	}
	return nil
}
