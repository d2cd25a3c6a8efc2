package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ProductCategoryRepository = (*ProductCategoryRepo)(nil)

// ProductCategoryRepo lectura de la asociación producto → categorías.
// La tabla product_categories la escribe el módulo de productos; este
// adaptador solo consulta IDs.
type ProductCategoryRepo struct {
	q Querier
}

// NewProductCategoryRepository construye el adaptador de solo lectura.
func NewProductCategoryRepository(q Querier) *ProductCategoryRepo {
	return &ProductCategoryRepo{q: q}
}

// ListCategoryIDsByProduct devuelve los IDs de categoría asociados al producto.
func (r *ProductCategoryRepo) ListCategoryIDsByProduct(ctx context.Context, storeID, productID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT category_id FROM product_categories WHERE store_id = $1 AND product_id = $2`,
		storeID, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product category: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
