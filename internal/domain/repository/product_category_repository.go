package repository

import "context"

// ProductCategoryRepository lectura de la asociación producto → categorías.
// La tabla la mantiene el módulo de productos; aquí solo se consultan IDs.
type ProductCategoryRepository interface {
	ListCategoryIDsByProduct(ctx context.Context, storeID, productID string) ([]string, error)
}
