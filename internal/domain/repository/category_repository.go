package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las lecturas puntuales devuelven (nil, nil) cuando no existe el registro.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Category, error)
	GetByCode(ctx context.Context, storeID, code string) (*entity.Category, error)
	ListByIDs(ctx context.Context, storeID string, ids []string) ([]*entity.Category, error)

	// ListDescendants devuelve todas las filas cuyo lineage contiene nodeID.
	ListDescendants(ctx context.Context, storeID, nodeID string) ([]*entity.Category, error)

	// ListWindow devuelve el rango para armar la jerarquía: filas con
	// depth <= maxDepth y, si scopeLineage no es nil, cuyo lineage empieza por
	// ese prefijo. Una sola consulta; el agrupado es en memoria.
	ListWindow(ctx context.Context, storeID string, scopeLineage []string, maxDepth int) ([]*entity.Category, error)

	// UpdateLineage reescribe parent_id, lineage y depth verificando version.
	// Devuelve domain.ErrConcurrentModification si la versión ya no coincide.
	UpdateLineage(ctx context.Context, category *entity.Category) error

	// UpdateVisible cambia el flag del nodo verificando version.
	UpdateVisible(ctx context.Context, category *entity.Category) error

	// UpdateVisibleSubtree cambia el flag de todos los descendientes de nodeID
	// en una sola sentencia (incrementa version de cada fila afectada).
	UpdateVisibleSubtree(ctx context.Context, storeID, nodeID string, visible bool) error

	// UpdateSortOrder cambia el orden entre hermanos verificando version.
	UpdateSortOrder(ctx context.Context, category *entity.Category) error

	CountChildren(ctx context.Context, storeID, parentID string) (int, error)
	Delete(ctx context.Context, storeID, id string) error

	// DeleteSubtree elimina el nodo y todos sus descendientes.
	DeleteSubtree(ctx context.Context, storeID, nodeID string) error
}
