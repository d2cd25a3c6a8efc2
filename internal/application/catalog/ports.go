package catalog

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda mutación estructural del árbol (create,
// move, delete, visibilidad en cascada) corre completa dentro de una sola
// transacción: o se confirma la reescritura entera o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		catRepo repository.CategoryRepository,
		descRepo repository.CategoryDescriptionRepository,
	) error) error
}
