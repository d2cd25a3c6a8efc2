package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// SetVisible cambia el flag de visibilidad sin tocar la estructura del árbol.
// cascade aplica el mismo valor a todos los descendientes en la misma
// transacción; sin cascade solo afecta al nodo indicado.
func (uc *UseCase) SetVisible(ctx context.Context, storeID, categoryID string, visible, cascade bool) error {
	if storeID == "" || categoryID == "" {
		return domain.ErrInvalidInput
	}

	err := uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, _ repository.CategoryDescriptionRepository) error {
		node, err := catRepo.GetByID(ctx, storeID, categoryID)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}

		node.Visible = visible
		node.UpdatedAt = time.Now()
		if err := catRepo.UpdateVisible(ctx, node); err != nil {
			return err
		}
		if cascade {
			return catRepo.UpdateVisibleSubtree(ctx, storeID, categoryID, visible)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("store_id", storeID).
		Str("category_id", categoryID).
		Bool("visible", visible).
		Bool("cascade", cascade).
		Msg("visibilidad actualizada")
	return nil
}

// SetSortOrder cambia el orden del nodo entre sus hermanos.
func (uc *UseCase) SetSortOrder(ctx context.Context, storeID, categoryID string, sortOrder int) error {
	if storeID == "" || categoryID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, _ repository.CategoryDescriptionRepository) error {
		node, err := catRepo.GetByID(ctx, storeID, categoryID)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}
		node.SortOrder = sortOrder
		node.UpdatedAt = time.Now()
		return catRepo.UpdateSortOrder(ctx, node)
	})
}
