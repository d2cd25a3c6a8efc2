package catalog

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// Delete elimina una categoría. Sin cascade solo se aceptan hojas: un nodo
// con hijos devuelve ErrHasChildren. Con cascade cae el subárbol completo,
// descripciones incluidas, en una transacción.
func (uc *UseCase) Delete(ctx context.Context, storeID, categoryID string, cascade bool) error {
	if storeID == "" || categoryID == "" {
		return domain.ErrInvalidInput
	}

	err := uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, descRepo repository.CategoryDescriptionRepository) error {
		node, err := catRepo.GetByID(ctx, storeID, categoryID)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}

		children, err := catRepo.CountChildren(ctx, storeID, categoryID)
		if err != nil {
			return err
		}
		if children > 0 && !cascade {
			return domain.ErrHasChildren
		}

		if children == 0 {
			if err := descRepo.DeleteByCategoryIDs(ctx, storeID, []string{categoryID}); err != nil {
				return err
			}
			return catRepo.Delete(ctx, storeID, categoryID)
		}

		descendants, err := catRepo.ListDescendants(ctx, storeID, categoryID)
		if err != nil {
			return err
		}
		ids := append(categoryIDs(descendants), categoryID)
		if err := descRepo.DeleteByCategoryIDs(ctx, storeID, ids); err != nil {
			return err
		}
		return catRepo.DeleteSubtree(ctx, storeID, categoryID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("store_id", storeID).
		Str("category_id", categoryID).
		Bool("cascade", cascade).
		Msg("categoría eliminada")
	return nil
}
