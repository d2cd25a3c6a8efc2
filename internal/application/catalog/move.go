package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/hierarchy"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// Move re-parenta una categoría. newParentID vacío la mueve a la raíz.
// La reescritura de lineage del nodo y de todos sus descendientes ocurre en
// una sola transacción, con verificación de version fila a fila: si otra
// operación tocó cualquier fila desde la lectura, la transacción aborta con
// ErrConcurrentModification y el árbol queda como estaba.
func (uc *UseCase) Move(ctx context.Context, storeID, nodeID, newParentID string) error {
	if storeID == "" || nodeID == "" {
		return domain.ErrInvalidInput
	}

	err := uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, _ repository.CategoryDescriptionRepository) error {
		node, err := catRepo.GetByID(ctx, storeID, nodeID)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}

		// Mover al padre actual es un no-op: sin error y sin tocar versiones.
		if node.ParentID == newParentID {
			return nil
		}

		var newParent *entity.Category
		if newParentID != "" {
			newParent, err = catRepo.GetByID(ctx, storeID, newParentID)
			if err != nil {
				return err
			}
			if newParent == nil {
				return domain.ErrNotFound
			}
		}
		if err := hierarchy.ValidateMove(node, newParent); err != nil {
			return err
		}

		descendants, err := catRepo.ListDescendants(ctx, storeID, nodeID)
		if err != nil {
			return err
		}

		oldLineage := node.Lineage
		newLineage, newDepth := hierarchy.ComputeLineage(newParent)
		if err := hierarchy.RewriteSubtree(node, oldLineage, newLineage, descendants); err != nil {
			return err
		}

		now := time.Now()
		node.ParentID = newParentID
		node.Lineage = newLineage
		node.Depth = newDepth
		node.UpdatedAt = now
		if err := catRepo.UpdateLineage(ctx, node); err != nil {
			return err
		}
		for _, d := range descendants {
			d.UpdatedAt = now
			if err := catRepo.UpdateLineage(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("store_id", storeID).
		Str("category_id", nodeID).
		Str("new_parent_id", newParentID).
		Msg("categoría movida")
	return nil
}
