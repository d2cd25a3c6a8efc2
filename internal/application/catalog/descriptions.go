package catalog

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// UpdateDescriptions inserta o reemplaza los textos localizados indicados
// (upsert por idioma; los idiomas no mencionados quedan intactos). El
// contrato de unicidad del slug se verifica excluyendo la propia categoría.
func (uc *UseCase) UpdateDescriptions(ctx context.Context, storeID, categoryID string, in dto.UpdateDescriptionsRequest) (*dto.CategoryResponse, error) {
	if storeID == "" || categoryID == "" || len(in.Descriptions) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.CategoryResponse
	err := uc.tx.Run(ctx, func(catRepo repository.CategoryRepository, descRepo repository.CategoryDescriptionRepository) error {
		node, err := catRepo.GetByID(ctx, storeID, categoryID)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}

		resp = toCategoryResponse(node, nil)
		for _, d := range in.Descriptions {
			desc, err := buildDescription(ctx, descRepo, node, d)
			if err != nil {
				return err
			}
			if err := descRepo.Upsert(ctx, desc); err != nil {
				return err
			}
			resp.Descriptions = append(resp.Descriptions, toDescriptionResponse(desc))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
