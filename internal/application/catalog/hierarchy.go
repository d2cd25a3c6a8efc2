package catalog

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/hierarchy"
)

// GetHierarchy arma la vista anidada del árbol, acotada por profundidad.
// Con ScopeID vacío el primer nivel son las raíces de la tienda; con ScopeID
// son los hijos de ese nodo. Una sola consulta de rango trae las filas y el
// agrupado es en memoria; la paginación aplica solo al primer nivel.
// Un ScopeID inexistente devuelve un árbol vacío (las lecturas no fallan).
func (uc *UseCase) GetHierarchy(ctx context.Context, storeID string, in dto.HierarchyRequest) (*dto.HierarchyResponse, error) {
	in.DefaultPage()
	if in.MaxDepth < 0 {
		in.MaxDepth = 0
	}

	var scopeLineage []string
	maxDepth := in.MaxDepth
	topParentID := ""
	if in.ScopeID != "" {
		scope, err := uc.catRepo.GetByID(ctx, storeID, in.ScopeID)
		if err != nil {
			return nil, err
		}
		if scope == nil {
			return &dto.HierarchyResponse{
				Items: []dto.CategoryNode{},
				Page:  dto.PageResponse{Page: in.Page, Count: in.Count},
			}, nil
		}
		scopeLineage = append(append([]string{}, scope.Lineage...), scope.ID)
		// el primer nivel del alcance vive en depth = scope.Depth + 1
		maxDepth = scope.Depth + 1 + in.MaxDepth
		topParentID = scope.ID
	}

	rows, err := uc.catRepo.ListWindow(ctx, storeID, scopeLineage, maxDepth)
	if err != nil {
		return nil, err
	}
	descs, err := uc.descriptionsFor(ctx, storeID, in.Locale, categoryIDs(rows))
	if err != nil {
		return nil, err
	}

	filter := hierarchy.Filter{VisibleOnly: in.VisibleOnly, Codes: in.Codes}
	tree := hierarchy.BuildTree(rows, descs, topParentID, filter, in.Page, in.Count)

	items := make([]dto.CategoryNode, 0, len(tree.Roots))
	for _, n := range tree.Roots {
		items = append(items, toCategoryNode(n))
	}
	return &dto.HierarchyResponse{
		Items: items,
		Page:  dto.PageResponse{Page: tree.Page, Count: tree.Count, Total: tree.TotalTop},
	}, nil
}

func toCategoryNode(n *hierarchy.Node) dto.CategoryNode {
	node := dto.CategoryNode{CategoryResponse: *toCategoryResponse(n.Category, n.Description)}
	for _, child := range n.Children {
		node.Children = append(node.Children, toCategoryNode(child))
	}
	return node
}
