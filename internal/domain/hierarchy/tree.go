package hierarchy

import (
	"sort"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Node nodo del árbol anidado que se devuelve al caller.
type Node struct {
	Category    *entity.Category
	Description *entity.CategoryDescription // nil si no hay texto en el idioma pedido
	Children    []*Node
}

// Filter filtros de inclusión sobre el rango plano. No alteran la forma del
// árbol: un nodo excluido excluye también su subárbol (queda inalcanzable).
type Filter struct {
	VisibleOnly bool
	Codes       []string // allow-list de códigos; vacío = todos
}

func (f Filter) matches(c *entity.Category) bool {
	if f.VisibleOnly && !c.Visible {
		return false
	}
	if len(f.Codes) > 0 {
		found := false
		for _, code := range f.Codes {
			if c.Code == code {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PagedTree resultado de una consulta de jerarquía: los nodos de primer nivel
// de la página pedida, con sus hijos completos hasta el límite de profundidad.
type PagedTree struct {
	Roots    []*Node
	Page     int
	Count    int
	TotalTop int // total de nodos de primer nivel antes de paginar
}

// BuildTree agrupa las filas planas (ya acotadas por profundidad en la
// consulta) en un árbol anidado. topParentID identifica el primer nivel: ""
// para las raíces de la tienda, o el ID del nodo de alcance en consultas de
// subárbol. La paginación aplica solo al primer nivel; los hijos de un nodo
// incluido se devuelven completos. page es 1-based; count <= 0 desactiva la
// paginación.
func BuildTree(rows []*entity.Category, descriptions map[string]*entity.CategoryDescription, topParentID string, filter Filter, page, count int) *PagedTree {
	byParent := make(map[string][]*entity.Category)
	for _, row := range rows {
		if !filter.matches(row) {
			continue
		}
		byParent[row.ParentID] = append(byParent[row.ParentID], row)
	}
	for _, siblings := range byParent {
		sortSiblings(siblings)
	}

	top := byParent[topParentID]
	totalTop := len(top)
	if page < 1 {
		page = 1
	}
	if count > 0 {
		start := (page - 1) * count
		if start >= len(top) {
			top = nil
		} else {
			end := start + count
			if end > len(top) {
				end = len(top)
			}
			top = top[start:end]
		}
	}

	roots := make([]*Node, 0, len(top))
	for _, c := range top {
		roots = append(roots, buildNode(c, byParent, descriptions))
	}
	return &PagedTree{Roots: roots, Page: page, Count: count, TotalTop: totalTop}
}

func buildNode(c *entity.Category, byParent map[string][]*entity.Category, descriptions map[string]*entity.CategoryDescription) *Node {
	node := &Node{
		Category:    c,
		Description: descriptions[c.ID],
	}
	for _, child := range byParent[c.ID] {
		node.Children = append(node.Children, buildNode(child, byParent, descriptions))
	}
	return node
}

// sortSiblings ordena hermanos por SortOrder y luego por Code (estable para
// empates).
func sortSiblings(siblings []*entity.Category) {
	sort.SliceStable(siblings, func(i, j int) bool {
		if siblings[i].SortOrder != siblings[j].SortOrder {
			return siblings[i].SortOrder < siblings[j].SortOrder
		}
		return siblings[i].Code < siblings[j].Code
	})
}
