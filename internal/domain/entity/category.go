package entity

import "time"

// Category representa un nodo del árbol de categorías de una tienda.
// Lineage es la ruta materializada: IDs de los ancestros desde la raíz hasta el
// padre (sin incluir el propio nodo). Depth siempre es igual a len(Lineage).
// Version incrementa en cada escritura (control de concurrencia optimista).
type Category struct {
	ID        string
	StoreID   string
	ParentID  string // vacío si es raíz
	Lineage   []string
	Depth     int
	Code      string // código único por tienda
	Visible   bool
	SortOrder int
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si el nodo es raíz del árbol.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// HasAncestor indica si id aparece en el lineage del nodo.
func (c *Category) HasAncestor(id string) bool {
	for _, a := range c.Lineage {
		if a == id {
			return true
		}
	}
	return false
}
