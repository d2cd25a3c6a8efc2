package dto

import "time"

// DescriptionInput texto localizado de una categoría en una petición.
// Si FriendlyURL viene vacío se deriva del Name.
type DescriptionInput struct {
	Locale          string `json:"locale" validate:"required,min=2,max=10"`
	Name            string `json:"name" validate:"required,min=1,max=200"`
	FriendlyURL     string `json:"friendly_url" validate:"omitempty,max=200"`
	MetaTitle       string `json:"meta_title"`
	MetaKeywords    string `json:"meta_keywords"`
	MetaDescription string `json:"meta_description"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	ParentID     string             `json:"parent_id"` // vacío = raíz
	Code         string             `json:"code" validate:"required,min=1,max=100"`
	SortOrder    int                `json:"sort_order"`
	Visible      *bool              `json:"visible"` // por defecto true
	Descriptions []DescriptionInput `json:"descriptions"`
}

// MoveCategoryRequest entrada para re-parentar una categoría.
type MoveCategoryRequest struct {
	NewParentID string `json:"new_parent_id"` // vacío = mover a la raíz
}

// SetVisibleRequest entrada para cambiar la visibilidad.
type SetVisibleRequest struct {
	Visible bool `json:"visible"`
	Cascade bool `json:"cascade"`
}

// SetSortOrderRequest entrada para reordenar entre hermanos.
type SetSortOrderRequest struct {
	SortOrder int `json:"sort_order"`
}

// UpdateDescriptionsRequest reemplaza los textos localizados indicados.
type UpdateDescriptionsRequest struct {
	Descriptions []DescriptionInput `json:"descriptions" validate:"required,min=1"`
}

// DescriptionResponse texto localizado en respuestas.
type DescriptionResponse struct {
	Locale          string `json:"locale"`
	Name            string `json:"name"`
	FriendlyURL     string `json:"friendly_url"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaKeywords    string `json:"meta_keywords,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string               `json:"id"`
	StoreID     string               `json:"store_id"`
	ParentID    string               `json:"parent_id,omitempty"`
	Lineage     []string             `json:"lineage"`
	Depth       int                  `json:"depth"`
	Code        string               `json:"code"`
	Visible     bool                 `json:"visible"`
	SortOrder   int                  `json:"sort_order"`
	Version     int64                `json:"version"`
	Description *DescriptionResponse `json:"description,omitempty"`
	// Descriptions trae el juego completo de idiomas (solo en create/update).
	Descriptions []DescriptionResponse `json:"descriptions,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CategoryNode nodo del árbol anidado en respuestas de jerarquía.
type CategoryNode struct {
	CategoryResponse
	Children []CategoryNode `json:"children,omitempty"`
}

// HierarchyRequest parámetros de consulta de la jerarquía.
type HierarchyRequest struct {
	ScopeID     string   `query:"scope_id"` // vacío = toda la tienda
	MaxDepth    int      `query:"max_depth"`
	Locale      string   `query:"locale"`
	VisibleOnly bool     `query:"visible_only"`
	Codes       []string `query:"codes"`
	PageRequest
}

// HierarchyResponse árbol paginado en el primer nivel.
type HierarchyResponse struct {
	Items []CategoryNode `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CategoryListResponse lista plana (ej. categorías de un producto).
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
