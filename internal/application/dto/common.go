package dto

// PageRequest paginación para listados (page es 1-based).
type PageRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Count int `query:"count" validate:"min=1,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Count son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Count <= 0 {
		p.Count = 20
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page  int `json:"page"`
	Count int `json:"count"`
	Total int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
