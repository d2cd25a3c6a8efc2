package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// CategoryHandler maneja las peticiones HTTP del árbol de categorías (protegido).
type CategoryHandler struct {
	uc *catalog.UseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *catalog.UseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "store_id requerido"})
	}
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	out, err := h.uc.Create(c.Context(), storeID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Move godoc
// @Summary      Mover categoría (re-parentar)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.MoveCategoryRequest  true  "Nuevo padre (vacío = raíz)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/move [post]
func (h *CategoryHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Move(c.Context(), GetStoreID(c), c.Params("id"), in.NewParentID); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar categoría (cascade opcional)
// @Tags         categories
// @Security     Bearer
// @Param        id       path   string  true   "ID de la categoría"
// @Param        cascade  query  bool    false  "Eliminar también el subárbol"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	cascade := c.QueryBool("cascade", false)
	if err := h.uc.Delete(c.Context(), GetStoreID(c), c.Params("id"), cascade); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetVisible godoc
// @Summary      Cambiar visibilidad (cascade opcional)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.SetVisibleRequest  true  "Visibilidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/visibility [patch]
func (h *CategoryHandler) SetVisible(c *fiber.Ctx) error {
	var in dto.SetVisibleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetVisible(c.Context(), GetStoreID(c), c.Params("id"), in.Visible, in.Cascade); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetSortOrder godoc
// @Summary      Cambiar orden entre hermanos
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.SetSortOrderRequest  true  "Orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/sort-order [patch]
func (h *CategoryHandler) SetSortOrder(c *fiber.Ctx) error {
	var in dto.SetSortOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetSortOrder(c.Context(), GetStoreID(c), c.Params("id"), in.SortOrder); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateDescriptions godoc
// @Summary      Reemplazar textos localizados
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateDescriptionsRequest  true  "Descripciones por idioma"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/descriptions [put]
func (h *CategoryHandler) UpdateDescriptions(c *fiber.Ctx) error {
	var in dto.UpdateDescriptionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateDescriptions(c.Context(), GetStoreID(c), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetHierarchy godoc
// @Summary      Consultar el árbol (acotado por profundidad, paginado en el primer nivel)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        scope_id      query  string  false  "Nodo de alcance (vacío = toda la tienda)"
// @Param        max_depth     query  int     false  "Niveles hacia abajo desde el primer nivel"
// @Param        locale        query  string  false  "Idioma de las descripciones"
// @Param        visible_only  query  bool    false  "Solo categorías visibles"
// @Param        page          query  int     false  "Página (1-based)"
// @Param        count         query  int     false  "Nodos de primer nivel por página"
// @Success      200  {object}  dto.HierarchyResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) GetHierarchy(c *fiber.Ctx) error {
	var in dto.HierarchyRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.GetHierarchy(c.Context(), GetStoreID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener categoría por código
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        code    path   string  true   "Código de la categoría"
// @Param        locale  query  string  false  "Idioma de la descripción"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/code/{code} [get]
func (h *CategoryHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), GetStoreID(c), c.Params("code"), c.Query("locale"))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// GetByFriendlyURL godoc
// @Summary      Resolver friendly URL → categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        slug    path   string  true  "Friendly URL"
// @Param        locale  query  string  true  "Idioma del slug"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/slug/{slug} [get]
func (h *CategoryHandler) GetByFriendlyURL(c *fiber.Ctx) error {
	out, err := h.uc.GetByFriendlyURL(c.Context(), GetStoreID(c), c.Query("locale"), c.Params("slug"))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Categorías asociadas a un producto
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        locale     query  string  false  "Idioma de las descripciones"
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/products/{productId}/categories [get]
func (h *CategoryHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Context(), GetStoreID(c), c.Params("productId"), c.Query("locale"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// domainError traduce la taxonomía de dominio a estados HTTP. Cualquier otro
// error es fallo de almacenamiento/infraestructura y responde 500.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: err.Error()})
	case errors.Is(err, domain.ErrCycleDetected):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CYCLE_DETECTED", Message: err.Error()})
	case errors.Is(err, domain.ErrHasChildren):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_CHILDREN", Message: err.Error()})
	case errors.Is(err, domain.ErrSlugConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLUG_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VERSION_CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
