package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	categories := protected.Group("/categories")
	handler := NewCategoryHandler(deps.CatalogUC)

	// Lecturas (cualquier rol autenticado)
	categories.Get("/", handler.GetHierarchy)
	categories.Get("/code/:code", handler.GetByCode)
	categories.Get("/slug/:slug", handler.GetByFriendlyURL)

	// Escrituras (solo admin y editor)
	edit := RequireRole("admin", "editor")
	categories.Post("/", edit, handler.Create)
	categories.Post("/:id/move", edit, handler.Move)
	categories.Delete("/:id", edit, handler.Delete)
	categories.Patch("/:id/visibility", edit, handler.SetVisible)
	categories.Patch("/:id/sort-order", edit, handler.SetSortOrder)
	categories.Put("/:id/descriptions", edit, handler.UpdateDescriptions)

	// Asociación producto → categorías (solo lectura)
	protected.Get("/products/:productId/categories", handler.ListByProduct)
}
