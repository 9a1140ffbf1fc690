package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/consolidation"
	"github.com/jhoicas/Reposicion-api/internal/application/draft"
	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
)

// Roles que pueden fusionar solicitudes y exportar pedidos.
var mergeRoles = []string{"admin", "encargado"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DraftUC         *draft.UseCase
	ConsolidationUC *consolidation.UseCase
	Replenishment   *inventory.ReplenishmentUseCase
	JWTSecret       string
	JWTIssuer       string
}

// Router registra las rutas de la API. Todas requieren Bearer Token con restaurante
// y solo alcanzan datos de ese restaurante.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRestaurant())

	// Conteo de listas de stock
	drafts := api.Group("/stock-lists/:id/draft")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Open)
	drafts.Get("/", draftHandler.Get)
	drafts.Delete("/", draftHandler.Close)
	drafts.Put("/items/:refId", draftHandler.Input)
	drafts.Post("/items/:refId/resolve", draftHandler.Resolve)
	drafts.Delete("/items/:refId", draftHandler.Discard)
	drafts.Post("/discard", draftHandler.DiscardAll)
	drafts.Post("/commit", draftHandler.Commit)
	drafts.Post("/submit", draftHandler.Submit)

	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	api.Get("/stock-lists/:id/replenishment", inventoryHandler.GetReplenishmentList)

	// Consolidación (encargados)
	consHandler := NewConsolidationHandler(deps.ConsolidationUC)
	requireMerge := RequireRole(mergeRoles...)
	api.Get("/submissions", requireMerge, consHandler.ListSubmissions)
	cons := api.Group("/consolidations", requireMerge)
	cons.Post("/preview", consHandler.Preview)
	cons.Post("/share", consHandler.Share)
	cons.Post("/pdf", consHandler.PDF)
}
