package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/draft"
	"github.com/jhoicas/Reposicion-api/internal/application/dto"
)

// DraftHandler maneja el conteo de una lista de stock: edición, guardado y envío (protegido).
type DraftHandler struct {
	uc *draft.UseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *draft.UseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir borrador de una lista
// @Description  Carga la lista y siembra los borradores. Si hay un borrador local sin confirmar, se recupera.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la lista"
// @Success      200  {object}  dto.DraftResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft [post]
func (h *DraftHandler) Open(c *fiber.Ctx) error {
	out, err := h.uc.Open(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Ver borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la lista"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar borrador
// @Description  Cancela el guardado local pendiente. Lo ya guardado localmente se recupera al reabrir.
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la lista"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft [delete]
func (h *DraftHandler) Close(c *fiber.Ctx) error {
	if err := h.uc.Close(GetRestaurantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Input godoc
// @Summary      Registrar conteo
// @Description  Acepta texto libre ("12+6", "2,5"). Un texto no interpretable se guarda pero no cambia el borrador (valid=false).
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                 true  "ID de la lista"
// @Param        refId  path  string                 true  "ID de la referencia"
// @Param        body   body  dto.DraftInputRequest  true  "raw_text"
// @Success      200  {object}  dto.DraftItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft/items/{refId} [put]
func (h *DraftHandler) Input(c *fiber.Ctx) error {
	var in dto.DraftInputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Input(GetRestaurantID(c), c.Params("id"), c.Params("refId"), in.RawText)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver conteo
// @Description  Igual que Input, pero si el texto es válido se reemplaza por su forma canónica ("5+3" -> "8").
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                 true  "ID de la lista"
// @Param        refId  path  string                 true  "ID de la referencia"
// @Param        body   body  dto.DraftInputRequest  true  "raw_text"
// @Success      200  {object}  dto.DraftItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft/items/{refId}/resolve [post]
func (h *DraftHandler) Resolve(c *fiber.Ctx) error {
	var in dto.DraftInputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Resolve(GetRestaurantID(c), c.Params("id"), c.Params("refId"), in.RawText)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar cambio de una referencia
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID de la lista"
// @Param        refId  path  string  true  "ID de la referencia"
// @Success      200  {object}  dto.DraftItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft/items/{refId} [delete]
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	out, err := h.uc.Discard(GetRestaurantID(c), c.Params("id"), c.Params("refId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DiscardAll godoc
// @Summary      Descartar todos los cambios
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la lista"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft/discard [post]
func (h *DraftHandler) DiscardAll(c *fiber.Ctx) error {
	out, err := h.uc.DiscardAll(GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Guardar conteo
// @Description  Envía todas las cantidades al servicio de registros. Si falla, el borrador queda intacto (502, reintentable).
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la lista"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "BUSY: ya hay un guardado en curso"
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft/commit [post]
func (h *DraftHandler) Commit(c *fiber.Ctx) error {
	out, err := h.uc.Commit(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar conteo
// @Description  Guarda y finaliza la lista, generando una solicitud pendiente de aprobación a nombre de quien envía. La sesión se cierra.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la lista"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock-lists/{id}/draft/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	if err := h.uc.Submit(c.UserContext(), GetRestaurantID(c), c.Params("id"), GetUserName(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lista enviada"})
}
