package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/consolidation"
	"github.com/jhoicas/Reposicion-api/internal/application/dto"
)

// ConsolidationHandler maneja la fusión de solicitudes aprobadas (protegido).
type ConsolidationHandler struct {
	uc *consolidation.UseCase
}

// NewConsolidationHandler construye el handler.
func NewConsolidationHandler(uc *consolidation.UseCase) *ConsolidationHandler {
	return &ConsolidationHandler{uc: uc}
}

// ListSubmissions godoc
// @Summary      Listar solicitudes para fusionar
// @Tags         consolidation
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | APPROVED | PARTIAL | REJECTED"
// @Param        limit   query  int     false  "default 20, máx 100"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.SubmissionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/submissions [get]
func (h *ConsolidationHandler) ListSubmissions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListForMerge(c.UserContext(), GetRestaurantID(c), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Previsualizar pedido consolidado
// @Description  Agrupa las líneas aprobadas por insumo de catálogo en el orden de selección.
//
//	Los IDs inexistentes, mal formados o de otro restaurante no aportan nada. No persiste nada.
//
// @Tags         consolidation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsolidationRequest  true  "submission_ids"
// @Success      200  {object}  dto.ConsolidationPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/consolidations/preview [post]
func (h *ConsolidationHandler) Preview(c *fiber.Ctx) error {
	var in dto.ConsolidationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Preview(c.UserContext(), GetRestaurantID(c), in.SubmissionIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Share godoc
// @Summary      Texto compartible del pedido
// @Tags         consolidation
// @Security     Bearer
// @Accept       json
// @Produce      plain
// @Param        body  body  dto.ConsolidationRequest  true  "submission_ids, mode (approved-only | full-report), title"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/consolidations/share [post]
func (h *ConsolidationHandler) Share(c *fiber.Ctx) error {
	var in dto.ConsolidationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	text, err := h.uc.Share(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(text)
}

// PDF godoc
// @Summary      Descargar pedido consolidado en PDF
// @Tags         consolidation
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ConsolidationRequest  true  "submission_ids, title"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consolidations/pdf [post]
func (h *ConsolidationHandler) PDF(c *fiber.Ctx) error {
	var in dto.ConsolidationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, filename, err := h.uc.PDF(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
