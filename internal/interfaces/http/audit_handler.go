package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/audit"
	"github.com/ngtrphuong/ioe/internal/application/dto"
)

// AuditHandler expone la bitácora de operaciones (solo administradores).
type AuditHandler struct {
	svc *audit.Service
}

// NewAuditHandler construye el handler.
func NewAuditHandler(svc *audit.Service) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List godoc
// @Summary      Listar la bitácora de operaciones
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "INVENTORY, INVENTORY_CHECK, SALE, MEMBER o SYSTEM"
// @Success      200   {array}  map[string]interface{}
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/audit/logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}

	logs, err := h.svc.List(c.Context(), c.Query("type"), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(logs))
	for _, l := range logs {
		out = append(out, fiber.Map{
			"id":             l.ID,
			"operator_id":    l.OperatorID,
			"operation_type": l.OperationType,
			"details":        l.Details,
			"related_id":     l.RelatedID,
			"created_at":     l.CreatedAt,
		})
	}
	return c.JSON(out)
}
