package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/report"
)

// ReportHandler expone los reportes de ventas e inventario (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesSummary godoc
// @Summary      Resumen diario de ventas en un rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200   {array}  dto.SalesSummaryResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	summary, err := h.uc.SalesSummary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// TopProducts godoc
// @Summary      Productos más vendidos en un rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD"
// @Param        limit  query  int     false  "máximo de productos (default 10)"
// @Success      200    {array}  dto.TopProductResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	top, err := h.uc.TopProducts(c.Context(), from, to, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(top)
}

// InventoryValue godoc
// @Summary      Valor del inventario a costo y productos bajo el umbral
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	value, err := h.uc.InventoryValue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(value)
}

// reportRange resuelve el rango consultado; por defecto, los últimos 30 días.
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	now := time.Now()
	if to == nil {
		to = &now
	}
	if from == nil {
		start := to.AddDate(0, 0, -30)
		from = &start
	}
	return *from, *to, nil
}
