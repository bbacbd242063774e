package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/application/sales"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
	"github.com/ngtrphuong/ioe/internal/infrastructure/pdf"
	"github.com/ngtrphuong/ioe/pkg/validator"
)

// SaleHandler maneja ventas: apertura, líneas, cierre y recibo PDF (protegido).
type SaleHandler struct {
	uc         *sales.SaleUseCase
	memberRepo repository.MemberRepository
	receipts   *pdf.ReceiptGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, memberRepo repository.MemberRepository, receipts *pdf.ReceiptGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, memberRepo: memberRepo, receipts: receipts}
}

// Create godoc
// @Summary      Abrir una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "member_id opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	sale, err := h.uc.CreateSale(c.Context(), GetUserID(c), req.MemberID, req.Remark)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale, nil))
}

// AddItem godoc
// @Summary      Agregar línea a una venta abierta (descuenta stock)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.AddSaleItemRequest  true  "product_id, quantity, actual_price opcional"
// @Success      200   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/items [post]
func (h *SaleHandler) AddItem(c *fiber.Ctx) error {
	var req dto.AddSaleItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	sale, err := h.uc.AddItem(c.Context(), c.Params("id"), req.ProductID, req.Quantity, req.ActualPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale, nil))
}

// Complete godoc
// @Summary      Cerrar la venta (descuento de nivel, puntos, saldo si aplica)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CompleteSaleRequest  true  "payment_method"
// @Success      200   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/complete [post]
func (h *SaleHandler) Complete(c *fiber.Ctx) error {
	var req dto.CompleteSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	sale, err := h.uc.CompleteSale(c.Context(), c.Params("id"), req.PaymentMethod, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale, nil))
}

// Get godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	sale, items, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale, items))
}

// List godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	list, err := h.uc.ListSales(c.Context(), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, toSaleResponse(sale, nil))
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	sale, items, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var member *entity.Member
	if sale.MemberID != "" {
		member, err = h.memberRepo.GetByID(sale.MemberID)
		if err != nil {
			return respondError(c, err)
		}
	}

	doc, err := h.receipts.GenerateReceipt(sale, items, member)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recibo-%s.pdf"`, sale.ID))
	return c.Send(doc)
}

// parseDateRange interpreta fechas YYYY-MM-DD; "to" cubre el día completo.
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, fmt.Errorf("fecha 'from' inválida: %s", fromStr)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, fmt.Errorf("fecha 'to' inválida: %s", toStr)
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:             sale.ID,
		MemberID:       sale.MemberID,
		TotalAmount:    sale.TotalAmount,
		DiscountAmount: sale.DiscountAmount,
		FinalAmount:    sale.FinalAmount,
		PointsEarned:   sale.PointsEarned,
		PaymentMethod:  sale.PaymentMethod,
		Status:         sale.Status,
		OperatorID:     sale.OperatorID,
		Remark:         sale.Remark,
		CreatedAt:      sale.CreatedAt,
		Items:          make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			ActualPrice: it.ActualPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}
