package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/application/inventory"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
	"github.com/ngtrphuong/ioe/pkg/validator"
)

// InventoryHandler maneja movimientos de stock y consultas de inventario (protegido).
type InventoryHandler struct {
	uc      *inventory.AdjustStockUseCase
	invRepo repository.InventoryRepository
	txnRepo repository.InventoryTransactionRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	uc *inventory.AdjustStockUseCase,
	invRepo repository.InventoryRepository,
	txnRepo repository.InventoryTransactionRepository,
) *InventoryHandler {
	return &InventoryHandler{uc: uc, invRepo: invRepo, txnRepo: txnRepo}
}

// Adjust godoc
// @Summary      Registrar movimiento de stock (IN, OUT, ADJUST)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, type, quantity"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req dto.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	inv, err := h.uc.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:  req.ProductID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		OperatorID: GetUserID(c),
		Notes:      req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InventoryResponse{
		ProductID:    inv.ProductID,
		Quantity:     inv.Quantity,
		WarningLevel: inv.WarningLevel,
		LowStock:     inv.IsLowStock(),
	})
}

// GetStock godoc
// @Summary      Consultar stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryResponse
// @Router       /api/inventory/{product_id} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	inv, err := h.invRepo.GetByProduct(c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InventoryResponse{
		ProductID:    inv.ProductID,
		Quantity:     inv.Quantity,
		WarningLevel: inv.WarningLevel,
		LowStock:     inv.IsLowStock(),
	})
}

// ListLowStock godoc
// @Summary      Listar productos en o bajo su umbral de reposición
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.invRepo.ListLowStock()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.InventoryResponse{
			ProductID:    inv.ProductID,
			Quantity:     inv.Quantity,
			WarningLevel: inv.WarningLevel,
			LowStock:     true,
		})
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Listar movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Success      200  {array}  dto.InventoryTransactionResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()

	var txns []*entity.InventoryTransaction
	var err error
	if productID := c.Query("product_id"); productID != "" {
		txns, err = h.txnRepo.ListByProduct(productID, page.Limit, page.Offset)
	} else {
		txns, err = h.txnRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTxnResponses(txns))
}

func toTxnResponses(txns []*entity.InventoryTransaction) []dto.InventoryTransactionResponse {
	out := make([]dto.InventoryTransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, dto.InventoryTransactionResponse{
			ID:         t.ID,
			ProductID:  t.ProductID,
			Type:       t.Type,
			Quantity:   t.Quantity,
			OperatorID: t.OperatorID,
			Notes:      t.Notes,
			CreatedAt:  t.CreatedAt,
		})
	}
	return out
}
