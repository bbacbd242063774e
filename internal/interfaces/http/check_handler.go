package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/application/inventory"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/pkg/validator"
)

// CheckHandler maneja las sesiones de conteo físico y su máquina de estados (protegido).
type CheckHandler struct {
	uc *inventory.CheckUseCase
}

// NewCheckHandler construye el handler.
func NewCheckHandler(uc *inventory.CheckUseCase) *CheckHandler {
	return &CheckHandler{uc: uc}
}

// Create godoc
// @Summary      Crear conteo físico (draft, con snapshot del stock)
// @Tags         checks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCheckRequest  true  "name, category_id opcional"
// @Success      201   {object}  dto.CheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/checks [post]
func (h *CheckHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	check, err := h.uc.Create(c.Context(), req.Name, req.Description, req.CategoryID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCheckResponse(check, nil))
}

// Start godoc
// @Summary      Iniciar conteo (draft → in_progress)
// @Tags         checks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CheckResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checks/{id}/start [post]
func (h *CheckHandler) Start(c *fiber.Ctx) error {
	check, err := h.uc.Start(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckResponse(check, nil))
}

// RecordItem godoc
// @Summary      Registrar la cantidad contada de un producto
// @Tags         checks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.RecordCheckItemRequest  true  "product_id, actual_quantity"
// @Success      200   {object}  dto.CheckItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checks/{id}/items [post]
func (h *CheckHandler) RecordItem(c *fiber.Ctx) error {
	var req dto.RecordCheckItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	item, err := h.uc.RecordItem(c.Context(), c.Params("id"), req.ProductID, req.ActualQuantity, GetUserID(c), req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckItemResponse(item))
}

// Complete godoc
// @Summary      Completar conteo (exige todos los productos contados)
// @Tags         checks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CheckResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checks/{id}/complete [post]
func (h *CheckHandler) Complete(c *fiber.Ctx) error {
	check, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckResponse(check, nil))
}

// Approve godoc
// @Summary      Aprobar conteo (opcionalmente ajustando el stock a lo contado)
// @Tags         checks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.ApproveCheckRequest  true  "adjust_inventory"
// @Success      200   {object}  dto.CheckResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checks/{id}/approve [post]
func (h *CheckHandler) Approve(c *fiber.Ctx) error {
	var req dto.ApproveCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	check, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c), req.AdjustInventory)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckResponse(check, nil))
}

// Cancel godoc
// @Summary      Cancelar conteo (estados no terminales)
// @Tags         checks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CheckResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checks/{id}/cancel [post]
func (h *CheckHandler) Cancel(c *fiber.Ctx) error {
	check, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckResponse(check, nil))
}

// Get godoc
// @Summary      Obtener conteo con sus ítems
// @Tags         checks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checks/{id} [get]
func (h *CheckHandler) Get(c *fiber.Ctx) error {
	check, items, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	resp := toCheckResponse(check, items)
	itemResponses := make([]dto.CheckItemResponse, 0, len(items))
	for _, it := range items {
		itemResponses = append(itemResponses, toCheckItemResponse(it))
	}
	return c.JSON(fiber.Map{"check": resp, "items": itemResponses})
}

// List godoc
// @Summary      Listar conteos
// @Tags         checks
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Success      200  {array}  dto.CheckResponse
// @Router       /api/checks [get]
func (h *CheckHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()

	checks, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CheckResponse, 0, len(checks))
	for _, check := range checks {
		out = append(out, toCheckResponse(check, nil))
	}
	return c.JSON(out)
}

func toCheckResponse(check *entity.InventoryCheck, items []*entity.InventoryCheckItem) dto.CheckResponse {
	resp := dto.CheckResponse{
		ID:          check.ID,
		Name:        check.Name,
		Description: check.Description,
		Status:      check.Status,
		CategoryID:  check.CategoryID,
		CreatedBy:   check.CreatedBy,
		CreatedAt:   check.CreatedAt,
		CompletedAt: check.CompletedAt,
		ApprovedBy:  check.ApprovedBy,
		ApprovedAt:  check.ApprovedAt,
	}
	resp.TotalItems = len(items)
	for _, it := range items {
		if it.Checked() {
			resp.CheckedItems++
		}
	}
	return resp
}

func toCheckItemResponse(it *entity.InventoryCheckItem) dto.CheckItemResponse {
	return dto.CheckItemResponse{
		ID:             it.ID,
		ProductID:      it.ProductID,
		SystemQuantity: it.SystemQuantity,
		ActualQuantity: it.ActualQuantity,
		Difference:     it.Difference,
		Notes:          it.Notes,
		CheckedBy:      it.CheckedBy,
		CheckedAt:      it.CheckedAt,
	}
}
