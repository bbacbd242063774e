package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/application/member"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/pkg/validator"
)

// MemberHandler maneja miembros, recargas y puntos (protegido).
type MemberHandler struct {
	uc *member.MemberUseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(uc *member.MemberUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de miembro
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMemberRequest  true  "name, phone; level_id vacío = nivel por defecto"
// @Success      201   {object}  dto.MemberResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	m, err := h.uc.Create(c.Context(), req, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(c, m))
}

// Search godoc
// @Summary      Buscar miembros por nombre o teléfono
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "texto de búsqueda"
// @Success      200  {array}  dto.MemberResponse
// @Router       /api/members [get]
func (h *MemberHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}

	members, err := h.uc.Search(c.Context(), c.Query("q"), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, h.toResponse(c, m))
	}
	return c.JSON(out)
}

// GetByPhone godoc
// @Summary      Buscar miembro por teléfono exacto (punto de venta)
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        phone  path  string  true  "teléfono"
// @Success      200  {object}  dto.MemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/members/phone/{phone} [get]
func (h *MemberHandler) GetByPhone(c *fiber.Ctx) error {
	m, err := h.uc.GetByPhone(c.Context(), c.Params("phone"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.toResponse(c, m))
}

// Get godoc
// @Summary      Obtener miembro por ID
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del miembro"
// @Success      200  {object}  dto.MemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	m, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.toResponse(c, m))
}

// Recharge godoc
// @Summary      Recargar saldo de un miembro
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del miembro"
// @Param        body  body  dto.RechargeRequest  true  "amount; actual_amount vacío = amount"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/members/{id}/recharge [post]
func (h *MemberHandler) Recharge(c *fiber.Ctx) error {
	var req dto.RechargeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	record, err := h.uc.Recharge(c.Context(), c.Params("id"), req, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":             record.ID,
		"member_id":      record.MemberID,
		"amount":         record.Amount,
		"actual_amount":  record.ActualAmount,
		"payment_method": record.PaymentMethod,
		"created_at":     record.CreatedAt,
	})
}

// AdjustPoints godoc
// @Summary      Ajustar puntos (positivo o negativo; re-evalúa el nivel)
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del miembro"
// @Param        body  body  dto.AdjustPointsRequest  true  "points_change"
// @Success      200   {object}  dto.MemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/members/{id}/points [post]
func (h *MemberHandler) AdjustPoints(c *fiber.Ctx) error {
	var req dto.AdjustPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return badRequest(c, validator.Describe(errs))
	}

	m, err := h.uc.AdjustPoints(c.Context(), c.Params("id"), req, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.toResponse(c, m))
}

// ListLevels godoc
// @Summary      Listar niveles activos de fidelización
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MemberLevelResponse
// @Router       /api/members/levels [get]
func (h *MemberHandler) ListLevels(c *fiber.Ctx) error {
	levels, err := h.uc.ListLevels(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MemberLevelResponse, 0, len(levels))
	for _, lv := range levels {
		out = append(out, dto.MemberLevelResponse{
			ID:              lv.ID,
			Name:            lv.Name,
			Discount:        lv.Discount,
			PointsThreshold: lv.PointsThreshold,
			Priority:        lv.Priority,
			IsDefault:       lv.IsDefault,
		})
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Historial de transacciones de un miembro
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del miembro"
// @Success      200  {array}  map[string]interface{}
// @Router       /api/members/{id}/transactions [get]
func (h *MemberHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}

	txns, err := h.uc.ListTransactions(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(txns))
	for _, t := range txns {
		out = append(out, fiber.Map{
			"id":             t.ID,
			"type":           t.Type,
			"points_change":  t.PointsChange,
			"balance_change": t.BalanceChange,
			"description":    t.Description,
			"created_at":     t.CreatedAt,
		})
	}
	return c.JSON(out)
}

// toResponse arma la respuesta con el nombre y descuento del nivel cuando se resuelve.
func (h *MemberHandler) toResponse(c *fiber.Ctx, m *entity.Member) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:            m.ID,
		Name:          m.Name,
		Phone:         m.Phone,
		Gender:        m.Gender,
		LevelID:       m.LevelID,
		Points:        m.Points,
		Balance:       m.Balance,
		TotalSpend:    m.TotalSpend,
		PurchaseCount: m.PurchaseCount,
		Email:         m.Email,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
	if level, err := h.uc.LevelOf(c.Context(), m); err == nil && level != nil {
		resp.LevelName = level.Name
		resp.Discount = level.Discount
	}
	return resp
}
