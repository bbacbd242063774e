package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMemberRequest alta de miembro (también vía AJAX desde el punto de venta).
type CreateMemberRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Gender   string `json:"gender" validate:"omitempty,oneof=M F O"`
	Birthday string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	LevelID  string `json:"level_id" validate:"omitempty,uuid4"` // vacío = nivel por defecto
}

// RechargeRequest recarga de saldo de un miembro.
type RechargeRequest struct {
	Amount        decimal.Decimal `json:"amount"`                       // acreditado al saldo
	ActualAmount  decimal.Decimal `json:"actual_amount"`                // pagado (vacío = Amount)
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash wechat alipay card other"`
	Remark        string          `json:"remark"`
}

// AdjustPointsRequest ajuste manual de puntos (positivo o negativo).
type AdjustPointsRequest struct {
	PointsChange int64  `json:"points_change" validate:"required"`
	Description  string `json:"description"`
}

// MemberResponse miembro con su nivel.
type MemberResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Gender        string          `json:"gender,omitempty"`
	LevelID       string          `json:"level_id"`
	LevelName     string          `json:"level_name,omitempty"`
	Discount      decimal.Decimal `json:"discount"`
	Points        int64           `json:"points"`
	Balance       decimal.Decimal `json:"balance"`
	TotalSpend    decimal.Decimal `json:"total_spend"`
	PurchaseCount int64           `json:"purchase_count"`
	Email         string          `json:"email,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MemberLevelResponse nivel de fidelización.
type MemberLevelResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Discount        decimal.Decimal `json:"discount"`
	PointsThreshold int64           `json:"points_threshold"`
	Priority        int             `json:"priority"`
	IsDefault       bool            `json:"is_default"`
}
