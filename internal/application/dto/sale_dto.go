package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest abre una venta (cabecera con totales en cero).
type CreateSaleRequest struct {
	MemberID string `json:"member_id" validate:"omitempty,uuid4"`
	Remark   string `json:"remark"`
}

// AddSaleItemRequest agrega una línea a una venta abierta.
// ActualPrice nulo = precio estándar del producto.
type AddSaleItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid4"`
	Quantity    int64            `json:"quantity" validate:"required,min=1"`
	ActualPrice *decimal.Decimal `json:"actual_price"`
}

// CompleteSaleRequest cierra la venta con su método de pago.
type CompleteSaleRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash wechat alipay card balance mixed other"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ActualPrice decimal.Decimal `json:"actual_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas y totales.
type SaleResponse struct {
	ID             string             `json:"id"`
	MemberID       string             `json:"member_id,omitempty"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	FinalAmount    decimal.Decimal    `json:"final_amount"`
	PointsEarned   int64              `json:"points_earned"`
	PaymentMethod  string             `json:"payment_method,omitempty"`
	Status         string             `json:"status"`
	OperatorID     string             `json:"operator_id"`
	Remark         string             `json:"remark,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items"`
}
