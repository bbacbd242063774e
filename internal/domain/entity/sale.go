package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash    = "cash"
	PaymentWeChat  = "wechat"
	PaymentAlipay  = "alipay"
	PaymentCard    = "card"
	PaymentBalance = "balance"
	PaymentMixed   = "mixed"
	PaymentOther   = "other"
)

// Estados de una venta.
const (
	SaleStatusOpen      = "open"      // cabecera creada, admite ítems
	SaleStatusCompleted = "completed" // pagada; acreditó puntos al miembro
	SaleStatusCancelled = "cancelled"
)

// Sale es la cabecera de una venta. FinalAmount = TotalAmount − DiscountAmount,
// recalculado cada vez que cambian los ítems; ningún otro camino escribe totales.
type Sale struct {
	ID             string
	MemberID       string // vacío = venta sin miembro
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	PointsEarned   int64
	PaymentMethod  string
	Status         string
	OperatorID     string
	Remark         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleItem es una línea de venta. Price es el precio estándar del producto al momento
// de la venta; ActualPrice el cobrado; Subtotal = Quantity × ActualPrice.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int64
	Price       decimal.Decimal
	ActualPrice decimal.Decimal
	Subtotal    decimal.Decimal
	CreatedAt   time.Time
}
