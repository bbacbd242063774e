package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryRow resumen de ventas de un día.
type SalesSummaryRow struct {
	Day          time.Time
	SalesCount   int64
	TotalAmount  decimal.Decimal
	FinalAmount  decimal.Decimal
	PointsEarned int64
}

// TopProductRow producto más vendido en un rango.
type TopProductRow struct {
	ProductID   string
	ProductName string
	Quantity    int64
	Revenue     decimal.Decimal
}

// ReportRepository agregados SQL para reportes.
type ReportRepository interface {
	SalesSummary(from, to time.Time) ([]*SalesSummaryRow, error)
	TopProducts(from, to time.Time, limit int) ([]*TopProductRow, error)
	// InventoryValue calcula Σ(cantidad × costo) del stock vigente.
	InventoryValue() (decimal.Decimal, error)
}
