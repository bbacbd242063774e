package dto

import "github.com/shopspring/decimal"

// SalesSummaryResponse resumen de ventas por día.
type SalesSummaryResponse struct {
	Day          string          `json:"day"` // YYYY-MM-DD
	SalesCount   int64           `json:"sales_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
	PointsEarned int64           `json:"points_earned"`
}

// TopProductResponse producto más vendido.
type TopProductResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// InventoryValueResponse valorización del stock a costo.
type InventoryValueResponse struct {
	TotalValue decimal.Decimal     `json:"total_value"`
	LowStock   []InventoryResponse `json:"low_stock"`
}
