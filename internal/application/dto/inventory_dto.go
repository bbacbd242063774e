package dto

import "time"

// AdjustStockRequest movimiento de stock manual (IN/OUT/ADJUST).
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Type      string `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity  int64  `json:"quantity" validate:"min=0"`
	Notes     string `json:"notes"`
}

// InventoryResponse stock de un producto.
type InventoryResponse struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name,omitempty"`
	Quantity     int64  `json:"quantity"`
	WarningLevel int64  `json:"warning_level"`
	LowStock     bool   `json:"low_stock"`
}

// InventoryTransactionResponse fila del log de movimientos.
type InventoryTransactionResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	OperatorID string    `json:"operator_id"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
