package dto

import "time"

// CreateCheckRequest crea una sesión de conteo físico.
type CreateCheckRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id" validate:"omitempty,uuid4"` // vacío = todos
}

// RecordCheckItemRequest registra la cantidad contada de un producto.
type RecordCheckItemRequest struct {
	ProductID      string `json:"product_id" validate:"required,uuid4"`
	ActualQuantity int64  `json:"actual_quantity" validate:"min=0"`
	Notes          string `json:"notes"`
}

// ApproveCheckRequest aprueba el conteo; AdjustInventory aplica las diferencias al stock.
type ApproveCheckRequest struct {
	AdjustInventory bool `json:"adjust_inventory"`
}

// CheckResponse cabecera del conteo con avance.
type CheckResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	CategoryID   string     `json:"category_id,omitempty"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ApprovedBy   string     `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	TotalItems   int        `json:"total_items"`
	CheckedItems int        `json:"checked_items"`
}

// CheckItemResponse ítem del conteo.
type CheckItemResponse struct {
	ID             string     `json:"id"`
	ProductID      string     `json:"product_id"`
	SystemQuantity int64      `json:"system_quantity"`
	ActualQuantity *int64     `json:"actual_quantity,omitempty"`
	Difference     *int64     `json:"difference,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CheckedBy      string     `json:"checked_by,omitempty"`
	CheckedAt      *time.Time `json:"checked_at,omitempty"`
}
