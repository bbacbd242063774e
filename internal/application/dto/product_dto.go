package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto; crea también su fila de inventario en 0.
type CreateProductRequest struct {
	Barcode       string          `json:"barcode" validate:"required,max=100"`
	Name          string          `json:"name" validate:"required,max=200"`
	CategoryID    string          `json:"category_id" validate:"required,uuid4"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Specification string          `json:"specification"`
	Manufacturer  string          `json:"manufacturer"`
	WarningLevel  int64           `json:"warning_level" validate:"omitempty,min=0"`
}

// UpdateProductRequest actualización de producto (el barcode no cambia).
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	CategoryID    string          `json:"category_id" validate:"required,uuid4"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Specification string          `json:"specification"`
	Manufacturer  string          `json:"manufacturer"`
	IsActive      *bool           `json:"is_active"`
}

// ProductResponse producto con su stock actual.
type ProductResponse struct {
	ID            string          `json:"id"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Specification string          `json:"specification,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	IsActive      bool            `json:"is_active"`
	Quantity      int64           `json:"quantity"`
	WarningLevel  int64           `json:"warning_level"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// BarcodeLookupResponse metadatos sugeridos por el servicio externo de códigos
// de barras. Enriquecimiento best-effort: Found=false cuando el servicio no
// conoce el código o no está configurado.
type BarcodeLookupResponse struct {
	Found          bool            `json:"found"`
	Barcode        string          `json:"barcode"`
	Name           string          `json:"name,omitempty"`
	Specification  string          `json:"specification,omitempty"`
	Manufacturer   string          `json:"manufacturer,omitempty"`
	SuggestedPrice decimal.Decimal `json:"suggested_price,omitempty"`
}
