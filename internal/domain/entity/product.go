package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category agrupa productos (ropa, bebidas, etc.).
type Category struct {
	ID          string
	Name        string // único
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product representa un producto del catálogo, identificado por su código de barras.
// El stock vive en Inventory (relación uno a uno creada junto con el producto).
type Product struct {
	ID            string
	Barcode       string // único, escaneable
	Name          string
	CategoryID    string
	Description   string
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // precio de costo
	Specification string
	Manufacturer  string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
