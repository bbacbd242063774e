package entity

import "time"

// Tipos de movimiento de inventario.
const (
	TransactionTypeIN     = "IN"     // entrada
	TransactionTypeOUT    = "OUT"    // salida
	TransactionTypeADJUST = "ADJUST" // ajuste absoluto (conteos físicos)
)

// Inventory es el stock actual de un producto (uno a uno con Product).
// Quantity nunca puede quedar negativa: las salidas que la dejarían bajo cero se rechazan.
type Inventory struct {
	ID           string
	ProductID    string
	Quantity     int64
	WarningLevel int64 // umbral de reposición
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el stock está en o bajo el umbral de reposición.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.WarningLevel
}

// InventoryTransaction es la fila de auditoría de cada movimiento de stock.
// Append-only: nunca se actualiza ni borra. Quantity guarda siempre el valor
// absoluto movido; el signo lo da Type.
type InventoryTransaction struct {
	ID         string
	ProductID  string
	Type       string // IN, OUT, ADJUST
	Quantity   int64  // absoluto
	OperatorID string
	Notes      string
	CreatedAt  time.Time
}
