package entity

import "time"

// Estados de un conteo físico de inventario.
const (
	CheckStatusDraft      = "draft"
	CheckStatusInProgress = "in_progress"
	CheckStatusCompleted  = "completed"
	CheckStatusApproved   = "approved"
	CheckStatusCancelled  = "cancelled"
)

// InventoryCheck es una sesión de conteo físico que reconcilia el stock del sistema
// contra lo contado. Avanza draft → in_progress → completed → approved; cancelled
// es alcanzable desde cualquier estado no terminal.
type InventoryCheck struct {
	ID          string
	Name        string
	Description string
	Status      string
	CategoryID  string // filtro opcional al crear; vacío = todos los productos
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	ApprovedBy  string
	ApprovedAt  *time.Time
}

// InventoryCheckItem registra el resultado de conteo para un producto.
// SystemQuantity es la foto del stock al crear el conteo; ActualQuantity se captura
// durante el conteo; Difference es derivada (actual − sistema), nunca se fija a mano.
type InventoryCheckItem struct {
	ID             string
	CheckID        string
	ProductID      string
	SystemQuantity int64
	ActualQuantity *int64
	Difference     *int64
	Notes          string
	CheckedBy      string
	CheckedAt      *time.Time
}

// SetActual fija la cantidad contada y recalcula la diferencia.
func (it *InventoryCheckItem) SetActual(actual int64, checkedBy string, at time.Time) {
	diff := actual - it.SystemQuantity
	it.ActualQuantity = &actual
	it.Difference = &diff
	it.CheckedBy = checkedBy
	it.CheckedAt = &at
}

// Checked indica si el producto ya fue contado.
func (it *InventoryCheckItem) Checked() bool { return it.ActualQuantity != nil }
