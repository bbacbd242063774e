package entity

import "time"

// Tipos de operación auditada.
const (
	OpTypeInventory      = "INVENTORY"
	OpTypeInventoryCheck = "INVENTORY_CHECK"
	OpTypeSale           = "SALE"
	OpTypeMember         = "MEMBER"
	OpTypeSystem         = "SYSTEM"
)

// OperationLog es una fila de auditoría de acciones de negocio: quién hizo qué y
// sobre qué objeto. Las transiciones de conteos y los ajustes de stock escriben aquí.
type OperationLog struct {
	ID            string
	OperatorID    string
	OperationType string
	Details       string
	RelatedID     string // id del objeto afectado (venta, conteo, movimiento...)
	CreatedAt     time.Time
}
