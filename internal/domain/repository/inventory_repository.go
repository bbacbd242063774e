package repository

import "github.com/ngtrphuong/ioe/internal/domain/entity"

// InventoryRepository puerto para consultar/actualizar el stock por producto.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	GetByProduct(productID string) (*entity.Inventory, error)
	// GetByProductForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetByProductForUpdate(productID string) (*entity.Inventory, error)
	Upsert(inv *entity.Inventory) error
	ListLowStock() ([]*entity.Inventory, error)
}

// InventoryTransactionRepository puerto del log de movimientos (append-only).
type InventoryTransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryTransaction, error)
	List(limit, offset int) ([]*entity.InventoryTransaction, error)
}
