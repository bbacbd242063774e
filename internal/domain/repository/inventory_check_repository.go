package repository

import "github.com/ngtrphuong/ioe/internal/domain/entity"

// InventoryCheckRepository puerto de persistencia de conteos físicos y sus ítems.
type InventoryCheckRepository interface {
	Create(check *entity.InventoryCheck) error
	Update(check *entity.InventoryCheck) error
	GetByID(id string) (*entity.InventoryCheck, error)
	List(status string, limit, offset int) ([]*entity.InventoryCheck, error)

	BulkCreateItems(items []*entity.InventoryCheckItem) error
	UpdateItem(item *entity.InventoryCheckItem) error
	GetItem(checkID, productID string) (*entity.InventoryCheckItem, error)
	ListItems(checkID string) ([]*entity.InventoryCheckItem, error)
	// CountUnchecked cuenta los ítems del conteo sin cantidad real registrada.
	CountUnchecked(checkID string) (int, error)
}
