package repository

import (
	"time"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas e ítems.
type SaleRepository interface {
	Create(s *entity.Sale) error
	Update(s *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error)

	CreateItem(item *entity.SaleItem) error
	ListItems(saleID string) ([]*entity.SaleItem, error)
}
