package repository

import "github.com/ngtrphuong/ioe/internal/domain/entity"

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	CategoryID string
	Search     string // nombre o código de barras,
	OnlyActive bool
}

// ProductRepository puerto de persistencia de productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	Update(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// List con limit <= 0 devuelve todos (snapshots de conteo, export CSV).
	List(f ProductFilter, limit, offset int) ([]*entity.Product, error)
}

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	Create(c *entity.Category) error
	Update(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List(onlyActive bool) ([]*entity.Category, error)
}
