package product

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// ProductUseCase catálogo de productos y categorías. El producto nace con su fila
// de inventario en cero; el stock solo cambia por movimientos de inventario.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	invRepo      repository.InventoryRepository
	lookup       BarcodeLookupService
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	invRepo repository.InventoryRepository,
	lookup BarcodeLookupService,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		invRepo:      invRepo,
		lookup:       lookup,
	}
}

// Create da de alta un producto y su inventario en cero. El barcode es único.
func (uc *ProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, error) {
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByBarcode(req.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if _, err := uc.getCategory(req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Barcode:       req.Barcode,
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Price:         req.Price,
		Cost:          req.Cost,
		Specification: req.Specification,
		Manufacturer:  req.Manufacturer,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	if err := uc.invRepo.Upsert(&entity.Inventory{
		ID:           uuid.New().String(),
		ProductID:    p.ID,
		WarningLevel: req.WarningLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// Update modifica un producto; el barcode no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*entity.Product, error) {
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := uc.getCategory(req.CategoryID); err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.CategoryID = req.CategoryID
	p.Description = req.Description
	p.Price = req.Price
	p.Cost = req.Cost
	p.Specification = req.Specification
	p.Manufacturer = req.Manufacturer
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto por id.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByBarcode busca un producto escaneado en caja.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List lista productos con filtros y su stock.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp := dto.ProductResponse{
			ID:            p.ID,
			Barcode:       p.Barcode,
			Name:          p.Name,
			CategoryID:    p.CategoryID,
			Description:   p.Description,
			Price:         p.Price,
			Cost:          p.Cost,
			Specification: p.Specification,
			Manufacturer:  p.Manufacturer,
			IsActive:      p.IsActive,
			CreatedAt:     p.CreatedAt,
		}
		if inv, err := uc.invRepo.GetByProduct(p.ID); err == nil && inv != nil {
			resp.Quantity = inv.Quantity
			resp.WarningLevel = inv.WarningLevel
			resp.LowStock = inv.IsLowStock()
		}
		out = append(out, resp)
	}
	return out, nil
}

// LookupBarcode consulta metadatos del código de barras en el servicio externo.
// Un fallo o un código desconocido devuelve Found=false, nunca un error al operador.
func (uc *ProductUseCase) LookupBarcode(ctx context.Context, barcode string) *dto.BarcodeLookupResponse {
	if uc.lookup != nil {
		if resp, err := uc.lookup.Lookup(ctx, barcode); err == nil && resp != nil {
			return resp
		}
	}
	return &dto.BarcodeLookupResponse{Found: false, Barcode: barcode}
}

// CreateCategory da de alta una categoría. El nombre es único.
func (uc *ProductUseCase) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*entity.Category, error) {
	existing, err := uc.categoryRepo.GetByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories lista categorías.
func (uc *ProductUseCase) ListCategories(ctx context.Context, onlyActive bool) ([]*entity.Category, error) {
	return uc.categoryRepo.List(onlyActive)
}

func (uc *ProductUseCase) getCategory(id string) (*entity.Category, error) {
	c, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
