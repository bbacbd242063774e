package sales_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// Fakes en memoria para el flujo de venta. El store actúa de TxRunner ejecutando
// la función directamente; la atomicidad real la cubre la capa postgres.

type saleStore struct {
	products map[string]*entity.Product
	stock    map[string]*entity.Inventory
	sales    map[string]*entity.Sale
	items    map[string][]*entity.SaleItem // por saleID
	members  map[string]*entity.Member
	levels   map[string]*entity.MemberLevel
	mtxs     []*entity.MemberTransaction
	txns     []*entity.InventoryTransaction
	logs     []*entity.OperationLog
}

func newSaleStore() *saleStore {
	return &saleStore{
		products: map[string]*entity.Product{},
		stock:    map[string]*entity.Inventory{},
		sales:    map[string]*entity.Sale{},
		items:    map[string][]*entity.SaleItem{},
		members:  map[string]*entity.Member{},
		levels:   map[string]*entity.MemberLevel{},
	}
}

func (s *saleStore) addProduct(id, name, price string, qty, warning int64) *entity.Product {
	p := &entity.Product{
		ID:       id,
		Barcode:  "88" + id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Cost:     decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		IsActive: true,
	}
	s.products[id] = p
	s.stock[id] = &entity.Inventory{ID: uuid.New().String(), ProductID: id, Quantity: qty, WarningLevel: warning}
	return p
}

func (s *saleStore) addLevel(id, name, discount string, threshold int64, priority int, isDefault bool) {
	s.levels[id] = &entity.MemberLevel{
		ID:              id,
		Name:            name,
		Discount:        decimal.RequireFromString(discount),
		PointsThreshold: threshold,
		Priority:        priority,
		IsDefault:       isDefault,
		IsActive:        true,
	}
}

func (s *saleStore) addMember(id, levelID string, points int64) *entity.Member {
	m := &entity.Member{
		ID:       id,
		LevelID:  levelID,
		Name:     "Miembro " + id,
		Phone:    "300" + id,
		Points:   points,
		Balance:  decimal.Zero,
		IsActive: true,
	}
	s.members[id] = m
	return m
}

// RunSale implementa sales.TxRunner.
func (s *saleStore) RunSale(_ context.Context, fn func(
	repository.SaleRepository,
	repository.InventoryRepository,
	repository.InventoryTransactionRepository,
	repository.MemberRepository,
	repository.MemberTransactionRepository,
	repository.OperationLogRepository,
) error) error {
	return fn(&fkSaleRepo{s}, &fkInvRepo{s}, &fkTxnRepo{s}, &fkMemberRepo{s}, &fkMtxRepo{s}, &fkLogRepo{s})
}

// Run implementa inventory.TxRunner para construir el AdjustStockUseCase real.
func (s *saleStore) Run(_ context.Context, fn func(
	repository.InventoryRepository,
	repository.InventoryTransactionRepository,
	repository.OperationLogRepository,
) error) error {
	return fn(&fkInvRepo{s}, &fkTxnRepo{s}, &fkLogRepo{s})
}

type fkSaleRepo struct{ s *saleStore }

func (r *fkSaleRepo) Create(sale *entity.Sale) error { cp := *sale; r.s.sales[sale.ID] = &cp; return nil }
func (r *fkSaleRepo) Update(sale *entity.Sale) error { cp := *sale; r.s.sales[sale.ID] = &cp; return nil }

func (r *fkSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if sale, ok := r.s.sales[id]; ok {
		cp := *sale
		return &cp, nil
	}
	return nil, nil
}

func (r *fkSaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if from != nil && sale.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && sale.CreatedAt.After(*to) {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

func (r *fkSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.items[item.SaleID] = append(r.s.items[item.SaleID], &cp)
	return nil
}

func (r *fkSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	return r.s.items[saleID], nil
}

type fkInvRepo struct{ s *saleStore }

func (r *fkInvRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	if inv, ok := r.s.stock[productID]; ok {
		cp := *inv
		return &cp, nil
	}
	return &entity.Inventory{ProductID: productID}, nil
}

func (r *fkInvRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	return r.GetByProduct(productID)
}

func (r *fkInvRepo) Upsert(inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	cp := *inv
	r.s.stock[inv.ProductID] = &cp
	return nil
}

func (r *fkInvRepo) ListLowStock() ([]*entity.Inventory, error) { return nil, nil }

type fkTxnRepo struct{ s *saleStore }

func (r *fkTxnRepo) Create(tx *entity.InventoryTransaction) error {
	r.s.txns = append(r.s.txns, tx)
	return nil
}

func (r *fkTxnRepo) ListByProduct(string, int, int) ([]*entity.InventoryTransaction, error) {
	return r.s.txns, nil
}

func (r *fkTxnRepo) List(int, int) ([]*entity.InventoryTransaction, error) { return r.s.txns, nil }

type fkProductRepo struct{ s *saleStore }

func (r *fkProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fkProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fkProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fkProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }
func (r *fkProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type fkMemberRepo struct{ s *saleStore }

func (r *fkMemberRepo) Create(m *entity.Member) error { cp := *m; r.s.members[m.ID] = &cp; return nil }
func (r *fkMemberRepo) Update(m *entity.Member) error { cp := *m; r.s.members[m.ID] = &cp; return nil }

func (r *fkMemberRepo) GetByID(id string) (*entity.Member, error) {
	if m, ok := r.s.members[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fkMemberRepo) GetByIDForUpdate(id string) (*entity.Member, error) { return r.GetByID(id) }
func (r *fkMemberRepo) GetByPhone(string) (*entity.Member, error)          { return nil, nil }
func (r *fkMemberRepo) Search(string, int, int) ([]*entity.Member, error)  { return nil, nil }
func (r *fkMemberRepo) List(int, int) ([]*entity.Member, error)            { return nil, nil }

type fkLevelRepo struct{ s *saleStore }

func (r *fkLevelRepo) Create(lv *entity.MemberLevel) error { r.s.levels[lv.ID] = lv; return nil }
func (r *fkLevelRepo) Update(lv *entity.MemberLevel) error { r.s.levels[lv.ID] = lv; return nil }
func (r *fkLevelRepo) GetByID(id string) (*entity.MemberLevel, error) {
	return r.s.levels[id], nil
}
func (r *fkLevelRepo) GetByName(string) (*entity.MemberLevel, error) { return nil, nil }

func (r *fkLevelRepo) ListActive() ([]*entity.MemberLevel, error) {
	var out []*entity.MemberLevel
	for _, lv := range r.s.levels {
		if lv.IsActive {
			out = append(out, lv)
		}
	}
	return out, nil
}

type fkMtxRepo struct{ s *saleStore }

func (r *fkMtxRepo) Create(tx *entity.MemberTransaction) error {
	r.s.mtxs = append(r.s.mtxs, tx)
	return nil
}

func (r *fkMtxRepo) ListByMember(string, int, int) ([]*entity.MemberTransaction, error) {
	return r.s.mtxs, nil
}

type fkLogRepo struct{ s *saleStore }

func (r *fkLogRepo) Create(l *entity.OperationLog) error { r.s.logs = append(r.s.logs, l); return nil }
func (r *fkLogRepo) List(string, int, int) ([]*entity.OperationLog, error) {
	return r.s.logs, nil
}
