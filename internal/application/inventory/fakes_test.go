package inventory_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: implementan los puertos de repositorio sin base de datos.
// El store simula la transacción ejecutando la función directamente; la
// atomicidad real la cubren los tests de integración contra PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	stock     map[string]*entity.Inventory // por productID
	txns      []*entity.InventoryTransaction
	logs      []*entity.OperationLog
	checks    map[string]*entity.InventoryCheck
	checkItem map[string][]*entity.InventoryCheckItem // por checkID
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		stock:     map[string]*entity.Inventory{},
		checks:    map[string]*entity.InventoryCheck{},
		checkItem: map[string][]*entity.InventoryCheckItem{},
	}
}

// addProduct registra un producto con su stock inicial y umbral de reposición.
func (s *memStore) addProduct(id, name string, qty, warning int64) *entity.Product {
	p := &entity.Product{
		ID:       id,
		Barcode:  "88" + id,
		Name:     name,
		Price:    decimal.NewFromInt(10),
		Cost:     decimal.NewFromInt(6),
		IsActive: true,
	}
	s.products[id] = p
	s.stock[id] = &entity.Inventory{ID: uuid.New().String(), ProductID: id, Quantity: qty, WarningLevel: warning}
	return p
}

// Run / RunCheck: el propio store actúa de TxRunner.

func (s *memStore) Run(_ context.Context, fn func(
	repository.InventoryRepository,
	repository.InventoryTransactionRepository,
	repository.OperationLogRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memInvRepo{s}, &memTxnRepo{s}, &memLogRepo{s})
}

func (s *memStore) RunCheck(_ context.Context, fn func(
	repository.InventoryCheckRepository,
	repository.InventoryRepository,
	repository.InventoryTransactionRepository,
	repository.OperationLogRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memCheckRepo{s}, &memInvRepo{s}, &memTxnRepo{s}, &memLogRepo{s})
}

// ─── ProductRepository ────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if f.OnlyActive && !p.IsActive {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(p.Name, f.Search) && p.Barcode != f.Search {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ─── InventoryRepository ──────────────────────────────────────────────────────

type memInvRepo struct{ s *memStore }

func (r *memInvRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	if inv, ok := r.s.stock[productID]; ok {
		cp := *inv
		return &cp, nil
	}
	return &entity.Inventory{ProductID: productID}, nil
}

func (r *memInvRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	return r.GetByProduct(productID)
}

func (r *memInvRepo) Upsert(inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	cp := *inv
	r.s.stock[inv.ProductID] = &cp
	return nil
}

func (r *memInvRepo) ListLowStock() ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.stock {
		if inv.IsLowStock() {
			out = append(out, inv)
		}
	}
	return out, nil
}

// ─── InventoryTransactionRepository ───────────────────────────────────────────

type memTxnRepo struct{ s *memStore }

func (r *memTxnRepo) Create(tx *entity.InventoryTransaction) error {
	r.s.txns = append(r.s.txns, tx)
	return nil
}

func (r *memTxnRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range r.s.txns {
		if tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *memTxnRepo) List(limit, offset int) ([]*entity.InventoryTransaction, error) {
	return r.s.txns, nil
}

// ─── OperationLogRepository ───────────────────────────────────────────────────

type memLogRepo struct{ s *memStore }

func (r *memLogRepo) Create(l *entity.OperationLog) error {
	r.s.logs = append(r.s.logs, l)
	return nil
}

func (r *memLogRepo) List(operationType string, limit, offset int) ([]*entity.OperationLog, error) {
	var out []*entity.OperationLog
	for _, l := range r.s.logs {
		if operationType == "" || l.OperationType == operationType {
			out = append(out, l)
		}
	}
	return out, nil
}

// ─── InventoryCheckRepository ─────────────────────────────────────────────────

type memCheckRepo struct{ s *memStore }

func (r *memCheckRepo) Create(check *entity.InventoryCheck) error {
	cp := *check
	r.s.checks[check.ID] = &cp
	return nil
}

func (r *memCheckRepo) Update(check *entity.InventoryCheck) error {
	cp := *check
	r.s.checks[check.ID] = &cp
	return nil
}

func (r *memCheckRepo) GetByID(id string) (*entity.InventoryCheck, error) {
	if c, ok := r.s.checks[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCheckRepo) List(status string, limit, offset int) ([]*entity.InventoryCheck, error) {
	var out []*entity.InventoryCheck
	for _, c := range r.s.checks {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCheckRepo) BulkCreateItems(items []*entity.InventoryCheckItem) error {
	for _, it := range items {
		cp := *it
		r.s.checkItem[it.CheckID] = append(r.s.checkItem[it.CheckID], &cp)
	}
	return nil
}

func (r *memCheckRepo) UpdateItem(item *entity.InventoryCheckItem) error {
	for i, it := range r.s.checkItem[item.CheckID] {
		if it.ID == item.ID {
			cp := *item
			r.s.checkItem[item.CheckID][i] = &cp
			return nil
		}
	}
	return nil
}

func (r *memCheckRepo) GetItem(checkID, productID string) (*entity.InventoryCheckItem, error) {
	for _, it := range r.s.checkItem[checkID] {
		if it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCheckRepo) ListItems(checkID string) ([]*entity.InventoryCheckItem, error) {
	items := r.s.checkItem[checkID]
	out := make([]*entity.InventoryCheckItem, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCheckRepo) CountUnchecked(checkID string) (int, error) {
	n := 0
	for _, it := range r.s.checkItem[checkID] {
		if !it.Checked() {
			n++
		}
	}
	return n, nil
}

// ─── LowStockNotifier ─────────────────────────────────────────────────────────

type captureNotifier struct {
	mu    sync.Mutex
	calls []string // productID de cada alerta
}

func (n *captureNotifier) NotifyLowStock(product *entity.Product, _ *entity.Inventory) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, product.ID)
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}
