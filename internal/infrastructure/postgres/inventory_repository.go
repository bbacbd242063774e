package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetByProduct obtiene el stock actual de un producto. Si no existe fila devuelve
// un inventario en cero con ID vacío (el Upsert posterior la creará).
func (r *InventoryRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, quantity, warning_level, created_at, updated_at
		FROM inventory WHERE product_id = $1`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.WarningLevel, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetByProductForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, quantity, warning_level, created_at, updated_at
		FROM inventory WHERE product_id = $1
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.WarningLevel, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la fila de stock de un producto. Asigna ID si la
// entidad viene de un GetByProduct sin fila previa.
func (r *InventoryRepo) Upsert(inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory (id, product_id, quantity, warning_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, warning_level = EXCLUDED.warning_level, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, inv.ID, inv.ProductID, inv.Quantity, inv.WarningLevel)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// ListLowStock devuelve las filas con cantidad en o bajo su umbral de reposición.
func (r *InventoryRepo) ListLowStock() ([]*entity.Inventory, error) {
	query := `
		SELECT i.id, i.product_id, i.quantity, i.warning_level, i.created_at, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id AND p.is_active
		WHERE i.quantity <= i.warning_level
		ORDER BY i.quantity`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.WarningLevel, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo log de movimientos de stock (append-only).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste un movimiento. Nunca hay Update ni Delete sobre esta tabla.
func (r *InventoryTransactionRepo) Create(txn *entity.InventoryTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (id, product_id, type, quantity, operator_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.ProductID, txn.Type, txn.Quantity, txn.OperatorID, txn.Notes, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *InventoryTransactionRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, product_id, type, quantity, operator_id, notes, created_at
		FROM inventory_transactions WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// List lista todos los movimientos, más recientes primero.
func (r *InventoryTransactionRepo) List(limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, product_id, type, quantity, operator_id, notes, created_at
		FROM inventory_transactions
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *InventoryTransactionRepo) list(query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Type, &t.Quantity, &t.OperatorID, &t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
