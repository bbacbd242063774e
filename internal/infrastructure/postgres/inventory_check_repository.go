package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

var _ repository.InventoryCheckRepository = (*InventoryCheckRepo)(nil)

// InventoryCheckRepo conteos físicos y sus ítems sobre PostgreSQL (usable con pool o tx).
type InventoryCheckRepo struct {
	q Querier
}

// NewInventoryCheckRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryCheckRepository(q Querier) *InventoryCheckRepo {
	return &InventoryCheckRepo{q: q}
}

const checkColumns = `id, name, description, status, category_id, created_by, created_at, updated_at, completed_at, approved_by, approved_at`

// Create persiste la cabecera de un conteo.
func (r *InventoryCheckRepo) Create(check *entity.InventoryCheck) error {
	query := `
		INSERT INTO inventory_checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		check.ID, check.Name, check.Description, check.Status, nullIfEmpty(check.CategoryID),
		check.CreatedBy, check.CreatedAt, check.UpdatedAt,
		check.CompletedAt, nullIfEmpty(check.ApprovedBy), check.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory check: %w", err)
	}
	return nil
}

// Update actualiza estado y marcas de tiempo de un conteo.
func (r *InventoryCheckRepo) Update(check *entity.InventoryCheck) error {
	query := `
		UPDATE inventory_checks SET name = $2, description = $3, status = $4, updated_at = $5,
			completed_at = $6, approved_by = $7, approved_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		check.ID, check.Name, check.Description, check.Status, check.UpdatedAt,
		check.CompletedAt, nullIfEmpty(check.ApprovedBy), check.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory check: %w", err)
	}
	return nil
}

// GetByID obtiene un conteo por ID.
func (r *InventoryCheckRepo) GetByID(id string) (*entity.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE id = $1`
	c, err := scanCheck(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory check: %w", err)
	}
	return c, nil
}

// List lista conteos, opcionalmente filtrados por estado, más recientes primero.
func (r *InventoryCheckRepo) List(status string, limit, offset int) ([]*entity.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory checks: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryCheck
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory check: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCheck(row pgx.Row) (*entity.InventoryCheck, error) {
	var c entity.InventoryCheck
	var categoryID, approvedBy *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Status, &categoryID,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.CompletedAt, &approvedBy, &c.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		c.CategoryID = *categoryID
	}
	if approvedBy != nil {
		c.ApprovedBy = *approvedBy
	}
	return &c, nil
}

const checkItemColumns = `id, check_id, product_id, system_quantity, actual_quantity, difference, notes, checked_by, checked_at`

// BulkCreateItems inserta el snapshot de ítems al crear el conteo.
func (r *InventoryCheckRepo) BulkCreateItems(items []*entity.InventoryCheckItem) error {
	query := `
		INSERT INTO inventory_check_items (` + checkItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), query,
			it.ID, it.CheckID, it.ProductID, it.SystemQuantity,
			it.ActualQuantity, it.Difference, it.Notes, nullIfEmpty(it.CheckedBy), it.CheckedAt,
		)
		if err != nil {
			return fmt.Errorf("insert check item: %w", err)
		}
	}
	return nil
}

// UpdateItem persiste el resultado de conteo de un ítem.
func (r *InventoryCheckRepo) UpdateItem(it *entity.InventoryCheckItem) error {
	query := `
		UPDATE inventory_check_items SET actual_quantity = $2, difference = $3, notes = $4,
			checked_by = $5, checked_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.ActualQuantity, it.Difference, it.Notes, nullIfEmpty(it.CheckedBy), it.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("update check item: %w", err)
	}
	return nil
}

// GetItem obtiene el ítem de un producto dentro de un conteo.
func (r *InventoryCheckRepo) GetItem(checkID, productID string) (*entity.InventoryCheckItem, error) {
	query := `SELECT ` + checkItemColumns + ` FROM inventory_check_items WHERE check_id = $1 AND product_id = $2`
	it, err := scanCheckItem(r.q.QueryRow(context.Background(), query, checkID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get check item: %w", err)
	}
	return it, nil
}

// ListItems lista los ítems de un conteo.
func (r *InventoryCheckRepo) ListItems(checkID string) ([]*entity.InventoryCheckItem, error) {
	query := `SELECT ` + checkItemColumns + ` FROM inventory_check_items WHERE check_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, checkID)
	if err != nil {
		return nil, fmt.Errorf("list check items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryCheckItem
	for rows.Next() {
		it, err := scanCheckItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// CountUnchecked cuenta los ítems sin cantidad real registrada.
func (r *InventoryCheckRepo) CountUnchecked(checkID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_check_items WHERE check_id = $1 AND actual_quantity IS NULL`,
		checkID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unchecked items: %w", err)
	}
	return count, nil
}

func scanCheckItem(row pgx.Row) (*entity.InventoryCheckItem, error) {
	var it entity.InventoryCheckItem
	var checkedBy *string
	err := row.Scan(
		&it.ID, &it.CheckID, &it.ProductID, &it.SystemQuantity,
		&it.ActualQuantity, &it.Difference, &it.Notes, &checkedBy, &it.CheckedAt,
	)
	if err != nil {
		return nil, err
	}
	if checkedBy != nil {
		it.CheckedBy = *checkedBy
	}
	return &it, nil
}
