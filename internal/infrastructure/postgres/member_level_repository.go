package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

var _ repository.MemberLevelRepository = (*MemberLevelRepo)(nil)

// MemberLevelRepo niveles de fidelización sobre PostgreSQL (usable con pool o tx).
type MemberLevelRepo struct {
	q Querier
}

// NewMemberLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMemberLevelRepository(q Querier) *MemberLevelRepo {
	return &MemberLevelRepo{q: q}
}

const levelColumns = `id, name, discount, points_threshold, priority, is_default, is_active, created_at, updated_at`

// Create persiste un nivel. El nombre es único.
func (r *MemberLevelRepo) Create(lv *entity.MemberLevel) error {
	query := `
		INSERT INTO member_levels (` + levelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lv.ID, lv.Name, lv.Discount, lv.PointsThreshold, lv.Priority,
		lv.IsDefault, lv.IsActive, lv.CreatedAt, lv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert member level: %w", err)
	}
	return nil
}

// Update actualiza un nivel existente.
func (r *MemberLevelRepo) Update(lv *entity.MemberLevel) error {
	query := `
		UPDATE member_levels SET name = $2, discount = $3, points_threshold = $4,
			priority = $5, is_default = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lv.ID, lv.Name, lv.Discount, lv.PointsThreshold, lv.Priority,
		lv.IsDefault, lv.IsActive, lv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update member level: %w", err)
	}
	return nil
}

// GetByID obtiene un nivel por ID.
func (r *MemberLevelRepo) GetByID(id string) (*entity.MemberLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM member_levels WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get member level")
}

// GetByName obtiene un nivel por nombre (importación CSV).
func (r *MemberLevelRepo) GetByName(name string) (*entity.MemberLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM member_levels WHERE name = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get member level by name")
}

// ListActive lista los niveles activos por prioridad descendente.
func (r *MemberLevelRepo) ListActive() ([]*entity.MemberLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM member_levels WHERE is_active ORDER BY priority DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list member levels: %w", err)
	}
	defer rows.Close()

	var list []*entity.MemberLevel
	for rows.Next() {
		lv, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member level: %w", err)
		}
		list = append(list, lv)
	}
	return list, rows.Err()
}

func (r *MemberLevelRepo) scanOne(row pgx.Row, op string) (*entity.MemberLevel, error) {
	lv, err := scanLevel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lv, nil
}

func scanLevel(row pgx.Row) (*entity.MemberLevel, error) {
	var lv entity.MemberLevel
	err := row.Scan(
		&lv.ID, &lv.Name, &lv.Discount, &lv.PointsThreshold, &lv.Priority,
		&lv.IsDefault, &lv.IsActive, &lv.CreatedAt, &lv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lv, nil
}
