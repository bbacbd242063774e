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

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo implementación de MemberRepository sobre PostgreSQL (usable con pool o tx).
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

const memberColumns = `id, level_id, name, phone, gender, birthday, points, balance, total_spend, purchase_count, email, address, notes, is_active, created_by, created_at, updated_at`

// Create persiste un nuevo miembro. El teléfono es único.
func (r *MemberRepo) Create(m *entity.Member) error {
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.LevelID, m.Name, m.Phone, m.Gender, m.Birthday,
		m.Points, m.Balance, m.TotalSpend, m.PurchaseCount,
		m.Email, m.Address, m.Notes, m.IsActive, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// Update actualiza puntos, saldo, nivel y datos de un miembro.
func (r *MemberRepo) Update(m *entity.Member) error {
	query := `
		UPDATE members SET level_id = $2, name = $3, phone = $4, gender = $5, birthday = $6,
			points = $7, balance = $8, total_spend = $9, purchase_count = $10,
			email = $11, address = $12, notes = $13, is_active = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.LevelID, m.Name, m.Phone, m.Gender, m.Birthday,
		m.Points, m.Balance, m.TotalSpend, m.PurchaseCount,
		m.Email, m.Address, m.Notes, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("update member: %w", err)
	}
	return nil
}

// GetByID obtiene un miembro por ID.
func (r *MemberRepo) GetByID(id string) (*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get member")
}

// GetByPhone obtiene un miembro por teléfono exacto.
func (r *MemberRepo) GetByPhone(phone string) (*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE phone = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, phone), "get member by phone")
}

// GetByIDForUpdate obtiene un miembro y bloquea la fila (acreditación de puntos/saldo).
func (r *MemberRepo) GetByIDForUpdate(id string) (*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get member for update")
}

// Search busca por nombre o teléfono parcial.
func (r *MemberRepo) Search(search string, limit, offset int) ([]*entity.Member, error) {
	query := `
		SELECT ` + memberColumns + ` FROM members
		WHERE name ILIKE $1 OR phone LIKE $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, "%"+search+"%", limit, offset)
}

// List lista miembros, más recientes primero. limit <= 0 significa sin paginación
// (export CSV).
func (r *MemberRepo) List(limit, offset int) ([]*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY created_at DESC`
	if limit <= 0 {
		return r.list(query)
	}
	return r.list(query+` LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *MemberRepo) scanOne(row pgx.Row, op string) (*entity.Member, error) {
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func (r *MemberRepo) list(query string, args ...any) ([]*entity.Member, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var list []*entity.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMember(row pgx.Row) (*entity.Member, error) {
	var m entity.Member
	err := row.Scan(
		&m.ID, &m.LevelID, &m.Name, &m.Phone, &m.Gender, &m.Birthday,
		&m.Points, &m.Balance, &m.TotalSpend, &m.PurchaseCount,
		&m.Email, &m.Address, &m.Notes, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
