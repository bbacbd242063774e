package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

var _ repository.MemberTransactionRepository = (*MemberTransactionRepo)(nil)

// MemberTransactionRepo historial de puntos, saldo y nivel (append-only).
type MemberTransactionRepo struct {
	q Querier
}

// NewMemberTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMemberTransactionRepository(q Querier) *MemberTransactionRepo {
	return &MemberTransactionRepo{q: q}
}

// Create persiste una transacción de miembro.
func (r *MemberTransactionRepo) Create(tx *entity.MemberTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO member_transactions (id, member_id, type, points_change, balance_change, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.MemberID, tx.Type, tx.PointsChange, tx.BalanceChange,
		tx.Description, tx.CreatedBy, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create member transaction: %w", err)
	}
	return nil
}

// ListByMember lista el historial de un miembro, más reciente primero.
func (r *MemberTransactionRepo) ListByMember(memberID string, limit, offset int) ([]*entity.MemberTransaction, error) {
	query := `
		SELECT id, member_id, type, points_change, balance_change, description, created_by, created_at
		FROM member_transactions WHERE member_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list member transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.MemberTransaction
	for rows.Next() {
		var t entity.MemberTransaction
		if err := rows.Scan(&t.ID, &t.MemberID, &t.Type, &t.PointsChange, &t.BalanceChange,
			&t.Description, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

var _ repository.RechargeRecordRepository = (*RechargeRecordRepo)(nil)

// RechargeRecordRepo recargas de saldo sobre PostgreSQL (usable con pool o tx).
type RechargeRecordRepo struct {
	q Querier
}

// NewRechargeRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRechargeRecordRepository(q Querier) *RechargeRecordRepo {
	return &RechargeRecordRepo{q: q}
}

// Create persiste una recarga.
func (r *RechargeRecordRepo) Create(rec *entity.RechargeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recharge_records (id, member_id, amount, actual_amount, payment_method, operator_id, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.MemberID, rec.Amount, rec.ActualAmount,
		rec.PaymentMethod, rec.OperatorID, rec.Remark, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create recharge record: %w", err)
	}
	return nil
}

// ListByMember lista las recargas de un miembro, más recientes primero.
func (r *RechargeRecordRepo) ListByMember(memberID string, limit, offset int) ([]*entity.RechargeRecord, error) {
	query := `
		SELECT id, member_id, amount, actual_amount, payment_method, operator_id, remark, created_at
		FROM recharge_records WHERE member_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recharge records: %w", err)
	}
	defer rows.Close()

	var list []*entity.RechargeRecord
	for rows.Next() {
		var rec entity.RechargeRecord
		if err := rows.Scan(&rec.ID, &rec.MemberID, &rec.Amount, &rec.ActualAmount,
			&rec.PaymentMethod, &rec.OperatorID, &rec.Remark, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recharge record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
