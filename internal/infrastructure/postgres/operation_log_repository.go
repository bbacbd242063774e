package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

var _ repository.OperationLogRepository = (*OperationLogRepo)(nil)

// OperationLogRepo log de operaciones de negocio (append-only).
type OperationLogRepo struct {
	q Querier
}

// NewOperationLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationLogRepository(q Querier) *OperationLogRepo {
	return &OperationLogRepo{q: q}
}

// Create persiste una fila de auditoría.
func (r *OperationLogRepo) Create(l *entity.OperationLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO operation_logs (id, operator_id, operation_type, details, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.OperatorID, l.OperationType, l.Details, nullIfEmpty(l.RelatedID), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create operation log: %w", err)
	}
	return nil
}

// List lista el log, opcionalmente filtrado por tipo, más reciente primero.
func (r *OperationLogRepo) List(operationType string, limit, offset int) ([]*entity.OperationLog, error) {
	query := `
		SELECT id, operator_id, operation_type, details, related_id, created_at
		FROM operation_logs`
	args := []any{}
	pos := 1
	if operationType != "" {
		query += fmt.Sprintf(" WHERE operation_type = $%d", pos)
		args = append(args, operationType)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operation logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.OperationLog
	for rows.Next() {
		var l entity.OperationLog
		var relatedID *string
		if err := rows.Scan(&l.ID, &l.OperatorID, &l.OperationType, &l.Details, &relatedID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation log: %w", err)
		}
		if relatedID != nil {
			l.RelatedID = *relatedID
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
