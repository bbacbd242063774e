package repository

import "github.com/ngtrphuong/ioe/internal/domain/entity"

// UserRepository puerto de persistencia de operadores.
type UserRepository interface {
	Create(u *entity.User) error
	Update(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
}

// OperationLogRepository puerto del log de operaciones (auditoría de acciones).
type OperationLogRepository interface {
	Create(l *entity.OperationLog) error
	List(operationType string, limit, offset int) ([]*entity.OperationLog, error)
}
