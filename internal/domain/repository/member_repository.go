package repository

import "github.com/ngtrphuong/ioe/internal/domain/entity"

// MemberRepository puerto de persistencia de miembros.
type MemberRepository interface {
	Create(m *entity.Member) error
	Update(m *entity.Member) error
	GetByID(id string) (*entity.Member, error)
	GetByPhone(phone string) (*entity.Member, error)
	// GetByIDForUpdate bloquea la fila del miembro (acreditación de puntos/saldo).
	GetByIDForUpdate(id string) (*entity.Member, error)
	Search(query string, limit, offset int) ([]*entity.Member, error)
	// List con limit <= 0 devuelve todos (export CSV).
	List(limit, offset int) ([]*entity.Member, error)
}

// MemberLevelRepository puerto de los niveles de fidelización.
type MemberLevelRepository interface {
	Create(lv *entity.MemberLevel) error
	Update(lv *entity.MemberLevel) error
	GetByID(id string) (*entity.MemberLevel, error)
	GetByName(name string) (*entity.MemberLevel, error)
	ListActive() ([]*entity.MemberLevel, error)
}

// MemberTransactionRepository puerto del historial de puntos/saldo/nivel.
type MemberTransactionRepository interface {
	Create(tx *entity.MemberTransaction) error
	ListByMember(memberID string, limit, offset int) ([]*entity.MemberTransaction, error)
}

// RechargeRecordRepository puerto de recargas de saldo.
type RechargeRecordRepository interface {
	Create(rec *entity.RechargeRecord) error
	ListByMember(memberID string, limit, offset int) ([]*entity.RechargeRecord, error)
}
