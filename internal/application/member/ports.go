package member

import (
	"context"

	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// TxRunner transacción para operaciones de miembro (recargas, ajustes de puntos):
// saldo, historial y log se confirman juntos.
type TxRunner interface {
	RunMember(ctx context.Context, fn func(
		memberRepo repository.MemberRepository,
		mtxRepo repository.MemberTransactionRepository,
		rechargeRepo repository.RechargeRecordRepository,
		logRepo repository.OperationLogRepository,
	) error) error
}
