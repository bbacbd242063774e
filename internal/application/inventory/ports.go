package inventory

import (
	"context"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad del ajuste de stock: cantidad nueva y fila de
// auditoría se confirman juntas o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error) error
}

// CheckTxRunner transacción para las operaciones de conteo físico (crear con snapshot,
// aprobar con ajustes).
type CheckTxRunner interface {
	RunCheck(ctx context.Context, fn func(
		checkRepo repository.InventoryCheckRepository,
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error) error
}

// LowStockNotifier recibe el aviso de stock en o bajo el umbral. Best-effort:
// la implementación registra en el log y, si hay transporte, envía correo a los
// encargados; nunca devuelve error al flujo de negocio.
type LowStockNotifier interface {
	NotifyLowStock(product *entity.Product, inv *entity.Inventory)
}
