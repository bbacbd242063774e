package sales

import (
	"context"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// TxRunner transacción de venta: línea, descuento de stock, totales y acreditación
// al miembro se confirman juntos o no se confirma nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		memberRepo repository.MemberRepository,
		mtxRepo repository.MemberTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error) error
}

// StockApplier aplica un movimiento de stock con los repositorios del caller (misma
// transacción). Si devuelve error (ej. InsufficientStockError) el caller hace rollback.
type StockApplier interface {
	ApplyInTx(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		product *entity.Product,
		movType string,
		quantity int64,
		operatorID, notes string,
	) (*entity.Inventory, *entity.InventoryTransaction, error)
	NotifyIfLow(product *entity.Product, inv *entity.Inventory)
}

// LevelEvaluator reevalúa el nivel del miembro tras un cambio de puntos, usando los
// repositorios del caller. Si el nivel cambia escribe la transacción de auditoría
// con los nombres de ambos niveles.
type LevelEvaluator interface {
	ReevaluateInTx(
		mtxRepo repository.MemberTransactionRepository,
		m *entity.Member,
		operatorID string,
	) (changed bool, err error)
}
