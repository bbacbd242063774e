package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	dominv "github.com/ngtrphuong/ioe/internal/domain/inventory"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// AdjustStockUseCase registra movimientos de stock (IN, OUT, ADJUST) de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y exactamente una fila
// de auditoría por movimiento.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	notifier    LowStockNotifier
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository, notifier LowStockNotifier) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo, notifier: notifier}
}

// AdjustInput entrada para un movimiento de stock.
// Quantity > 0 para IN/OUT; para ADJUST es la cantidad final absoluta (≥ 0).
type AdjustInput struct {
	ProductID  string
	Type       string // IN, OUT, ADJUST
	Quantity   int64
	OperatorID string
	Notes      string
}

// Adjust valida la entrada, abre la transacción y aplica el movimiento: obtiene o crea
// la fila de inventario bloqueada, aplica IN/OUT/ADJUST, persiste, escribe la fila de
// InventoryTransaction y el log de operación. Tras el commit, si el stock quedó en o
// bajo el umbral emite la alerta de stock bajo (fuera de la tx: el aviso es best-effort
// y no debe abortar un movimiento ya válido).
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.Inventory, error) {
	switch in.Type {
	case entity.TransactionTypeIN, entity.TransactionTypeOUT:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.TransactionTypeADJUST:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.OperatorID == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.Inventory
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error {
		inv, txn, err := uc.ApplyInTx(invRepo, txnRepo, product, in.Type, in.Quantity, in.OperatorID, in.Notes)
		if err != nil {
			return err
		}
		result = inv
		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    in.OperatorID,
			OperationType: entity.OpTypeInventory,
			Details:       fmt.Sprintf("%s %s: cantidad %d, notas: %s", in.Type, product.Name, in.Quantity, in.Notes),
			RelatedID:     txn.ID,
			CreatedAt:     time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notifyIfLow(product, result)
	return result, nil
}

// ApplyInTx aplica un movimiento usando los repositorios del caller (misma transacción).
// Lo reutilizan la venta (OUT por línea, con la venta como referencia en Notes) y la
// aprobación de conteos (ADJUST a la cantidad contada). La cantidad de la fila de
// auditoría es siempre el valor absoluto movido.
func (uc *AdjustStockUseCase) ApplyInTx(
	invRepo repository.InventoryRepository,
	txnRepo repository.InventoryTransactionRepository,
	product *entity.Product,
	movType string,
	quantity int64,
	operatorID, notes string,
) (*entity.Inventory, *entity.InventoryTransaction, error) {
	inv, err := invRepo.GetByProductForUpdate(product.ID)
	if err != nil {
		return nil, nil, err
	}

	newQty, moved, err := dominv.ApplyMovement(inv, product.Name, movType, quantity)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	inv.Quantity = newQty
	inv.UpdatedAt = now
	if err := invRepo.Upsert(inv); err != nil {
		return nil, nil, err
	}

	txn := &entity.InventoryTransaction{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		Type:       movType,
		Quantity:   moved,
		OperatorID: operatorID,
		Notes:      notes,
		CreatedAt:  now,
	}
	if err := txnRepo.Create(txn); err != nil {
		return nil, nil, err
	}
	return inv, txn, nil
}

// notifyIfLow dispara la alerta de stock bajo si aplica.
func (uc *AdjustStockUseCase) notifyIfLow(product *entity.Product, inv *entity.Inventory) {
	if inv == nil || uc.notifier == nil {
		return
	}
	if inv.IsLowStock() {
		uc.notifier.NotifyLowStock(product, inv)
	}
}

// NotifyIfLow versión exportada para los casos de uso que aplican movimientos dentro
// de su propia transacción (ventas, conteos) y avisan después del commit.
func (uc *AdjustStockUseCase) NotifyIfLow(product *entity.Product, inv *entity.Inventory) {
	uc.notifyIfLow(product, inv)
}
