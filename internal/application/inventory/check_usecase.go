package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// CheckUseCase maneja las sesiones de conteo físico de inventario y su máquina de
// estados: draft → in_progress → completed → approved, con cancelled alcanzable desde
// cualquier estado no terminal. Cada transición escribe una fila en el log de
// operaciones con el actor y el conteo.
type CheckUseCase struct {
	txRunner    CheckTxRunner
	checkRepo   repository.InventoryCheckRepository
	productRepo repository.ProductRepository
	adjuster    *AdjustStockUseCase
}

// NewCheckUseCase construye el caso de uso.
func NewCheckUseCase(
	txRunner CheckTxRunner,
	checkRepo repository.InventoryCheckRepository,
	productRepo repository.ProductRepository,
	adjuster *AdjustStockUseCase,
) *CheckUseCase {
	return &CheckUseCase{txRunner: txRunner, checkRepo: checkRepo, productRepo: productRepo, adjuster: adjuster}
}

// Create crea el conteo en draft y toma la foto del stock de cada producto activo
// (filtrado por categoría si se indica). Los productos sin fila de inventario la
// obtienen en 0 antes del snapshot, todo dentro de una transacción.
func (uc *CheckUseCase) Create(ctx context.Context, name, description, categoryID, userID string) (*entity.InventoryCheck, error) {
	if name == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}

	products, err := uc.productRepo.List(repository.ProductFilter{CategoryID: categoryID, OnlyActive: true}, 0, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	check := &entity.InventoryCheck{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Status:      entity.CheckStatusDraft,
		CategoryID:  categoryID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunCheck(ctx, func(
		checkRepo repository.InventoryCheckRepository,
		invRepo repository.InventoryRepository,
		_ repository.InventoryTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error {
		if err := checkRepo.Create(check); err != nil {
			return err
		}

		items := make([]*entity.InventoryCheckItem, 0, len(products))
		for _, p := range products {
			inv, err := invRepo.GetByProduct(p.ID)
			if err != nil {
				return err
			}
			if inv.ID == "" {
				// Producto sin inventario: se crea la fila en 0 antes del snapshot
				inv.UpdatedAt = now
				if err := invRepo.Upsert(inv); err != nil {
					return err
				}
			}
			items = append(items, &entity.InventoryCheckItem{
				ID:             uuid.New().String(),
				CheckID:        check.ID,
				ProductID:      p.ID,
				SystemQuantity: inv.Quantity,
			})
		}
		if len(items) > 0 {
			if err := checkRepo.BulkCreateItems(items); err != nil {
				return err
			}
		}

		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    userID,
			OperationType: entity.OpTypeInventoryCheck,
			Details:       fmt.Sprintf("Conteo creado: %s (%d productos)", name, len(items)),
			RelatedID:     check.ID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return check, nil
}

// Start pasa el conteo de draft a in_progress.
func (uc *CheckUseCase) Start(ctx context.Context, checkID, userID string) (*entity.InventoryCheck, error) {
	return uc.transition(ctx, checkID, userID, entity.CheckStatusInProgress, func(check *entity.InventoryCheck) error {
		if check.Status != entity.CheckStatusDraft {
			return &domain.InvalidTransitionError{From: check.Status, To: entity.CheckStatusInProgress}
		}
		return nil
	}, "Conteo iniciado")
}

// RecordItem registra la cantidad contada de un producto. Solo con el conteo
// in_progress; la cantidad debe ser ≥ 0. La diferencia se deriva (actual − sistema)
// y se guarda quién contó y cuándo.
func (uc *CheckUseCase) RecordItem(ctx context.Context, checkID, productID string, actual int64, userID, notes string) (*entity.InventoryCheckItem, error) {
	if actual < 0 {
		return nil, domain.ErrInvalidInput
	}

	check, err := uc.checkRepo.GetByID(checkID)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, domain.ErrNotFound
	}
	if check.Status != entity.CheckStatusInProgress {
		return nil, &domain.InvalidTransitionError{From: check.Status, To: "record_item"}
	}

	item, err := uc.checkRepo.GetItem(checkID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.InventoryCheckItem
	err = uc.txRunner.RunCheck(ctx, func(
		checkRepo repository.InventoryCheckRepository,
		_ repository.InventoryRepository,
		_ repository.InventoryTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error {
		item.SetActual(actual, userID, time.Now())
		item.Notes = notes
		if err := checkRepo.UpdateItem(item); err != nil {
			return err
		}
		result = item
		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    userID,
			OperationType: entity.OpTypeInventoryCheck,
			Details:       fmt.Sprintf("Producto contado en %s: %s, cantidad real %d", check.Name, productID, actual),
			RelatedID:     check.ID,
			CreatedAt:     time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Complete pasa in_progress → completed, rechazando con UncheckedItemsError si queda
// algún producto sin contar. También admite la reentrada approved → completed que el
// flujo histórico permite; por ese camino no se vuelve a exigir el conteo completo.
func (uc *CheckUseCase) Complete(ctx context.Context, checkID, userID string) (*entity.InventoryCheck, error) {
	return uc.transition(ctx, checkID, userID, entity.CheckStatusCompleted, func(check *entity.InventoryCheck) error {
		switch check.Status {
		case entity.CheckStatusInProgress:
			unchecked, err := uc.checkRepo.CountUnchecked(check.ID)
			if err != nil {
				return err
			}
			if unchecked > 0 {
				return &domain.UncheckedItemsError{Count: unchecked}
			}
			return nil
		case entity.CheckStatusApproved:
			return nil
		default:
			return &domain.InvalidTransitionError{From: check.Status, To: entity.CheckStatusCompleted}
		}
	}, "Conteo completado")
}

// Approve pasa completed → approved. Con adjustInventory, cada ítem con diferencia
// distinta de cero genera un ADJUST que deja el stock en la cantidad contada — un
// movimiento de auditoría por ítem ajustado, todo dentro de la transacción de
// aprobación.
func (uc *CheckUseCase) Approve(ctx context.Context, checkID, userID string, adjustInventory bool) (*entity.InventoryCheck, error) {
	check, err := uc.checkRepo.GetByID(checkID)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, domain.ErrNotFound
	}
	if check.Status != entity.CheckStatusCompleted {
		return nil, &domain.InvalidTransitionError{From: check.Status, To: entity.CheckStatusApproved}
	}

	items, err := uc.checkRepo.ListItems(checkID)
	if err != nil {
		return nil, err
	}

	type lowStock struct {
		product *entity.Product
		inv     *entity.Inventory
	}
	var lows []lowStock

	now := time.Now()
	err = uc.txRunner.RunCheck(ctx, func(
		checkRepo repository.InventoryCheckRepository,
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error {
		if adjustInventory {
			for _, item := range items {
				if item.Difference == nil || *item.Difference == 0 || item.ActualQuantity == nil {
					continue
				}
				product, err := uc.productRepo.GetByID(item.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				inv, _, err := uc.adjuster.ApplyInTx(
					invRepo, txnRepo, product,
					entity.TransactionTypeADJUST, *item.ActualQuantity,
					userID, fmt.Sprintf("Ajuste por conteo: %s", check.Name),
				)
				if err != nil {
					return err
				}
				if inv.IsLowStock() {
					lows = append(lows, lowStock{product: product, inv: inv})
				}
			}
		}

		check.Status = entity.CheckStatusApproved
		check.ApprovedBy = userID
		check.ApprovedAt = &now
		check.UpdatedAt = now
		if err := checkRepo.Update(check); err != nil {
			return err
		}

		details := fmt.Sprintf("Conteo aprobado: %s", check.Name)
		if adjustInventory {
			details += " (stock ajustado)"
		}
		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    userID,
			OperationType: entity.OpTypeInventoryCheck,
			Details:       details,
			RelatedID:     check.ID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	for _, ls := range lows {
		uc.adjuster.NotifyIfLow(ls.product, ls.inv)
	}
	return check, nil
}

// Cancel pasa cualquier estado no terminal a cancelled. Aprobados y ya cancelados no
// se pueden cancelar.
func (uc *CheckUseCase) Cancel(ctx context.Context, checkID, userID string) (*entity.InventoryCheck, error) {
	return uc.transition(ctx, checkID, userID, entity.CheckStatusCancelled, func(check *entity.InventoryCheck) error {
		if check.Status == entity.CheckStatusApproved || check.Status == entity.CheckStatusCancelled {
			return &domain.InvalidTransitionError{From: check.Status, To: entity.CheckStatusCancelled}
		}
		return nil
	}, "Conteo cancelado")
}

// Get devuelve el conteo con sus ítems.
func (uc *CheckUseCase) Get(ctx context.Context, checkID string) (*entity.InventoryCheck, []*entity.InventoryCheckItem, error) {
	check, err := uc.checkRepo.GetByID(checkID)
	if err != nil {
		return nil, nil, err
	}
	if check == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.checkRepo.ListItems(checkID)
	if err != nil {
		return nil, nil, err
	}
	return check, items, nil
}

// List lista conteos, opcionalmente por estado.
func (uc *CheckUseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.InventoryCheck, error) {
	return uc.checkRepo.List(status, limit, offset)
}

// transition aplica una transición simple: valida con guard, cambia el estado,
// persiste y escribe el log.
func (uc *CheckUseCase) transition(
	ctx context.Context,
	checkID, userID, target string,
	guard func(*entity.InventoryCheck) error,
	logPrefix string,
) (*entity.InventoryCheck, error) {
	check, err := uc.checkRepo.GetByID(checkID)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, domain.ErrNotFound
	}
	if err := guard(check); err != nil {
		return nil, err
	}

	now := time.Now()
	check.Status = target
	check.UpdatedAt = now
	if target == entity.CheckStatusCompleted {
		check.CompletedAt = &now
	}

	err = uc.txRunner.RunCheck(ctx, func(
		checkRepo repository.InventoryCheckRepository,
		_ repository.InventoryRepository,
		_ repository.InventoryTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error {
		if err := checkRepo.Update(check); err != nil {
			return err
		}
		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    userID,
			OperationType: entity.OpTypeInventoryCheck,
			Details:       fmt.Sprintf("%s: %s", logPrefix, check.Name),
			RelatedID:     check.ID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return check, nil
}
