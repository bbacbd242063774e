package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
	domsales "github.com/ngtrphuong/ioe/internal/domain/sales"
)

// SaleUseCase maneja la venta: cabecera, líneas una a una con descuento de stock, y
// cierre con acreditación al miembro. Los totales tienen un único camino de escritura:
// recalculateTotals, invocado después de cada mutación de ítems dentro de su misma
// transacción.
type SaleUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	memberRepo  repository.MemberRepository
	levelRepo   repository.MemberLevelRepository
	stock       StockApplier
	levels      LevelEvaluator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	memberRepo repository.MemberRepository,
	levelRepo repository.MemberLevelRepository,
	stock StockApplier,
	levels LevelEvaluator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		memberRepo:  memberRepo,
		levelRepo:   levelRepo,
		stock:       stock,
		levels:      levels,
	}
}

// CreateSale abre una venta con totales en cero. El miembro, si se indica, debe
// existir y estar activo.
func (uc *SaleUseCase) CreateSale(ctx context.Context, operatorID, memberID, remark string) (*entity.Sale, error) {
	if operatorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if memberID != "" {
		member, err := uc.memberRepo.GetByID(memberID)
		if err != nil {
			return nil, err
		}
		if member == nil || !member.IsActive {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		MemberID:       memberID,
		TotalAmount:    decimal.Zero,
		DiscountAmount: decimal.Zero,
		FinalAmount:    decimal.Zero,
		Status:         entity.SaleStatusOpen,
		OperatorID:     operatorID,
		Remark:         remark,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// AddItem agrega una línea a una venta abierta, en una sola transacción: verifica
// stock (rechaza, nunca clampa), descuenta vía OUT con la venta como referencia,
// persiste la línea con subtotal = cantidad × precio cobrado, y recalcula los
// totales de la cabecera. El precio cobrado por defecto es el estándar del producto.
func (uc *SaleUseCase) AddItem(ctx context.Context, saleID, productID string, quantity int64, actualPrice *decimal.Decimal) (*entity.Sale, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusOpen {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	price := product.Price
	charged := price
	if actualPrice != nil {
		if actualPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		charged = *actualPrice
	}

	level, err := uc.memberLevel(sale.MemberID)
	if err != nil {
		return nil, err
	}

	var lowInv *entity.Inventory
	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		_ repository.MemberRepository,
		_ repository.MemberTransactionRepository,
		_ repository.OperationLogRepository,
	) error {
		inv, _, err := uc.stock.ApplyInTx(
			invRepo, txnRepo, product,
			entity.TransactionTypeOUT, quantity,
			sale.OperatorID, fmt.Sprintf("Venta #%s", sale.ID),
		)
		if err != nil {
			return err
		}
		if inv.IsLowStock() {
			lowInv = inv
		}

		item := &entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			Price:       price,
			ActualPrice: charged,
			Subtotal:    domsales.Subtotal(quantity, charged),
			CreatedAt:   time.Now(),
		}
		if err := saleRepo.CreateItem(item); err != nil {
			return err
		}

		return uc.recalculateTotals(saleRepo, sale, level)
	})
	if err != nil {
		return nil, err
	}

	if lowInv != nil {
		uc.stock.NotifyIfLow(product, lowInv)
	}
	return sale, nil
}

// CompleteSale cierra la venta con su método de pago. Si hay miembro, en la misma
// transacción: puntos += points_earned, purchase_count += 1, total_spend +=
// final_amount, transacción PURCHASE de auditoría y reevaluación de nivel.
func (uc *SaleUseCase) CompleteSale(ctx context.Context, saleID, paymentMethod, operatorID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusOpen {
		return nil, domain.ErrInvalidInput
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.InventoryRepository,
		_ repository.InventoryTransactionRepository,
		memberRepo repository.MemberRepository,
		mtxRepo repository.MemberTransactionRepository,
		logRepo repository.OperationLogRepository,
	) error {
		now := time.Now()
		sale.Status = entity.SaleStatusCompleted
		sale.PaymentMethod = paymentMethod
		sale.UpdatedAt = now
		if err := saleRepo.Update(sale); err != nil {
			return err
		}

		if sale.MemberID != "" {
			member, err := memberRepo.GetByIDForUpdate(sale.MemberID)
			if err != nil {
				return err
			}
			if member == nil {
				return domain.ErrNotFound
			}

			member.Points += sale.PointsEarned
			member.PurchaseCount++
			member.TotalSpend = member.TotalSpend.Add(sale.FinalAmount)
			member.UpdatedAt = now

			if err := mtxRepo.Create(&entity.MemberTransaction{
				ID:           uuid.New().String(),
				MemberID:     member.ID,
				Type:         entity.MemberTxPurchase,
				PointsChange: sale.PointsEarned,
				Description:  fmt.Sprintf("Venta #%s: monto final %s, puntos +%d", sale.ID, sale.FinalAmount.StringFixed(2), sale.PointsEarned),
				CreatedBy:    operatorID,
				CreatedAt:    now,
			}); err != nil {
				return err
			}

			if _, err := uc.levels.ReevaluateInTx(mtxRepo, member, operatorID); err != nil {
				return err
			}
			if err := memberRepo.Update(member); err != nil {
				return err
			}
		}

		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    operatorID,
			OperationType: entity.OpTypeSale,
			Details:       fmt.Sprintf("Venta #%s completada: total %s, pago %s", sale.ID, sale.FinalAmount.StringFixed(2), paymentMethod),
			RelatedID:     sale.ID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale devuelve la venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*entity.Sale, []*entity.SaleItem, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, nil, err
	}
	return sale, items, nil
}

// ListSales lista ventas en un rango de fechas.
func (uc *SaleUseCase) ListSales(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(from, to, limit, offset)
}

// memberLevel devuelve el nivel del miembro de la venta (nil si no hay miembro).
func (uc *SaleUseCase) memberLevel(memberID string) (*entity.MemberLevel, error) {
	if memberID == "" {
		return nil, nil
	}
	member, err := uc.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotFound
	}
	return uc.levelRepo.GetByID(member.LevelID)
}

// recalculateTotals es el único camino de escritura de totales: suma subtotales,
// aplica el descuento del nivel y fija los puntos. Corre dentro de la transacción
// que mutó los ítems.
func (uc *SaleUseCase) recalculateTotals(saleRepo repository.SaleRepository, sale *entity.Sale, level *entity.MemberLevel) error {
	items, err := saleRepo.ListItems(sale.ID)
	if err != nil {
		return err
	}
	t := domsales.Compute(items, level)
	sale.TotalAmount = t.TotalAmount
	sale.DiscountAmount = t.DiscountAmount
	sale.FinalAmount = t.FinalAmount
	sale.PointsEarned = t.PointsEarned
	sale.UpdatedAt = time.Now()
	return saleRepo.Update(sale)
}
