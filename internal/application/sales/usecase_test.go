package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/ngtrphuong/ioe/internal/application/inventory"
	appmember "github.com/ngtrphuong/ioe/internal/application/member"
	"github.com/ngtrphuong/ioe/internal/application/sales"
	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
)

const testOperator = "op-1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newSaleUC arma el caso de uso con el ajustador de stock y el evaluador de nivel
// reales sobre los fakes; el cableado es el mismo que en producción.
func newSaleUC(s *saleStore) *sales.SaleUseCase {
	adjuster := appinv.NewAdjustStockUseCase(s, &fkProductRepo{s}, nil)
	evaluator := appmember.NewEvaluator(&fkLevelRepo{s})
	return sales.NewSaleUseCase(s, &fkSaleRepo{s}, &fkProductRepo{s}, &fkMemberRepo{s}, &fkLevelRepo{s}, adjuster, evaluator)
}

func TestSale_AddItemDescuentaStockYRecalcula(t *testing.T) {
	s := newSaleStore()
	s.addProduct("p-1", "Cola", "10.00", 100, 10)
	s.addProduct("p-2", "Galletas", "15.00", 50, 5)
	uc := newSaleUC(s)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, testOperator, "", "")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusOpen, sale.Status)

	sale, err = uc.AddItem(ctx, sale.ID, "p-1", 2, nil)
	require.NoError(t, err)
	assert.True(t, dec("20.00").Equal(sale.TotalAmount), "total tras la primera línea: %s", sale.TotalAmount)

	sale, err = uc.AddItem(ctx, sale.ID, "p-2", 1, nil)
	require.NoError(t, err)
	assert.True(t, dec("35.00").Equal(sale.TotalAmount))
	assert.True(t, sale.DiscountAmount.IsZero())
	assert.True(t, dec("35.00").Equal(sale.FinalAmount))
	assert.Equal(t, int64(35), sale.PointsEarned)

	// El stock baja por línea, con un OUT de auditoría referenciando la venta.
	assert.Equal(t, int64(98), s.stock["p-1"].Quantity)
	assert.Equal(t, int64(49), s.stock["p-2"].Quantity)
	require.Len(t, s.txns, 2)
	assert.Equal(t, entity.TransactionTypeOUT, s.txns[0].Type)
	assert.Contains(t, s.txns[0].Notes, sale.ID)
}

// Venta de miembro con descuento 0.90: 35.00 → descuento 3.50, final 31.50, 31 puntos.
func TestSale_DescuentoDeNivelYPuntos(t *testing.T) {
	s := newSaleStore()
	s.addProduct("p-1", "Cola", "10.00", 100, 10)
	s.addProduct("p-2", "Galletas", "15.00", 50, 5)
	s.addLevel("oro", "Oro", "0.90", 0, 3, false)
	s.addMember("m-1", "oro", 0)
	uc := newSaleUC(s)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, testOperator, "m-1", "")
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, sale.ID, "p-1", 2, nil)
	require.NoError(t, err)
	sale, err = uc.AddItem(ctx, sale.ID, "p-2", 1, nil)
	require.NoError(t, err)

	assert.True(t, dec("35.00").Equal(sale.TotalAmount))
	assert.True(t, dec("3.50").Equal(sale.DiscountAmount), "descuento: %s", sale.DiscountAmount)
	assert.True(t, dec("31.50").Equal(sale.FinalAmount), "final: %s", sale.FinalAmount)
	assert.Equal(t, int64(31), sale.PointsEarned)
}

// Completar acredita al miembro: puntos, contador y gasto, con PURCHASE de auditoría.
func TestSale_CompleteAcreditaAlMiembro(t *testing.T) {
	s := newSaleStore()
	s.addProduct("p-1", "Cola", "10.00", 100, 10)
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	s.addMember("m-1", "bronce", 5)
	uc := newSaleUC(s)
	ctx := context.Background()

	sale, _ := uc.CreateSale(ctx, testOperator, "m-1", "")
	_, err := uc.AddItem(ctx, sale.ID, "p-1", 3, nil)
	require.NoError(t, err)

	sale, err = uc.CompleteSale(ctx, sale.ID, entity.PaymentCash, testOperator)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, entity.PaymentCash, sale.PaymentMethod)

	m := s.members["m-1"]
	assert.Equal(t, int64(35), m.Points, "5 previos + 30 de la venta")
	assert.Equal(t, int64(1), m.PurchaseCount)
	assert.True(t, dec("30.00").Equal(m.TotalSpend))

	require.NotEmpty(t, s.mtxs)
	assert.Equal(t, entity.MemberTxPurchase, s.mtxs[0].Type)
	assert.Equal(t, int64(30), s.mtxs[0].PointsChange)
}

// Los puntos de la venta pueden subir el nivel en la misma transacción.
func TestSale_CompleteSubeDeNivel(t *testing.T) {
	s := newSaleStore()
	s.addProduct("p-1", "Cola", "100.00", 100, 10)
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	s.addLevel("plata", "Plata", "0.95", 250, 2, false)
	s.addMember("m-1", "bronce", 0)
	uc := newSaleUC(s)
	ctx := context.Background()

	sale, _ := uc.CreateSale(ctx, testOperator, "m-1", "")
	_, err := uc.AddItem(ctx, sale.ID, "p-1", 3, nil) // 300.00 → 300 puntos
	require.NoError(t, err)
	_, err = uc.CompleteSale(ctx, sale.ID, entity.PaymentWeChat, testOperator)
	require.NoError(t, err)

	assert.Equal(t, "plata", s.members["m-1"].LevelID)

	var upgrade *entity.MemberTransaction
	for _, tx := range s.mtxs {
		if tx.Type == entity.MemberTxLevelUpgrade {
			upgrade = tx
		}
	}
	require.NotNil(t, upgrade, "debe registrarse la transacción de subida de nivel")
	assert.Contains(t, upgrade.Description, "Bronce")
	assert.Contains(t, upgrade.Description, "Plata")
}

// Sin stock suficiente la línea se rechaza entera: ni ítem, ni OUT, ni totales.
func TestSale_AddItemSinStock(t *testing.T) {
	s := newSaleStore()
	s.addProduct("p-1", "Cola", "10.00", 2, 1)
	uc := newSaleUC(s)
	ctx := context.Background()

	sale, _ := uc.CreateSale(ctx, testOperator, "", "")
	_, err := uc.AddItem(ctx, sale.ID, "p-1", 5, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(2), s.stock["p-1"].Quantity)
	assert.Empty(t, s.items[sale.ID])
	assert.True(t, s.sales[sale.ID].TotalAmount.IsZero())
}

// El precio cobrado puede diferir del estándar; el subtotal usa el cobrado.
func TestSale_AddItemConPrecioNegociado(t *testing.T) {
	s := newSaleStore()
	s.addProduct("p-1", "Cola", "10.00", 100, 10)
	uc := newSaleUC(s)
	ctx := context.Background()

	sale, _ := uc.CreateSale(ctx, testOperator, "", "")
	charged := dec("8.50")
	sale, err := uc.AddItem(ctx, sale.ID, "p-1", 2, &charged)
	require.NoError(t, err)

	assert.True(t, dec("17.00").Equal(sale.TotalAmount))
	items := s.items[sale.ID]
	require.Len(t, items, 1)
	assert.True(t, dec("10.00").Equal(items[0].Price), "se conserva el precio estándar")
	assert.True(t, dec("8.50").Equal(items[0].ActualPrice))

	negativo := dec("-1.00")
	_, err = uc.AddItem(ctx, sale.ID, "p-1", 1, &negativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSale_OperacionesSobreVentaCerrada(t *testing.T) {
	s := newSaleStore()
	s.addProduct("p-1", "Cola", "10.00", 100, 10)
	uc := newSaleUC(s)
	ctx := context.Background()

	sale, _ := uc.CreateSale(ctx, testOperator, "", "")
	_, err := uc.AddItem(ctx, sale.ID, "p-1", 1, nil)
	require.NoError(t, err)
	_, err = uc.CompleteSale(ctx, sale.ID, entity.PaymentCash, testOperator)
	require.NoError(t, err)

	_, err = uc.AddItem(ctx, sale.ID, "p-1", 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CompleteSale(ctx, sale.ID, entity.PaymentCash, testOperator)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSale_CreateConMiembroInexistenteOInactivo(t *testing.T) {
	s := newSaleStore()
	m := s.addMember("m-1", "", 0)
	m.IsActive = false
	uc := newSaleUC(s)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, testOperator, "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.CreateSale(ctx, testOperator, "m-1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
