package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/sales"
)

func item(qty int64, actualPrice string) *entity.SaleItem {
	price := decimal.RequireFromString(actualPrice)
	return &entity.SaleItem{
		Quantity:    qty,
		ActualPrice: price,
		Subtotal:    sales.Subtotal(qty, price),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSubtotal(t *testing.T) {
	assert.True(t, dec("20.00").Equal(sales.Subtotal(2, dec("10.00"))))
	assert.True(t, dec("0").Equal(sales.Subtotal(0, dec("10.00"))))
}

// Venta sin miembro: sin descuento, los puntos son la parte entera del total.
func TestCompute_SinMiembro(t *testing.T) {
	totals := sales.Compute([]*entity.SaleItem{item(2, "10.00"), item(1, "15.00")}, nil)

	assert.True(t, dec("35.00").Equal(totals.TotalAmount), "total: %s", totals.TotalAmount)
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, dec("35.00").Equal(totals.FinalAmount))
	assert.Equal(t, int64(35), totals.PointsEarned)
}

// Miembro con descuento 0.90 sobre 35.00: descuento 3.50, final 31.50, 31 puntos.
func TestCompute_ConDescuentoDeNivel(t *testing.T) {
	level := &entity.MemberLevel{Name: "Oro", Discount: dec("0.90")}
	totals := sales.Compute([]*entity.SaleItem{item(2, "10.00"), item(1, "15.00")}, level)

	assert.True(t, dec("35.00").Equal(totals.TotalAmount))
	assert.True(t, dec("3.50").Equal(totals.DiscountAmount), "descuento: %s", totals.DiscountAmount)
	assert.True(t, dec("31.50").Equal(totals.FinalAmount), "final: %s", totals.FinalAmount)
	assert.Equal(t, int64(31), totals.PointsEarned)
}

func TestCompute_VentaVacia(t *testing.T) {
	totals := sales.Compute(nil, &entity.MemberLevel{Discount: dec("0.90")})

	assert.True(t, totals.TotalAmount.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.FinalAmount.IsZero())
	assert.Equal(t, int64(0), totals.PointsEarned)
}

// Un multiplicador fuera de [0,1] se trata como sin descuento: nunca se infla
// el total ni se produce un final negativo.
func TestCompute_DescuentoFueraDeRango(t *testing.T) {
	for _, rate := range []string{"-0.10", "1.50"} {
		level := &entity.MemberLevel{Discount: dec(rate)}
		totals := sales.Compute([]*entity.SaleItem{item(1, "100.00")}, level)

		assert.True(t, totals.DiscountAmount.IsZero(), "rate %s", rate)
		assert.True(t, dec("100.00").Equal(totals.FinalAmount), "rate %s", rate)
	}
}

// Descuento 0 (gratis para el nivel) descuenta todo y no genera puntos.
func TestCompute_DescuentoTotal(t *testing.T) {
	level := &entity.MemberLevel{Discount: decimal.Zero}
	totals := sales.Compute([]*entity.SaleItem{item(1, "50.00")}, level)

	assert.True(t, dec("50.00").Equal(totals.DiscountAmount))
	assert.True(t, totals.FinalAmount.IsZero())
	assert.Equal(t, int64(0), totals.PointsEarned)
}
