// Package sales contiene el cálculo puro de totales de venta. Es la única
// fuente de verdad: el caso de uso lo invoca después de cada mutación de ítems
// y no existe ningún otro camino que escriba totales.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
)

// Totals es el resultado del recálculo de una venta.
type Totals struct {
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	PointsEarned   int64
}

// Subtotal calcula la línea: cantidad × precio cobrado.
func Subtotal(quantity int64, actualPrice decimal.Decimal) decimal.Decimal {
	return actualPrice.Mul(decimal.NewFromInt(quantity))
}

// Compute recalcula los totales a partir de los ítems y el nivel del miembro
// (nil = venta sin miembro, sin descuento). discount es el multiplicador 0–1
// del nivel: descuento = total × (1 − discount); final = total − descuento;
// puntos = parte entera del final.
func Compute(items []*entity.SaleItem, level *entity.MemberLevel) Totals {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}

	discountAmount := decimal.Zero
	if level != nil {
		rate := level.Discount
		// Fuera de rango se trata como sin descuento, igual que un nivel sin beneficio.
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			rate = decimal.NewFromInt(1)
		}
		discountAmount = total.Mul(decimal.NewFromInt(1).Sub(rate))
	}
	if discountAmount.GreaterThan(total) {
		discountAmount = total
	}
	final := total.Sub(discountAmount)

	points := final.IntPart()
	if points < 0 {
		points = 0
	}

	return Totals{
		TotalAmount:    total,
		DiscountAmount: discountAmount,
		FinalAmount:    final,
		PointsEarned:   points,
	}
}
