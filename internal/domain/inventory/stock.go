// Package inventory contiene la aritmética pura de stock, sin dependencias de
// persistencia. Los casos de uso la invocan dentro de sus transacciones.
package inventory

import (
	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
)

// ApplyMovement calcula la nueva cantidad de stock para un movimiento.
// IN suma, OUT resta (rechazando con InsufficientStockError si no alcanza),
// ADJUST fija el valor absoluto. Devuelve además la cantidad absoluta movida,
// que es lo que se persiste en la fila de auditoría.
func ApplyMovement(inv *entity.Inventory, productName, movType string, quantity int64) (newQty, moved int64, err error) {
	switch movType {
	case entity.TransactionTypeIN:
		if quantity <= 0 {
			return 0, 0, domain.ErrInvalidInput
		}
		return inv.Quantity + quantity, quantity, nil
	case entity.TransactionTypeOUT:
		if quantity <= 0 {
			return 0, 0, domain.ErrInvalidInput
		}
		if inv.Quantity < quantity {
			return 0, 0, &domain.InsufficientStockError{
				ProductID:   inv.ProductID,
				ProductName: productName,
				Requested:   quantity,
				Available:   inv.Quantity,
			}
		}
		return inv.Quantity - quantity, quantity, nil
	case entity.TransactionTypeADJUST:
		if quantity < 0 {
			return 0, 0, domain.ErrInvalidInput
		}
		moved = quantity - inv.Quantity
		if moved < 0 {
			moved = -moved
		}
		return quantity, moved, nil
	default:
		return 0, 0, domain.ErrInvalidInput
	}
}
