package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrUncheckedItems     = errors.New("hay productos sin contar")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrPhoneAlreadyExists = errors.New("el teléfono ya está registrado")
)

// InsufficientStockError detalla un faltante de stock: cuánto se pidió y cuánto hay.
// errors.Is(err, ErrInsufficientStock) == true, para que los handlers mapeen igual que
// con el sentinel.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// Shortfall devuelve cuántas unidades faltan para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() int64 { return e.Requested - e.Available }

// InvalidTransitionError señala un cambio de estado no permitido en un conteo de inventario.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: %s → %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// UncheckedItemsError indica cuántos productos quedan sin contar al intentar completar un conteo.
type UncheckedItemsError struct {
	Count int
}

func (e *UncheckedItemsError) Error() string {
	return fmt.Sprintf("quedan %d productos sin contar", e.Count)
}

func (e *UncheckedItemsError) Is(target error) bool { return target == ErrUncheckedItems }
