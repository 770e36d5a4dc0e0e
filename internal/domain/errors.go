package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockError indica qué producto no tiene stock suficiente para una venta.
// errors.Is(err, ErrInsufficientStock) devuelve true para este tipo.
type StockError struct {
	ProductCode string
	Available   int64
	Requested   int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.ProductCode, e.Available, e.Requested)
}

// Is permite el match con el sentinel ErrInsufficientStock.
func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
