package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock nunca se modifica vía Update: solo a través de ventas, devoluciones
// y recepción de órdenes de compra (siempre dentro de una transacción).
type Product struct {
	Code         string // código único (ej. PC001)
	Name         string
	Price        decimal.Decimal // precio de venta unitario
	Stock        int64           // existencias; invariante: nunca negativo
	ReorderLevel int64
	DepartmentID *int64
	Active       bool
	LastUpdated  time.Time
}
