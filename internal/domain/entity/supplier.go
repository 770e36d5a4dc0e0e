package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor de mercancía.
type Supplier struct {
	ID        int64
	Name      string
	Contact   string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

// Estados de una orden de compra.
const (
	SupplyOrderPending  = "PENDING"
	SupplyOrderReceived = "RECEIVED"
)

// SupplyOrder representa una orden de compra a un proveedor.
// Al recibirla (estado RECEIVED) se incrementa el stock de cada línea
// dentro de una sola transacción.
type SupplyOrder struct {
	OrderNum    int64
	SupplierID  int64
	TotalAmount decimal.Decimal
	Status      string
	OrderDate   time.Time
}

// SupplyOrderDetail línea de una orden de compra.
type SupplyOrderDetail struct {
	ID          int64
	OrderNum    int64
	ProductCode string
	Quantity    int64
	CostPrice   decimal.Decimal
}
