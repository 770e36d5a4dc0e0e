package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return registra la devolución de un producto vendido en una factura.
// No modifica la factura original: la referencia y deja constancia del
// reembolso. El tope validado es por devolución, no acumulado (ver DESIGN.md).
type Return struct {
	ReturnID     int64
	InvoiceNum   int64
	ProductCode  string
	QtyReturned  int64
	Reason       string
	RefundAmount decimal.Decimal
	ProcessEmpID int64
	ReturnDate   time.Time
}
