package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura de venta.
// InvoiceNum lo asigna la base de datos (BIGSERIAL): único y creciente.
// Invariante: FinalAmount = SubTotal - Discount + Tax (2 decimales).
// La factura y sus líneas son inmutables una vez confirmada la transacción.
type Invoice struct {
	InvoiceNum  int64
	CustomerID  *int64 // nil = venta de mostrador
	EmployeeID  int64
	Timestamp   time.Time
	SubTotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	FinalAmount decimal.Decimal
}

// SalesDetail representa una línea de una factura: producto, cantidad y
// precio de venta al momento de la operación (puede diferir del precio actual).
type SalesDetail struct {
	ID           int64
	InvoiceNum   int64
	ProductCode  string
	Quantity     int64
	SellingPrice decimal.Decimal
}

// Total devuelve el total de la línea (cantidad × precio).
func (d SalesDetail) Total() decimal.Decimal {
	return d.SellingPrice.Mul(decimal.NewFromInt(d.Quantity)).Round(2)
}
