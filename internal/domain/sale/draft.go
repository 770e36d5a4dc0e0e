// Package sale contiene el cálculo puro de una venta: validación del
// carrito y totales (subtotal, descuento, impuesto, total final).
// No tiene efectos secundarios; la persistencia vive en application/sales.
package sale

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/metromart-pos/internal/domain"
)

// Line es una línea del carrito: producto, cantidad y precio unitario de venta.
type Line struct {
	ProductCode  string
	Quantity     int64
	SellingPrice decimal.Decimal
}

// Total devuelve cantidad × precio de la línea.
func (l Line) Total() decimal.Decimal {
	return l.SellingPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Draft es una venta validada y calculada, pendiente de persistir.
// Invariantes: 0 ≤ Discount ≤ SubTotal y FinalAmount = SubTotal - Discount + Tax.
type Draft struct {
	EmployeeID  int64
	CustomerID  *int64 // nil = venta de mostrador
	Lines       []Line
	SubTotal    decimal.Decimal
	Discount    decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje aplicado (ej. 5 = 5%)
	Tax         decimal.Decimal
	FinalAmount decimal.Decimal
}

// NewDraft valida el carrito y calcula los totales de la venta.
//
// Reglas:
//   - employeeID es obligatorio (vendedor).
//   - Se descartan líneas con cantidad ≤ 0 o precio ≤ 0; si no queda
//     ninguna, la venta es inválida.
//   - El descuento se recorta en silencio al rango [0, subtotal]; un
//     descuento excesivo no es un error.
//   - El impuesto se calcula sobre la base gravable (subtotal - descuento)
//     solo cuando esta es positiva.
//
// Todos los montos se redondean a 2 decimales.
func NewDraft(employeeID int64, customerID *int64, requestedDiscount, taxRatePercent decimal.Decimal, lines []Line) (*Draft, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: vendedor requerido", domain.ErrInvalidInput)
	}

	valid := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || !l.SellingPrice.GreaterThan(decimal.Zero) {
			continue
		}
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas válidas", domain.ErrInvalidInput)
	}

	subTotal := decimal.Zero
	for _, l := range valid {
		subTotal = subTotal.Add(l.Total())
	}
	subTotal = subTotal.Round(2)

	// Recorte silencioso: nunca negativo ni mayor al subtotal
	discount := requestedDiscount
	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subTotal) {
		discount = subTotal
	}
	discount = discount.Round(2)

	taxable := subTotal.Sub(discount)
	tax := decimal.Zero
	if taxable.GreaterThan(decimal.Zero) {
		tax = taxable.Mul(taxRatePercent).Div(decimal.NewFromInt(100)).Round(2)
	}

	return &Draft{
		EmployeeID:  employeeID,
		CustomerID:  customerID,
		Lines:       valid,
		SubTotal:    subTotal,
		Discount:    discount,
		TaxRate:     taxRatePercent,
		Tax:         tax,
		FinalAmount: subTotal.Sub(discount).Add(tax),
	}, nil
}

// QuantityByProduct suma las cantidades por producto. Un producto repetido
// en varias líneas se consolida para el descuento de stock.
func (d *Draft) QuantityByProduct() map[string]int64 {
	out := make(map[string]int64, len(d.Lines))
	for _, l := range d.Lines {
		out[l.ProductCode] += l.Quantity
	}
	return out
}
