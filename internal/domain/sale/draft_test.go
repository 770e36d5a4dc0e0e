package sale_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/sale"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Carrito de referencia: PC001 ×3 a 230.00 + PC002 ×2 a 185.00,
// descuento 50.00, IVA 5% → subtotal 1060.00, impuesto 50.50, total 1060.50.
func TestNewDraft_TotalesReferencia(t *testing.T) {
	lines := []sale.Line{
		{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("230.00")},
		{ProductCode: "PC002", Quantity: 2, SellingPrice: dec("185.00")},
	}

	d, err := sale.NewDraft(1, nil, dec("50.00"), dec("5"), lines)
	require.NoError(t, err)

	assert.True(t, dec("1060.00").Equal(d.SubTotal), "subtotal: %s", d.SubTotal)
	assert.True(t, dec("50.00").Equal(d.Discount), "descuento: %s", d.Discount)
	assert.True(t, dec("50.50").Equal(d.Tax), "impuesto: %s", d.Tax)
	assert.True(t, dec("1060.50").Equal(d.FinalAmount), "total: %s", d.FinalAmount)
}

// FinalAmount = SubTotal - Discount + Tax debe cumplirse para cualquier draft.
func TestNewDraft_InvarianteTotalFinal(t *testing.T) {
	cases := []struct {
		name     string
		discount string
		taxRate  string
	}{
		{"sin descuento ni impuesto", "0", "0"},
		{"descuento parcial", "100.00", "19"},
		{"descuento total", "1060.00", "19"},
		{"descuento negativo", "-25.00", "5"},
	}
	lines := []sale.Line{
		{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("230.00")},
		{ProductCode: "PC002", Quantity: 2, SellingPrice: dec("185.00")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := sale.NewDraft(7, nil, dec(tc.discount), dec(tc.taxRate), lines)
			require.NoError(t, err)

			expected := d.SubTotal.Sub(d.Discount).Add(d.Tax)
			assert.True(t, expected.Equal(d.FinalAmount),
				"final %s != subtotal %s - descuento %s + impuesto %s",
				d.FinalAmount, d.SubTotal, d.Discount, d.Tax)
			assert.False(t, d.Discount.LessThan(decimal.Zero))
			assert.False(t, d.Discount.GreaterThan(d.SubTotal))
		})
	}
}

// Un descuento mayor al subtotal se recorta al subtotal: queda solo el impuesto.
func TestNewDraft_DescuentoExcesivoSeRecorta(t *testing.T) {
	lines := []sale.Line{
		{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("230.00")},
		{ProductCode: "PC002", Quantity: 2, SellingPrice: dec("185.00")},
	}

	d, err := sale.NewDraft(1, nil, dec("2000.00"), dec("5"), lines)
	require.NoError(t, err)

	assert.True(t, dec("1060.00").Equal(d.Discount), "descuento recortado: %s", d.Discount)
	// Base gravable cero → impuesto cero → total cero
	assert.True(t, decimal.Zero.Equal(d.Tax), "impuesto: %s", d.Tax)
	assert.True(t, decimal.Zero.Equal(d.FinalAmount), "total: %s", d.FinalAmount)
}

func TestNewDraft_DescuentoNegativoQuedaEnCero(t *testing.T) {
	lines := []sale.Line{{ProductCode: "PC001", Quantity: 1, SellingPrice: dec("100.00")}}

	d, err := sale.NewDraft(1, nil, dec("-10.00"), dec("0"), lines)
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(d.Discount))
	assert.True(t, dec("100.00").Equal(d.FinalAmount))
}

func TestNewDraft_SinVendedor(t *testing.T) {
	lines := []sale.Line{{ProductCode: "PC001", Quantity: 1, SellingPrice: dec("10.00")}}

	_, err := sale.NewDraft(0, nil, decimal.Zero, decimal.Zero, lines)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Las líneas con cantidad o precio no positivos se descartan; si no queda
// ninguna, la venta es inválida.
func TestNewDraft_FiltraLineasInvalidas(t *testing.T) {
	lines := []sale.Line{
		{ProductCode: "PC001", Quantity: 0, SellingPrice: dec("10.00")},
		{ProductCode: "PC002", Quantity: 2, SellingPrice: dec("0")},
		{ProductCode: "PC003", Quantity: -1, SellingPrice: dec("5.00")},
		{ProductCode: "PC004", Quantity: 2, SellingPrice: dec("7.50")},
	}

	d, err := sale.NewDraft(1, nil, decimal.Zero, decimal.Zero, lines)
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, "PC004", d.Lines[0].ProductCode)
	assert.True(t, dec("15.00").Equal(d.SubTotal))
}

func TestNewDraft_CarritoVacio(t *testing.T) {
	_, err := sale.NewDraft(1, nil, decimal.Zero, decimal.Zero, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = sale.NewDraft(1, nil, decimal.Zero, decimal.Zero, []sale.Line{
		{ProductCode: "PC001", Quantity: 0, SellingPrice: dec("10.00")},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Un producto repetido en varias líneas se consolida para el descuento de stock.
func TestDraft_QuantityByProduct(t *testing.T) {
	lines := []sale.Line{
		{ProductCode: "PC001", Quantity: 2, SellingPrice: dec("10.00")},
		{ProductCode: "PC002", Quantity: 1, SellingPrice: dec("20.00")},
		{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("10.00")},
	}

	d, err := sale.NewDraft(1, nil, decimal.Zero, decimal.Zero, lines)
	require.NoError(t, err)

	qty := d.QuantityByProduct()
	assert.Equal(t, int64(5), qty["PC001"])
	assert.Equal(t, int64(1), qty["PC002"])
	assert.Len(t, d.Lines, 3, "las líneas originales se conservan")
}
