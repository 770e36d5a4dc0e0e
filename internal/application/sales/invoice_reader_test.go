package sales

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
)

func TestGetInvoice_ReproduceLosTotalesPersistidos(t *testing.T) {
	store := newFakeStore(
		product("PC001", "Teclado", "230.00", 10),
		product("PC002", "Mouse", "185.00", 8),
	)
	createUC := NewCreateSaleUseCase(&fakeTxRunner{store})
	readerUC := NewInvoiceReaderUseCase(&fakeInvoiceRepo{store}, nil)

	created, err := createUC.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("230.00")},
		dto.SaleItemRequest{ProductCode: "PC002", Quantity: 2, SellingPrice: dec("185.00")},
	))
	require.NoError(t, err)

	got, err := readerUC.GetInvoice(context.Background(), created.InvoiceNum)
	require.NoError(t, err)

	assert.True(t, created.SubTotal.Equal(got.SubTotal))
	assert.True(t, created.Discount.Equal(got.Discount))
	assert.True(t, created.Tax.Equal(got.Tax))
	assert.True(t, created.FinalAmount.Equal(got.FinalAmount))
	assert.Len(t, got.Items, 2)
}

func TestGetInvoice_NoExiste(t *testing.T) {
	store := newFakeStore()
	uc := NewInvoiceReaderUseCase(&fakeInvoiceRepo{store}, nil)

	_, err := uc.GetInvoice(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetInvoice_VentaDeMostrador(t *testing.T) {
	store := newFakeStore()
	store.invoices[1] = &entity.Invoice{
		InvoiceNum: 1, EmployeeID: 1, Timestamp: time.Now(),
		SubTotal: dec("100.00"), Discount: dec("0"), Tax: dec("5.00"), FinalAmount: dec("105.00"),
	}
	uc := NewInvoiceReaderUseCase(&fakeInvoiceRepo{store}, nil)

	got, err := uc.GetInvoice(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", got.CustomerName)
}

// Total almacenado en cero (datos migrados a medias): se recalcula en lectura.
func TestGetInvoice_RecalculaTotalAusente(t *testing.T) {
	store := newFakeStore()
	store.invoices[1] = &entity.Invoice{
		InvoiceNum: 1, EmployeeID: 1, Timestamp: time.Now(),
		SubTotal: dec("1060.00"), Discount: dec("50.00"), Tax: dec("50.50"),
	}
	uc := NewInvoiceReaderUseCase(&fakeInvoiceRepo{store}, nil)

	got, err := uc.GetInvoice(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, dec("1060.50").Equal(got.FinalAmount), "total recalculado: %s", got.FinalAmount)
}

func TestExportCSV_CabecerasYFilas(t *testing.T) {
	store := newFakeStore()
	store.invoices[1] = &entity.Invoice{
		InvoiceNum: 1, EmployeeID: 1, Timestamp: time.Now(),
		SubTotal: dec("100.00"), Discount: dec("10.00"), Tax: dec("4.50"), FinalAmount: dec("94.50"),
	}
	uc := NewInvoiceReaderUseCase(&fakeInvoiceRepo{store}, nil)

	out, err := uc.ExportCSV(context.Background(), dto.ExportFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "invoice_num,"))
	assert.Contains(t, lines[1], "94.50")
	assert.Contains(t, lines[1], "Walk-in Customer")
}

func TestExportCSV_FechaInvalida(t *testing.T) {
	uc := NewInvoiceReaderUseCase(&fakeInvoiceRepo{newFakeStore()}, nil)

	_, err := uc.ExportCSV(context.Background(), dto.ExportFilter{From: "29-11-2023"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
