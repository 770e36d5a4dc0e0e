package sales

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// walkInCustomerName nombre mostrado para ventas sin cliente registrado.
const walkInCustomerName = "Walk-in Customer"

// InvoiceReaderUseCase lecturas de facturas: vista completa, exportación CSV y PDF.
type InvoiceReaderUseCase struct {
	invoiceRepo repository.InvoiceRepository
	pdfGen      InvoicePDFGenerator
}

// NewInvoiceReaderUseCase construye el caso de uso. pdfGen puede ser nil si
// no se expone la ruta de PDF.
func NewInvoiceReaderUseCase(invoiceRepo repository.InvoiceRepository, pdfGen InvoicePDFGenerator) *InvoiceReaderUseCase {
	return &InvoiceReaderUseCase{invoiceRepo: invoiceRepo, pdfGen: pdfGen}
}

// GetInvoice devuelve la factura con nombres resueltos (cliente, vendedor,
// productos) en dos consultas con JOIN, sin lecturas por fila.
//
// Si el total almacenado quedó en cero (datos parcialmente migrados), se
// recalcula como subtotal - descuento + impuesto. Es un default defensivo
// de lectura; la fila no se modifica.
func (uc *InvoiceReaderUseCase) GetInvoice(ctx context.Context, invoiceNum int64) (*dto.InvoiceResponse, error) {
	header, err := uc.invoiceRepo.GetHeaderView(invoiceNum)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("%w: factura %d", domain.ErrNotFound, invoiceNum)
	}

	lines, err := uc.invoiceRepo.ListLineViews(invoiceNum)
	if err != nil {
		return nil, err
	}

	inv := header.Invoice
	finalAmount := inv.FinalAmount
	if finalAmount.IsZero() {
		finalAmount = inv.SubTotal.Sub(inv.Discount).Add(inv.Tax)
	}

	customerName := header.CustomerName
	if customerName == "" {
		customerName = walkInCustomerName
	}

	resp := &dto.InvoiceResponse{
		InvoiceNum:   inv.InvoiceNum,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		EmployeeID:   inv.EmployeeID,
		EmployeeName: header.EmployeeName,
		Timestamp:    inv.Timestamp.Format(time.RFC3339),
		SubTotal:     inv.SubTotal,
		Discount:     inv.Discount,
		Tax:          inv.Tax,
		FinalAmount:  finalAmount,
		Items:        make([]dto.InvoiceItemResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ProductCode:  l.Detail.ProductCode,
			ProductName:  l.ProductName,
			Quantity:     l.Detail.Quantity,
			SellingPrice: l.Detail.SellingPrice,
			Total:        l.Detail.Total(),
		})
	}
	return resp, nil
}

// ListInvoices lista cabeceras (sin líneas) con filtro por rango de fechas.
func (uc *InvoiceReaderUseCase) ListInvoices(ctx context.Context, in dto.ExportFilter) ([]dto.InvoiceResponse, error) {
	filter, err := parseHeaderFilter(in)
	if err != nil {
		return nil, err
	}
	headers, err := uc.invoiceRepo.ListHeaders(*filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(headers))
	for _, h := range headers {
		customerName := h.CustomerName
		if customerName == "" {
			customerName = walkInCustomerName
		}
		inv := h.Invoice
		finalAmount := inv.FinalAmount
		if finalAmount.IsZero() {
			finalAmount = inv.SubTotal.Sub(inv.Discount).Add(inv.Tax)
		}
		out = append(out, dto.InvoiceResponse{
			InvoiceNum:   inv.InvoiceNum,
			CustomerID:   inv.CustomerID,
			CustomerName: customerName,
			EmployeeID:   inv.EmployeeID,
			EmployeeName: h.EmployeeName,
			Timestamp:    inv.Timestamp.Format(time.RFC3339),
			SubTotal:     inv.SubTotal,
			Discount:     inv.Discount,
			Tax:          inv.Tax,
			FinalAmount:  finalAmount,
		})
	}
	return out, nil
}

// GetInvoicePDF genera el PDF de la factura.
func (uc *InvoiceReaderUseCase) GetInvoicePDF(ctx context.Context, invoiceNum int64) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("%w: generación de PDF no configurada", domain.ErrConflict)
	}
	view, err := uc.GetInvoice(ctx, invoiceNum)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateInvoicePDF(ctx, view)
}

// ExportCSV exporta cabeceras de factura filtradas por rango de fechas o
// tope de filas. Proyección de solo lectura.
func (uc *InvoiceReaderUseCase) ExportCSV(ctx context.Context, in dto.ExportFilter) ([]byte, error) {
	filter, err := parseHeaderFilter(in)
	if err != nil {
		return nil, err
	}

	headers, err := uc.invoiceRepo.ListHeaders(*filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"invoice_num", "invoice_timestamp", "customer_name", "emp_name", "sub_total", "discount_applied", "tax_amount", "final_amount"})
	for _, h := range headers {
		customerName := h.CustomerName
		if customerName == "" {
			customerName = walkInCustomerName
		}
		inv := h.Invoice
		finalAmount := inv.FinalAmount
		if finalAmount.IsZero() {
			finalAmount = inv.SubTotal.Sub(inv.Discount).Add(inv.Tax)
		}
		_ = w.Write([]string{
			fmt.Sprintf("%d", inv.InvoiceNum),
			inv.Timestamp.Format(time.RFC3339),
			customerName,
			h.EmployeeName,
			inv.SubTotal.StringFixed(2),
			inv.Discount.StringFixed(2),
			inv.Tax.StringFixed(2),
			finalAmount.StringFixed(2),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// parseHeaderFilter convierte el filtro de query (fechas YYYY-MM-DD) al
// filtro del repositorio. 'to' es inclusivo hasta el final del día.
func parseHeaderFilter(in dto.ExportFilter) (*repository.HeaderFilter, error) {
	filter := repository.HeaderFilter{Limit: in.Limit}
	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha 'from' inválida", domain.ErrInvalidInput)
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha 'to' inválida", domain.ErrInvalidInput)
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return &filter, nil
}
