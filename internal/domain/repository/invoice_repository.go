package repository

import (
	"time"

	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
)

// InvoiceHeaderView cabecera de factura con nombres resueltos en un solo JOIN.
// CustomerName queda vacío para ventas de mostrador (el caller aplica el default).
type InvoiceHeaderView struct {
	Invoice      entity.Invoice
	CustomerName string
	EmployeeName string
}

// InvoiceLineView línea de factura con el nombre del producto resuelto.
type InvoiceLineView struct {
	Detail      entity.SalesDetail
	ProductName string
}

// HeaderFilter filtro para el listado/exportación de cabeceras.
type HeaderFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	// Create inserta la cabecera y asigna invoice.InvoiceNum desde la secuencia.
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.SalesDetail) error
	// GetHeaderView resuelve cliente y vendedor en la misma consulta (sin N+1).
	GetHeaderView(invoiceNum int64) (*InvoiceHeaderView, error)
	ListLineViews(invoiceNum int64) ([]InvoiceLineView, error)
	// GetDetail devuelve la línea vendida de un producto en una factura
	// (validación de devoluciones).
	GetDetail(invoiceNum int64, productCode string) (*entity.SalesDetail, error)
	ListHeaders(filter HeaderFilter) ([]InvoiceHeaderView, error)
}
