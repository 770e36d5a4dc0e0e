package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la cabecera y asigna InvoiceNum desde la secuencia.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, emp_id, invoice_timestamp, sub_total, discount_applied, tax_amount, final_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING invoice_num`
	err := r.q.QueryRow(context.Background(), query,
		invoice.CustomerID, invoice.EmployeeID, invoice.Timestamp,
		invoice.SubTotal, invoice.Discount, invoice.Tax, invoice.FinalAmount,
	).Scan(&invoice.InvoiceNum)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail inserta una línea de la factura.
func (r *InvoiceRepo) CreateDetail(detail *entity.SalesDetail) error {
	query := `
		INSERT INTO sales_details (invoice_num, product_code, quantity, selling_price)
		VALUES ($1, $2, $3, $4)
		RETURNING detail_id`
	err := r.q.QueryRow(context.Background(), query,
		detail.InvoiceNum, detail.ProductCode, detail.Quantity, detail.SellingPrice,
	).Scan(&detail.ID)
	if err != nil {
		return fmt.Errorf("insert sales detail: %w", err)
	}
	return nil
}

const headerViewQuery = `
	SELECT i.invoice_num, i.customer_id, i.emp_id, i.invoice_timestamp,
	       i.sub_total, i.discount_applied, i.tax_amount, i.final_amount,
	       COALESCE(c.customer_name, ''), e.emp_name
	FROM invoices i
	LEFT JOIN customers c ON c.customer_id = i.customer_id
	JOIN employees e ON e.emp_id = i.emp_id`

// GetHeaderView resuelve cliente y vendedor en la misma consulta (sin N+1).
// CustomerName queda vacío para ventas de mostrador.
func (r *InvoiceRepo) GetHeaderView(invoiceNum int64) (*repository.InvoiceHeaderView, error) {
	var v repository.InvoiceHeaderView
	err := r.q.QueryRow(context.Background(), headerViewQuery+` WHERE i.invoice_num = $1`, invoiceNum).Scan(
		&v.Invoice.InvoiceNum, &v.Invoice.CustomerID, &v.Invoice.EmployeeID, &v.Invoice.Timestamp,
		&v.Invoice.SubTotal, &v.Invoice.Discount, &v.Invoice.Tax, &v.Invoice.FinalAmount,
		&v.CustomerName, &v.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &v, nil
}

// ListLineViews devuelve las líneas con el nombre del producto resuelto.
func (r *InvoiceRepo) ListLineViews(invoiceNum int64) ([]repository.InvoiceLineView, error) {
	query := `
		SELECT d.detail_id, d.invoice_num, d.product_code, d.quantity, d.selling_price, p.product_name
		FROM sales_details d
		JOIN products p ON p.product_code = d.product_code
		WHERE d.invoice_num = $1
		ORDER BY d.detail_id`
	rows, err := r.q.Query(context.Background(), query, invoiceNum)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	var list []repository.InvoiceLineView
	for rows.Next() {
		var v repository.InvoiceLineView
		if err := rows.Scan(&v.Detail.ID, &v.Detail.InvoiceNum, &v.Detail.ProductCode,
			&v.Detail.Quantity, &v.Detail.SellingPrice, &v.ProductName); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// GetDetail devuelve la línea vendida de un producto en una factura.
// Si el producto aparece en varias líneas devuelve la suma de cantidades
// (las devoluciones se validan contra lo vendido en total).
func (r *InvoiceRepo) GetDetail(invoiceNum int64, productCode string) (*entity.SalesDetail, error) {
	query := `
		SELECT MIN(detail_id), invoice_num, product_code, SUM(quantity), MAX(selling_price)
		FROM sales_details
		WHERE invoice_num = $1 AND product_code = $2
		GROUP BY invoice_num, product_code`
	var d entity.SalesDetail
	err := r.q.QueryRow(context.Background(), query, invoiceNum, productCode).Scan(
		&d.ID, &d.InvoiceNum, &d.ProductCode, &d.Quantity, &d.SellingPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales detail: %w", err)
	}
	return &d, nil
}

// ListHeaders lista cabeceras (más recientes primero) con filtro por fechas.
func (r *InvoiceRepo) ListHeaders(filter repository.HeaderFilter) ([]repository.InvoiceHeaderView, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query := headerViewQuery + `
	WHERE ($1::timestamptz IS NULL OR i.invoice_timestamp >= $1)
	  AND ($2::timestamptz IS NULL OR i.invoice_timestamp <= $2)
	ORDER BY i.invoice_num DESC
	LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, filter.From, filter.To, limit)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []repository.InvoiceHeaderView
	for rows.Next() {
		var v repository.InvoiceHeaderView
		if err := rows.Scan(&v.Invoice.InvoiceNum, &v.Invoice.CustomerID, &v.Invoice.EmployeeID,
			&v.Invoice.Timestamp, &v.Invoice.SubTotal, &v.Invoice.Discount, &v.Invoice.Tax,
			&v.Invoice.FinalAmount, &v.CustomerName, &v.EmployeeName); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
