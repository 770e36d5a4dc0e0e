package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
// Va siempre contra el pool (nunca dentro de una transacción).
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesSummary agrega ingresos, cantidad de facturas y clientes distintos
// desde la fecha dada, en una sola consulta.
func (r *AnalyticsRepo) GetSalesSummary(ctx context.Context, since time.Time) (*repository.SalesSummary, error) {
	query := `
		SELECT COALESCE(SUM(final_amount), 0), COUNT(*), COUNT(DISTINCT customer_id)
		FROM invoices
		WHERE invoice_timestamp >= $1`
	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, query, since).Scan(&s.Revenue, &s.InvoiceCount, &s.CustomersServed)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}

// CountProducts devuelve total y activos del catálogo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (total, active int64, err error) {
	err = r.q.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM products`,
	).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("count products: %w", err)
	}
	return total, active, nil
}

// CountCustomers devuelve la cantidad de clientes registrados.
func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountSuppliers devuelve la cantidad de proveedores activos.
func (r *AnalyticsRepo) CountSuppliers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return n, nil
}

// RecentSales devuelve las últimas ventas con nombres resueltos y la cantidad
// de líneas de cada factura, en una sola consulta.
func (r *AnalyticsRepo) RecentSales(ctx context.Context, limit int) ([]repository.RecentSaleRow, error) {
	query := `
		SELECT i.invoice_num, i.invoice_timestamp, i.final_amount,
		       COALESCE(c.customer_name, ''), e.emp_name,
		       (SELECT COUNT(*) FROM sales_details d WHERE d.invoice_num = i.invoice_num)
		FROM invoices i
		LEFT JOIN customers c ON c.customer_id = i.customer_id
		JOIN employees e ON e.emp_id = i.emp_id
		ORDER BY i.invoice_num DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	defer rows.Close()

	var list []repository.RecentSaleRow
	for rows.Next() {
		var row repository.RecentSaleRow
		if err := rows.Scan(&row.InvoiceNum, &row.Timestamp, &row.FinalAmount,
			&row.CustomerName, &row.EmployeeName, &row.ItemsCount); err != nil {
			return nil, fmt.Errorf("scan recent sale: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TopProducts devuelve los productos con mayor ingreso de los últimos 30 días.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT p.product_name,
		       COALESCE(SUM(d.selling_price * d.quantity), 0) AS revenue,
		       COALESCE(SUM(d.quantity), 0) AS units
		FROM sales_details d
		JOIN invoices i ON i.invoice_num = d.invoice_num
		JOIN products p ON p.product_code = d.product_code
		WHERE i.invoice_timestamp >= now() - interval '30 days'
		GROUP BY p.product_name
		ORDER BY revenue DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var list []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductName, &row.Revenue, &row.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesTrend agrega ventas por día para los últimos N días. Los días sin
// ventas aparecen con cero gracias a generate_series.
func (r *AnalyticsRepo) SalesTrend(ctx context.Context, days int) ([]repository.TrendPoint, error) {
	query := `
		SELECT to_char(d.day, 'YYYY-MM-DD'),
		       COUNT(i.invoice_num),
		       COALESCE(SUM(i.final_amount), 0)
		FROM generate_series(
			current_date - ($1::int - 1) * interval '1 day',
			current_date,
			interval '1 day'
		) AS d(day)
		LEFT JOIN invoices i ON i.invoice_timestamp::date = d.day::date
		GROUP BY d.day
		ORDER BY d.day`
	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}
	defer rows.Close()

	var list []repository.TrendPoint
	for rows.Next() {
		var p repository.TrendPoint
		if err := rows.Scan(&p.Date, &p.Invoices, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
