package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación del puerto ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de persistencia para devoluciones.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create inserta la devolución y asigna ReturnID desde la secuencia.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (invoice_num, product_code, qty_returned, reason, refund_amount, process_emp_id, return_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING return_id`
	err := r.q.QueryRow(context.Background(), query,
		ret.InvoiceNum, ret.ProductCode, ret.QtyReturned, ret.Reason,
		ret.RefundAmount, ret.ProcessEmpID, ret.ReturnDate,
	).Scan(&ret.ReturnID)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

const returnViewQuery = `
	SELECT r.return_id, r.invoice_num, r.product_code, r.qty_returned, r.reason,
	       r.refund_amount, r.process_emp_id, r.return_date,
	       p.product_name, COALESCE(c.customer_name, ''), se.emp_name, pe.emp_name
	FROM returns r
	JOIN products p ON p.product_code = r.product_code
	JOIN invoices i ON i.invoice_num = r.invoice_num
	LEFT JOIN customers c ON c.customer_id = i.customer_id
	JOIN employees se ON se.emp_id = i.emp_id
	JOIN employees pe ON pe.emp_id = r.process_emp_id`

// GetView devuelve una devolución con nombres resueltos en un solo JOIN.
func (r *ReturnRepo) GetView(returnID int64) (*repository.ReturnView, error) {
	var v repository.ReturnView
	err := r.q.QueryRow(context.Background(), returnViewQuery+` WHERE r.return_id = $1`, returnID).Scan(
		&v.Return.ReturnID, &v.Return.InvoiceNum, &v.Return.ProductCode, &v.Return.QtyReturned,
		&v.Return.Reason, &v.Return.RefundAmount, &v.Return.ProcessEmpID, &v.Return.ReturnDate,
		&v.ProductName, &v.CustomerName, &v.SoldByName, &v.ProcessedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return &v, nil
}

// ListViews lista devoluciones recientes con nombres resueltos.
func (r *ReturnRepo) ListViews(limit, offset int) ([]repository.ReturnView, error) {
	query := returnViewQuery + ` ORDER BY r.return_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var list []repository.ReturnView
	for rows.Next() {
		var v repository.ReturnView
		if err := rows.Scan(&v.Return.ReturnID, &v.Return.InvoiceNum, &v.Return.ProductCode,
			&v.Return.QtyReturned, &v.Return.Reason, &v.Return.RefundAmount, &v.Return.ProcessEmpID,
			&v.Return.ReturnDate, &v.ProductName, &v.CustomerName, &v.SoldByName, &v.ProcessedBy); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
