package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

var _ repository.SupplyOrderRepository = (*SupplyOrderRepo)(nil)

// SupplyOrderRepo implementación del puerto SupplyOrderRepository sobre PostgreSQL.
type SupplyOrderRepo struct {
	q Querier
}

// NewSupplyOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewSupplyOrderRepository(q Querier) *SupplyOrderRepo {
	return &SupplyOrderRepo{q: q}
}

// CreateOrder inserta la cabecera y asigna OrderNum desde la secuencia.
func (r *SupplyOrderRepo) CreateOrder(order *entity.SupplyOrder) error {
	query := `
		INSERT INTO supply_orders (supplier_id, total_amount, status, order_date)
		VALUES ($1, $2, $3, $4)
		RETURNING order_num`
	err := r.q.QueryRow(context.Background(), query,
		order.SupplierID, order.TotalAmount, order.Status, order.OrderDate,
	).Scan(&order.OrderNum)
	if err != nil {
		return fmt.Errorf("insert supply order: %w", err)
	}
	return nil
}

// CreateDetail inserta una línea de la orden.
func (r *SupplyOrderRepo) CreateDetail(detail *entity.SupplyOrderDetail) error {
	query := `
		INSERT INTO supply_order_details (order_num, product_code, quantity, cost_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		detail.OrderNum, detail.ProductCode, detail.Quantity, detail.CostPrice,
	).Scan(&detail.ID)
	if err != nil {
		return fmt.Errorf("insert supply order detail: %w", err)
	}
	return nil
}

const supplyOrderColumns = `order_num, supplier_id, total_amount, status, order_date`

// GetOrderForUpdate bloquea la cabecera (SELECT FOR UPDATE). Solo tiene
// sentido dentro de una transacción.
func (r *SupplyOrderRepo) GetOrderForUpdate(orderNum int64) (*entity.SupplyOrder, error) {
	query := `SELECT ` + supplyOrderColumns + ` FROM supply_orders WHERE order_num = $1 FOR UPDATE`
	return r.scanOrder(query, orderNum)
}

// GetOrder obtiene la cabecera de una orden.
func (r *SupplyOrderRepo) GetOrder(orderNum int64) (*entity.SupplyOrder, error) {
	query := `SELECT ` + supplyOrderColumns + ` FROM supply_orders WHERE order_num = $1`
	return r.scanOrder(query, orderNum)
}

func (r *SupplyOrderRepo) scanOrder(query string, args ...any) (*entity.SupplyOrder, error) {
	var o entity.SupplyOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.OrderNum, &o.SupplierID, &o.TotalAmount, &o.Status, &o.OrderDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply order: %w", err)
	}
	return &o, nil
}

// ListDetails devuelve las líneas de una orden.
func (r *SupplyOrderRepo) ListDetails(orderNum int64) ([]*entity.SupplyOrderDetail, error) {
	query := `
		SELECT id, order_num, product_code, quantity, cost_price
		FROM supply_order_details
		WHERE order_num = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderNum)
	if err != nil {
		return nil, fmt.Errorf("list supply order details: %w", err)
	}
	defer rows.Close()

	var list []*entity.SupplyOrderDetail
	for rows.Next() {
		var d entity.SupplyOrderDetail
		if err := rows.Scan(&d.ID, &d.OrderNum, &d.ProductCode, &d.Quantity, &d.CostPrice); err != nil {
			return nil, fmt.Errorf("scan supply order detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// MarkReceived cambia el estado de la orden a RECEIVED.
func (r *SupplyOrderRepo) MarkReceived(orderNum int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE supply_orders SET status = $2 WHERE order_num = $1`,
		orderNum, entity.SupplyOrderReceived,
	)
	if err != nil {
		return fmt.Errorf("mark supply order received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("mark supply order received: sin filas afectadas (orden %d)", orderNum)
	}
	return nil
}
