package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create inserta un cliente y asigna su ID desde la secuencia.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (customer_name, email, phone, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING customer_id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		customer.Name, customer.Email, customer.Phone,
	).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	query := `SELECT customer_id, customer_name, email, phone, created_at FROM customers WHERE customer_id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes con búsqueda opcional por nombre.
func (r *CustomerRepo) List(search string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT customer_id, customer_name, email, phone, created_at
		FROM customers
		WHERE ($1 = '' OR customer_name ILIKE '%' || $1 || '%')
		ORDER BY customer_name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos del cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE customers SET customer_name = $2, email = $3, phone = $4 WHERE customer_id = $1`,
		customer.ID, customer.Name, customer.Email, customer.Phone,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update customer: %w: cliente %d", domain.ErrNotFound, customer.ID)
	}
	return nil
}

// Delete elimina un cliente. Las facturas quedan con customer_id en NULL
// (ON DELETE SET NULL) y se muestran como venta de mostrador.
func (r *CustomerRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete customer: %w: cliente %d", domain.ErrNotFound, id)
	}
	return nil
}
