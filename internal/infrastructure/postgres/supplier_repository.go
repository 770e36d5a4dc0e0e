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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create inserta un proveedor y asigna su ID desde la secuencia.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (supplier_name, contact_name, email, phone, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING supplier_id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		supplier.Name, supplier.Contact, supplier.Email, supplier.Phone, supplier.Active,
	).Scan(&supplier.ID, &supplier.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	query := `SELECT supplier_id, supplier_name, contact_name, email, phone, is_active, created_at
		FROM suppliers WHERE supplier_id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Contact, &s.Email, &s.Phone, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores; onlyActive excluye los dados de baja.
func (r *SupplierRepo) List(onlyActive bool, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT supplier_id, supplier_name, contact_name, email, phone, is_active, created_at
		FROM suppliers
		WHERE (NOT $1 OR is_active)
		ORDER BY supplier_name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Email, &s.Phone, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza los datos del proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET supplier_name = $2, contact_name = $3, email = $4, phone = $5 WHERE supplier_id = $1`,
		supplier.ID, supplier.Name, supplier.Contact, supplier.Email, supplier.Phone,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update supplier: %w: proveedor %d", domain.ErrNotFound, supplier.ID)
	}
	return nil
}

// Deactivate baja lógica del proveedor (conserva sus órdenes de compra).
func (r *SupplierRepo) Deactivate(id int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET is_active = false WHERE supplier_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("deactivate supplier: %w: proveedor %d", domain.ErrNotFound, id)
	}
	return nil
}
