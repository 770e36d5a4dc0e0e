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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `product_code, product_name, price, stock, reorder_level, department_id, is_active, last_updated`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (product_code, product_name, price, stock, reorder_level, department_id, is_active, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.q.Exec(context.Background(), query,
		product.Code, product.Name, product.Price, product.Stock,
		product.ReorderLevel, product.DepartmentID, product.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_code = $1`
	return r.scanOne(query, code)
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_code = $1 FOR UPDATE`
	return r.scanOne(query, code)
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.Code, &p.Name, &p.Price, &p.Stock, &p.ReorderLevel,
		&p.DepartmentID, &p.Active, &p.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// AdjustStock suma delta (negativo para descontar) al stock del producto.
// El CHECK (stock >= 0) de la tabla es la última línea de defensa; el caso
// de uso ya validó con la fila bloqueada.
func (r *ProductRepo) AdjustStock(code string, delta int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, last_updated = now() WHERE product_code = $1`,
		code, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("adjust stock: %w: producto %s", domain.ErrNotFound, code)
	}
	return nil
}

// Update actualiza un producto existente. Stock no se modifica aquí
// (solo vía AdjustStock dentro de una transacción).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET product_name = $2, price = $3, reorder_level = $4, department_id = $5, is_active = $6, last_updated = now()
		WHERE product_code = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.Code, product.Name, product.Price, product.ReorderLevel,
		product.DepartmentID, product.Active,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update product: %w: producto %s", domain.ErrNotFound, product.Code)
	}
	return nil
}

// List lista productos con búsqueda por nombre y orden permitido.
// Sort se valida contra una lista blanca: nunca se interpola entrada del usuario.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	orderBy := "product_code"
	switch filter.Sort {
	case "name_asc":
		orderBy = "product_name ASC"
	case "name_desc":
		orderBy = "product_name DESC"
	case "price_asc":
		orderBy = "price ASC"
	case "price_desc":
		orderBy = "price DESC"
	}

	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR product_name ILIKE '%' || $1 || '%' OR product_code ILIKE '%' || $1 || '%')
		ORDER BY ` + orderBy + ` LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Price, &p.Stock, &p.ReorderLevel,
			&p.DepartmentID, &p.Active, &p.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Deactivate baja lógica del producto (conserva historial en facturas).
func (r *ProductRepo) Deactivate(code string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, last_updated = now() WHERE product_code = $1`,
		code,
	)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("deactivate product: %w: producto %s", domain.ErrNotFound, code)
	}
	return nil
}
