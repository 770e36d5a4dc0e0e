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

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de persistencia para departamentos.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create inserta un departamento y asigna su ID desde la secuencia.
func (r *DepartmentRepo) Create(department *entity.Department) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO departments (dep_name) VALUES ($1) RETURNING dep_id`,
		department.Name,
	).Scan(&department.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(id int64) (*entity.Department, error) {
	var d entity.Department
	err := r.q.QueryRow(context.Background(),
		`SELECT dep_id, dep_name FROM departments WHERE dep_id = $1`, id,
	).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// List lista todos los departamentos.
func (r *DepartmentRepo) List() ([]*entity.Department, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT dep_id, dep_name FROM departments ORDER BY dep_name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update renombra un departamento.
func (r *DepartmentRepo) Update(department *entity.Department) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE departments SET dep_name = $2 WHERE dep_id = $1`,
		department.ID, department.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update department: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update department: %w: departamento %d", domain.ErrNotFound, department.ID)
	}
	return nil
}

// Delete elimina un departamento. Productos y empleados quedan con la
// referencia en NULL (ON DELETE SET NULL).
func (r *DepartmentRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM departments WHERE dep_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete department: %w: departamento %d", domain.ErrNotFound, id)
	}
	return nil
}
