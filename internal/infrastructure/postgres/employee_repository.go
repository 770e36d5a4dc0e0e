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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create inserta un empleado y asigna su ID desde la secuencia.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (emp_name, role, department_id, is_active, hired_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING emp_id, hired_at`
	err := r.q.QueryRow(context.Background(), query,
		employee.Name, employee.Role, employee.DepartmentID, employee.Active,
	).Scan(&employee.ID, &employee.HiredAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id int64) (*entity.Employee, error) {
	query := `SELECT emp_id, emp_name, role, department_id, is_active, hired_at FROM employees WHERE emp_id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Name, &e.Role, &e.DepartmentID, &e.Active, &e.HiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// List lista empleados; onlyActive excluye los dados de baja.
func (r *EmployeeRepo) List(onlyActive bool, limit, offset int) ([]*entity.Employee, error) {
	query := `
		SELECT emp_id, emp_name, role, department_id, is_active, hired_at
		FROM employees
		WHERE (NOT $1 OR is_active)
		ORDER BY emp_name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.DepartmentID, &e.Active, &e.HiredAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza los datos del empleado.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE employees SET emp_name = $2, role = $3, department_id = $4 WHERE emp_id = $1`,
		employee.ID, employee.Name, employee.Role, employee.DepartmentID,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update employee: %w: empleado %d", domain.ErrNotFound, employee.ID)
	}
	return nil
}

// Deactivate baja lógica del empleado (conserva su historial de ventas).
func (r *EmployeeRepo) Deactivate(id int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE employees SET is_active = false WHERE emp_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("deactivate employee: %w: empleado %d", domain.ErrNotFound, id)
	}
	return nil
}
