package repository

import "github.com/tu-usuario/metromart-pos/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id int64) (*entity.Employee, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	Deactivate(id int64) error
}
