package repository

import "github.com/tu-usuario/metromart-pos/internal/domain/entity"

// DepartmentRepository define el puerto de persistencia para Department.
type DepartmentRepository interface {
	Create(department *entity.Department) error
	GetByID(id int64) (*entity.Department, error)
	List() ([]*entity.Department, error)
	Update(department *entity.Department) error
	Delete(id int64) error
}
