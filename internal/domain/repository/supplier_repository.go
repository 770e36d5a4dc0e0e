package repository

import "github.com/tu-usuario/metromart-pos/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id int64) (*entity.Supplier, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Deactivate(id int64) error
}
