package repository

import "github.com/tu-usuario/metromart-pos/internal/domain/entity"

// ProductFilter filtros de listado: búsqueda por nombre y orden permitido.
// Sort acepta: name_asc, name_desc, price_asc, price_desc (default: código).
type ProductFilter struct {
	Search string
	Sort   string
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product.
// Stock se modifica únicamente con AdjustStock dentro de una transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(code string) (*entity.Product, error)
	// AdjustStock suma delta (negativo para descontar) al stock del producto.
	AdjustStock(code string, delta int64) error
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Deactivate(code string) error
}
