package repository

import "github.com/tu-usuario/metromart-pos/internal/domain/entity"

// ReturnView devolución con nombres resueltos (producto, cliente, empleados)
// en una sola consulta con JOINs.
type ReturnView struct {
	Return       entity.Return
	ProductName  string
	CustomerName string
	SoldByName   string
	ProcessedBy  string
}

// ReturnRepository define el puerto de persistencia para devoluciones.
type ReturnRepository interface {
	// Create inserta la devolución y asigna ret.ReturnID desde la secuencia.
	Create(ret *entity.Return) error
	GetView(returnID int64) (*ReturnView, error)
	ListViews(limit, offset int) ([]ReturnView, error)
}
