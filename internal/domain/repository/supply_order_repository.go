package repository

import "github.com/tu-usuario/metromart-pos/internal/domain/entity"

// SupplyOrderRepository define el puerto de persistencia para órdenes de compra.
type SupplyOrderRepository interface {
	// CreateOrder inserta la cabecera y asigna order.OrderNum desde la secuencia.
	CreateOrder(order *entity.SupplyOrder) error
	CreateDetail(detail *entity.SupplyOrderDetail) error
	// GetOrderForUpdate bloquea la cabecera (SELECT FOR UPDATE) para que dos
	// recepciones concurrentes de la misma orden no dupliquen el stock.
	GetOrderForUpdate(orderNum int64) (*entity.SupplyOrder, error)
	GetOrder(orderNum int64) (*entity.SupplyOrder, error)
	ListDetails(orderNum int64) ([]*entity.SupplyOrderDetail, error)
	MarkReceived(orderNum int64) error
}
