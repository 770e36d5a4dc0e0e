package supply

import (
	"context"

	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// órdenes de compra y productos (recepción de mercancía).
type TxRunner interface {
	RunSupply(ctx context.Context, fn func(
		orderRepo repository.SupplyOrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}
