package returns

import (
	"context"

	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos
// necesarios para registrar una devolución y, opcionalmente, reingresar stock.
type TxRunner interface {
	RunReturn(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		returnRepo repository.ReturnRepository,
	) error) error
}
