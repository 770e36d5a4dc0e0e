package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/metromart-pos/internal/application/returns"
	"github.com/tu-usuario/metromart-pos/internal/application/sales"
	"github.com/tu-usuario/metromart-pos/internal/application/supply"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// Ensure TxRunner implements the application transaction ports.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ returns.TxRunner = (*TxRunner)(nil)
var _ supply.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción con los repos de una venta y hace Commit o Rollback.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(productRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReturn inicia una transacción con los repos de una devolución.
func (r *TxRunner) RunReturn(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	returnRepo repository.ReturnRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	productRepo := NewProductRepository(tx)
	returnRepo := NewReturnRepository(tx)

	if err := fn(invoiceRepo, productRepo, returnRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSupply inicia una transacción con los repos de órdenes de compra.
func (r *TxRunner) RunSupply(ctx context.Context, fn func(
	orderRepo repository.SupplyOrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewSupplyOrderRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(orderRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
