//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/application/sales"
	"github.com/tu-usuario/metromart-pos/internal/domain"
)

// Requiere una base con el esquema de cmd/seed ya aplicado:
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres
func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// Dos ventas simultáneas del mismo producto (stock=5, 3 unidades cada una):
// exactamente una debe completarse, la otra falla por stock insuficiente y
// el stock final queda en 2. El bloqueo por fila serializa las dos
// transacciones; el CHECK (stock >= 0) nunca llega a dispararse.
func TestCreateSale_VentasConcurrentesSerializanPorStock(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()

	var empID int64
	err := pool.QueryRow(ctx,
		`INSERT INTO employees (emp_name, role) VALUES ('Cajero Carrera', 'cashier') RETURNING emp_id`,
	).Scan(&empID)
	require.NoError(t, err)

	const code = "ZZRACE1"
	_, err = pool.Exec(ctx,
		`INSERT INTO products (product_code, product_name, price, stock)
		 VALUES ($1, 'Producto de carrera', 10.00, 5)
		 ON CONFLICT (product_code) DO UPDATE SET stock = 5`, code)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM invoices WHERE emp_id = $1`, empID)
		_, _ = pool.Exec(ctx, `DELETE FROM products WHERE product_code = $1`, code)
		_, _ = pool.Exec(ctx, `DELETE FROM employees WHERE emp_id = $1`, empID)
	})

	uc := sales.NewCreateSaleUseCase(NewTxRunner(pool))
	request := dto.CreateSaleRequest{
		EmployeeID: empID,
		TaxRate:    decimal.Zero,
		Items: []dto.SaleItemRequest{
			{ProductCode: code, Quantity: 3, SellingPrice: decimal.NewFromInt(10)},
		},
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateSale(ctx, request)
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una venta debe completarse")
	assert.Equal(t, 1, insufficient, "la otra debe fallar por stock")

	var stock int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT stock FROM products WHERE product_code = $1`, code).Scan(&stock))
	assert.Equal(t, int64(2), stock)
}
