package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary agregados de ventas de un período.
type SalesSummary struct {
	Revenue         decimal.Decimal
	InvoiceCount    int64
	CustomersServed int64 // clientes distintos (excluye ventas de mostrador)
}

// RecentSaleRow fila del widget de ventas recientes.
type RecentSaleRow struct {
	InvoiceNum   int64
	Timestamp    time.Time
	FinalAmount  decimal.Decimal
	CustomerName string
	EmployeeName string
	ItemsCount   int64
}

// TopProductRow producto ordenado por ingreso en el período.
type TopProductRow struct {
	ProductName string
	Revenue     decimal.Decimal
	UnitsSold   int64
}

// TrendPoint ventas agregadas de un día.
type TrendPoint struct {
	Date     string // YYYY-MM-DD
	Invoices int64
	Revenue  decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// Cada método es una sola consulta SQL agregada (sin N+1).
type AnalyticsRepository interface {
	GetSalesSummary(ctx context.Context, since time.Time) (*SalesSummary, error)
	CountProducts(ctx context.Context) (total, active int64, err error)
	CountCustomers(ctx context.Context) (int64, error)
	CountSuppliers(ctx context.Context) (int64, error)
	RecentSales(ctx context.Context, limit int) ([]RecentSaleRow, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
	SalesTrend(ctx context.Context, days int) ([]TrendPoint, error)
}
