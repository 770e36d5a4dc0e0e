// Package analytics arma el resumen de negocio del dashboard a partir de
// consultas agregadas de solo lectura.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

const (
	summaryWindowDays = 30
	trendWindowDays   = 7
	recentSalesLimit  = 10
	topProductsLimit  = 5
)

// DashboardUseCase agrega las métricas del dashboard.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary devuelve el resumen: ingresos y ticket promedio de los últimos
// 30 días, conteos del catálogo, ventas recientes, top de productos y la
// tendencia diaria de los últimos 7 días.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	since := time.Now().AddDate(0, 0, -summaryWindowDays)

	summary, err := uc.repo.GetSalesSummary(ctx, since)
	if err != nil {
		return nil, err
	}
	totalProducts, activeProducts, err := uc.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := uc.repo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	totalSuppliers, err := uc.repo.CountSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.repo.RecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}
	trend, err := uc.repo.SalesTrend(ctx, trendWindowDays)
	if err != nil {
		return nil, err
	}

	avgTicket := decimal.Zero
	if summary.InvoiceCount > 0 {
		avgTicket = summary.Revenue.Div(decimal.NewFromInt(summary.InvoiceCount)).Round(2)
	}

	out := &dto.DashboardSummaryDTO{
		TotalRevenue:    summary.Revenue,
		TotalInvoices:   summary.InvoiceCount,
		AvgTicket:       avgTicket,
		CustomersServed: summary.CustomersServed,
		TotalProducts:   totalProducts,
		ActiveProducts:  activeProducts,
		TotalCustomers:  totalCustomers,
		TotalSuppliers:  totalSuppliers,
		RecentSales:     make([]dto.RecentSaleDTO, 0, len(recent)),
		TopProducts:     make([]dto.TopProductDTO, 0, len(top)),
		SalesTrend:      make([]dto.TrendPointDTO, 0, len(trend)),
	}
	for _, row := range recent {
		customerName := row.CustomerName
		if customerName == "" {
			customerName = "Walk-in Customer"
		}
		out.RecentSales = append(out.RecentSales, dto.RecentSaleDTO{
			InvoiceNum:   row.InvoiceNum,
			Timestamp:    row.Timestamp.Format(time.RFC3339),
			FinalAmount:  row.FinalAmount,
			CustomerName: customerName,
			EmployeeName: row.EmployeeName,
			ItemsCount:   row.ItemsCount,
		})
	}
	for _, row := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductName: row.ProductName,
			Revenue:     row.Revenue,
			UnitsSold:   row.UnitsSold,
		})
	}
	for _, p := range trend {
		out.SalesTrend = append(out.SalesTrend, dto.TrendPointDTO{
			Date:     p.Date,
			Invoices: p.Invoices,
			Revenue:  p.Revenue,
		})
	}
	return out, nil
}
