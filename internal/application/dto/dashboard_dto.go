package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen del negocio para GET /api/dashboard.
// Revenue/AvgTicket cubren los últimos 30 días; SalesTrend los últimos 7.
type DashboardSummaryDTO struct {
	TotalRevenue    decimal.Decimal   `json:"total_revenue"`
	TotalInvoices   int64             `json:"total_invoices"`
	AvgTicket       decimal.Decimal   `json:"avg_ticket"`
	CustomersServed int64             `json:"customers_served"`
	TotalProducts   int64             `json:"total_products"`
	ActiveProducts  int64             `json:"active_products"`
	TotalCustomers  int64             `json:"total_customers"`
	TotalSuppliers  int64             `json:"total_suppliers"`
	RecentSales     []RecentSaleDTO   `json:"recent_sales"`
	TopProducts     []TopProductDTO   `json:"top_products"`
	SalesTrend      []TrendPointDTO   `json:"sales_trend"`
}

// RecentSaleDTO venta reciente en el dashboard.
type RecentSaleDTO struct {
	InvoiceNum   int64           `json:"invoice_num"`
	Timestamp    string          `json:"invoice_timestamp"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
	CustomerName string          `json:"customer_name"`
	EmployeeName string          `json:"emp_name"`
	ItemsCount   int64           `json:"items_count"`
}

// TopProductDTO producto con mayor ingreso.
type TopProductDTO struct {
	ProductName string          `json:"product_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	UnitsSold   int64           `json:"units_sold"`
}

// TrendPointDTO ventas de un día.
type TrendPointDTO struct {
	Date     string          `json:"date"`
	Invoices int64           `json:"invoices"`
	Revenue  decimal.Decimal `json:"revenue"`
}
