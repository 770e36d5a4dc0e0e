package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest body para POST /api/sales.
// Discount es el monto solicitado (se recorta a [0, subtotal]);
// TaxRate es un porcentaje (5 = 5%).
type CreateSaleRequest struct {
	EmployeeID int64             `json:"employee_id"`
	CustomerID *int64            `json:"customer_id,omitempty"` // nil = venta de mostrador
	Discount   decimal.Decimal   `json:"discount"`
	TaxRate    decimal.Decimal   `json:"tax_rate"`
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea del carrito (producto, cantidad, precio de venta).
type SaleItemRequest struct {
	ProductCode  string          `json:"product_code"`
	Quantity     int64           `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// InvoiceResponse factura con detalle para GET /api/sales/:id.
type InvoiceResponse struct {
	InvoiceNum   int64                 `json:"invoice_num"`
	CustomerID   *int64                `json:"customer_id,omitempty"`
	CustomerName string                `json:"customer_name"`
	EmployeeID   int64                 `json:"employee_id"`
	EmployeeName string                `json:"employee_name"`
	Timestamp    string                `json:"timestamp"`
	SubTotal     decimal.Decimal       `json:"sub_total"`
	Discount     decimal.Decimal       `json:"discount_applied"`
	Tax          decimal.Decimal       `json:"tax_amount"`
	FinalAmount  decimal.Decimal       `json:"final_amount"`
	Items        []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea de la factura en la respuesta.
type InvoiceItemResponse struct {
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Total        decimal.Decimal `json:"total"`
}

// ExportFilter filtro del CSV de cabeceras: rango de fechas o tope de filas.
type ExportFilter struct {
	From  string `query:"from"`  // YYYY-MM-DD
	To    string `query:"to"`    // YYYY-MM-DD
	Limit int    `query:"limit"` // 0 = sin tope
}
