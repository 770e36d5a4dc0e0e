package dto

import "github.com/shopspring/decimal"

// CreateReturnRequest body para POST /api/returns.
// Restock indica si la cantidad devuelta reingresa al inventario.
type CreateReturnRequest struct {
	InvoiceNum   int64           `json:"invoice_num"`
	ProductCode  string          `json:"product_code"`
	QtyReturned  int64           `json:"quantity_returned"`
	Reason       string          `json:"return_reason,omitempty"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	ProcessEmpID int64           `json:"process_emp_id"`
	Restock      bool            `json:"restock"`
}

// ReturnResponse devolución con nombres resueltos.
type ReturnResponse struct {
	ReturnID     int64           `json:"return_id"`
	InvoiceNum   int64           `json:"invoice_num"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	QtyReturned  int64           `json:"quantity_returned"`
	Reason       string          `json:"return_reason,omitempty"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	CustomerName string          `json:"customer_name"`
	SoldByName   string          `json:"sold_by"`
	ProcessedBy  string          `json:"processed_by"`
	ReturnDate   string          `json:"return_date"`
}
