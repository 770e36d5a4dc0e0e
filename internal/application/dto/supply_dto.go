package dto

import "github.com/shopspring/decimal"

// CreateSupplyOrderRequest body para POST /api/supply-orders.
type CreateSupplyOrderRequest struct {
	SupplierID int64                    `json:"supplier_id"`
	Items      []SupplyOrderItemRequest `json:"items"`
}

// SupplyOrderItemRequest línea de la orden (producto, cantidad, costo unitario).
type SupplyOrderItemRequest struct {
	ProductCode string          `json:"product_code"`
	Quantity    int64           `json:"quantity"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// SupplyOrderResponse orden de compra en respuestas.
type SupplyOrderResponse struct {
	OrderNum    int64                     `json:"order_num"`
	SupplierID  int64                     `json:"supplier_id"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
	Status      string                    `json:"status"`
	OrderDate   string                    `json:"order_date"`
	Items       []SupplyOrderItemResponse `json:"items,omitempty"`
}

// SupplyOrderItemResponse línea de la orden en la respuesta.
type SupplyOrderItemResponse struct {
	ProductCode string          `json:"product_code"`
	Quantity    int64           `json:"quantity"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}
