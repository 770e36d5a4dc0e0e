// Package supply gestiona órdenes de compra a proveedores y su recepción.
// La recepción es la imagen espejo de la venta: incrementa stock por línea
// dentro de una sola transacción.
package supply

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// UseCase casos de uso de órdenes de compra.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.SupplyOrderRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, orderRepo repository.SupplyOrderRepository, supplierRepo repository.SupplierRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, supplierRepo: supplierRepo}
}

// CreateOrder crea la orden (estado PENDING) con sus líneas y el total
// calculado (Σ cantidad × costo). No toca el stock: eso ocurre al recibir.
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreateSupplyOrderRequest) (*dto.SupplyOrderResponse, error) {
	if in.SupplierID <= 0 || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: proveedor e ítems son requeridos", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductCode == "" || item.Quantity <= 0 || item.CostPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: línea de orden inválida", domain.ErrInvalidInput)
		}
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, in.SupplierID)
	}

	total := decimal.Zero
	for _, item := range in.Items {
		total = total.Add(item.CostPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}

	order := &entity.SupplyOrder{
		SupplierID:  in.SupplierID,
		TotalAmount: total.Round(2),
		Status:      entity.SupplyOrderPending,
		OrderDate:   time.Now(),
	}

	err = uc.txRunner.RunSupply(ctx, func(
		orderRepo repository.SupplyOrderRepository,
		_ repository.ProductRepository,
	) error {
		if err := orderRepo.CreateOrder(order); err != nil {
			return err
		}
		for _, item := range in.Items {
			detail := &entity.SupplyOrderDetail{
				OrderNum:    order.OrderNum,
				ProductCode: item.ProductCode,
				Quantity:    item.Quantity,
				CostPrice:   item.CostPrice,
			}
			if err := orderRepo.CreateDetail(detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(order, in.Items), nil
}

// ReceiveOrder marca la orden como recibida e incrementa el stock de cada
// línea, todo en una transacción. La cabecera se bloquea (FOR UPDATE) para
// que dos recepciones concurrentes no dupliquen el ingreso.
func (uc *UseCase) ReceiveOrder(ctx context.Context, orderNum int64) (*dto.SupplyOrderResponse, error) {
	var order *entity.SupplyOrder
	var details []*entity.SupplyOrderDetail

	err := uc.txRunner.RunSupply(ctx, func(
		orderRepo repository.SupplyOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		order, err = orderRepo.GetOrderForUpdate(orderNum)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden %d", domain.ErrNotFound, orderNum)
		}
		if order.Status == entity.SupplyOrderReceived {
			return fmt.Errorf("%w: la orden %d ya fue recibida", domain.ErrConflict, orderNum)
		}

		details, err = orderRepo.ListDetails(orderNum)
		if err != nil {
			return err
		}
		for _, d := range details {
			if err := productRepo.AdjustStock(d.ProductCode, d.Quantity); err != nil {
				return err
			}
		}
		if err := orderRepo.MarkReceived(orderNum); err != nil {
			return err
		}
		order.Status = entity.SupplyOrderReceived
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.SupplyOrderItemRequest, 0, len(details))
	for _, d := range details {
		items = append(items, dto.SupplyOrderItemRequest{
			ProductCode: d.ProductCode,
			Quantity:    d.Quantity,
			CostPrice:   d.CostPrice,
		})
	}
	return toOrderResponse(order, items), nil
}

// GetOrder devuelve la orden con sus líneas.
func (uc *UseCase) GetOrder(ctx context.Context, orderNum int64) (*dto.SupplyOrderResponse, error) {
	order, err := uc.orderRepo.GetOrder(orderNum)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %d", domain.ErrNotFound, orderNum)
	}
	details, err := uc.orderRepo.ListDetails(orderNum)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplyOrderItemRequest, 0, len(details))
	for _, d := range details {
		items = append(items, dto.SupplyOrderItemRequest{
			ProductCode: d.ProductCode,
			Quantity:    d.Quantity,
			CostPrice:   d.CostPrice,
		})
	}
	return toOrderResponse(order, items), nil
}

func toOrderResponse(order *entity.SupplyOrder, items []dto.SupplyOrderItemRequest) *dto.SupplyOrderResponse {
	resp := &dto.SupplyOrderResponse{
		OrderNum:    order.OrderNum,
		SupplierID:  order.SupplierID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		OrderDate:   order.OrderDate.Format(time.RFC3339),
		Items:       make([]dto.SupplyOrderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SupplyOrderItemResponse{
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			CostPrice:   item.CostPrice,
		})
	}
	return resp
}
