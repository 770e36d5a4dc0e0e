// Package returns gestiona devoluciones sobre facturas ya emitidas.
// La factura original nunca se modifica: la devolución la referencia y
// deja constancia del reembolso.
package returns

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

// UseCase casos de uso de devoluciones.
type UseCase struct {
	txRunner   TxRunner
	returnRepo repository.ReturnRepository
}

// NewUseCase construye el caso de uso. returnRepo se usa para lecturas
// fuera de transacción.
func NewUseCase(txRunner TxRunner, returnRepo repository.ReturnRepository) *UseCase {
	return &UseCase{txRunner: txRunner, returnRepo: returnRepo}
}

// CreateReturn registra una devolución contra una línea vendida.
//
// Valida que el par (factura, producto) exista y que la cantidad devuelta no
// supere la vendida en esa línea. El tope es por devolución: no descuenta
// devoluciones previas de la misma línea (ver DESIGN.md). Si Restock es true,
// la cantidad reingresa al stock dentro de la misma transacción.
func (uc *UseCase) CreateReturn(ctx context.Context, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if in.InvoiceNum <= 0 || in.ProductCode == "" || in.QtyReturned <= 0 || in.ProcessEmpID <= 0 {
		return nil, fmt.Errorf("%w: factura, producto, cantidad y empleado son requeridos", domain.ErrInvalidInput)
	}
	if in.RefundAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el reembolso no puede ser negativo", domain.ErrInvalidInput)
	}

	var ret *entity.Return
	err := uc.txRunner.RunReturn(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		returnRepo repository.ReturnRepository,
	) error {
		detail, err := invoiceRepo.GetDetail(in.InvoiceNum, in.ProductCode)
		if err != nil {
			return err
		}
		if detail == nil {
			return fmt.Errorf("%w: el producto %s no fue vendido en la factura %d",
				domain.ErrNotFound, in.ProductCode, in.InvoiceNum)
		}
		if in.QtyReturned > detail.Quantity {
			return fmt.Errorf("%w: la cantidad devuelta (%d) supera la vendida (%d)",
				domain.ErrInvalidInput, in.QtyReturned, detail.Quantity)
		}

		ret = &entity.Return{
			InvoiceNum:   in.InvoiceNum,
			ProductCode:  in.ProductCode,
			QtyReturned:  in.QtyReturned,
			Reason:       in.Reason,
			RefundAmount: in.RefundAmount.Round(2),
			ProcessEmpID: in.ProcessEmpID,
			ReturnDate:   time.Now(),
		}
		if err := returnRepo.Create(ret); err != nil {
			return err
		}

		if in.Restock {
			if err := productRepo.AdjustStock(in.ProductCode, in.QtyReturned); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ReturnResponse{
		ReturnID:     ret.ReturnID,
		InvoiceNum:   ret.InvoiceNum,
		ProductCode:  ret.ProductCode,
		QtyReturned:  ret.QtyReturned,
		Reason:       ret.Reason,
		RefundAmount: ret.RefundAmount,
		ReturnDate:   ret.ReturnDate.Format(time.RFC3339),
	}, nil
}

// GetReturn devuelve una devolución con nombres resueltos en un solo JOIN.
func (uc *UseCase) GetReturn(ctx context.Context, returnID int64) (*dto.ReturnResponse, error) {
	view, err := uc.returnRepo.GetView(returnID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("%w: devolución %d", domain.ErrNotFound, returnID)
	}
	return toReturnResponse(view), nil
}

// ListReturns lista devoluciones recientes con nombres resueltos.
func (uc *UseCase) ListReturns(ctx context.Context, limit, offset int) ([]dto.ReturnResponse, error) {
	views, err := uc.returnRepo.ListViews(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(views))
	for i := range views {
		out = append(out, *toReturnResponse(&views[i]))
	}
	return out, nil
}

func toReturnResponse(v *repository.ReturnView) *dto.ReturnResponse {
	customerName := v.CustomerName
	if customerName == "" {
		customerName = "Walk-in Customer"
	}
	return &dto.ReturnResponse{
		ReturnID:     v.Return.ReturnID,
		InvoiceNum:   v.Return.InvoiceNum,
		ProductCode:  v.Return.ProductCode,
		ProductName:  v.ProductName,
		QtyReturned:  v.Return.QtyReturned,
		Reason:       v.Return.Reason,
		RefundAmount: v.Return.RefundAmount,
		CustomerName: customerName,
		SoldByName:   v.SoldByName,
		ProcessedBy:  v.ProcessedBy,
		ReturnDate:   v.Return.ReturnDate.Format(time.RFC3339),
	}
}
