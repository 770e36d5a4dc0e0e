package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
	"github.com/tu-usuario/metromart-pos/internal/domain/sale"
)

// CreateSaleUseCase registra una venta y descuenta el stock en una sola transacción.
type CreateSaleUseCase struct {
	txRunner TxRunner
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner}
}

// CreateSale valida el carrito (sale.NewDraft) y lo persiste con garantía
// todo-o-nada:
//
//  1. Bloquea la fila de cada producto distinto (SELECT FOR UPDATE) en orden
//     ascendente de código, para que dos ventas concurrentes sobre el mismo
//     conjunto de productos no se interbloqueen.
//  2. Verifica stock ≥ cantidad solicitada por producto; las líneas repetidas
//     se consolidan antes de verificar y descontar.
//  3. Inserta la cabecera (invoice_num lo asigna la secuencia), una línea por
//     cada entrada original del carrito y el descuento de stock consolidado.
//
// Cualquier fallo revierte la transacción completa: nunca queda una factura
// sin líneas ni stock descontado sin factura.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.InvoiceResponse, error) {
	lines := make([]sale.Line, 0, len(in.Items))
	for _, item := range in.Items {
		lines = append(lines, sale.Line{
			ProductCode:  item.ProductCode,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice,
		})
	}

	draft, err := sale.NewDraft(in.EmployeeID, in.CustomerID, in.Discount, in.TaxRate, lines)
	if err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	var customerName, employeeName string
	productNames := make(map[string]string, len(draft.Lines))

	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Bloqueo por producto en orden estable (evita deadlocks cruzados)
		requested := draft.QuantityByProduct()
		codes := make([]string, 0, len(requested))
		for code := range requested {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			product, err := productRepo.GetForUpdate(code)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
			}
			if product.Stock < requested[code] {
				return &domain.StockError{
					ProductCode: code,
					Available:   product.Stock,
					Requested:   requested[code],
				}
			}
			productNames[code] = product.Name
		}

		// 2) Cabecera: invoice_num lo asigna la base de datos
		now := time.Now()
		inv = &entity.Invoice{
			CustomerID:  draft.CustomerID,
			EmployeeID:  draft.EmployeeID,
			Timestamp:   now,
			SubTotal:    draft.SubTotal,
			Discount:    draft.Discount,
			Tax:         draft.Tax,
			FinalAmount: draft.FinalAmount,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}

		// 3) Una línea por cada entrada original del carrito
		for _, l := range draft.Lines {
			detail := &entity.SalesDetail{
				InvoiceNum:   inv.InvoiceNum,
				ProductCode:  l.ProductCode,
				Quantity:     l.Quantity,
				SellingPrice: l.SellingPrice,
			}
			if err := invoiceRepo.CreateDetail(detail); err != nil {
				return err
			}
		}

		// 4) Descuento de stock consolidado por producto
		for _, code := range codes {
			if err := productRepo.AdjustStock(code, -requested[code]); err != nil {
				return err
			}
		}

		// 5) Nombres resueltos para la respuesta (misma consulta JOIN del lector)
		header, err := invoiceRepo.GetHeaderView(inv.InvoiceNum)
		if err != nil {
			return err
		}
		if header != nil {
			customerName = header.CustomerName
			employeeName = header.EmployeeName
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, customerName, employeeName, draft, productNames), nil
}

func toInvoiceResponse(inv *entity.Invoice, customerName, employeeName string, draft *sale.Draft, productNames map[string]string) *dto.InvoiceResponse {
	if customerName == "" {
		customerName = walkInCustomerName
	}
	resp := &dto.InvoiceResponse{
		InvoiceNum:   inv.InvoiceNum,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		EmployeeID:   inv.EmployeeID,
		EmployeeName: employeeName,
		Timestamp:    inv.Timestamp.Format(time.RFC3339),
		SubTotal:     inv.SubTotal,
		Discount:     inv.Discount,
		Tax:          inv.Tax,
		FinalAmount:  inv.FinalAmount,
		Items:        make([]dto.InvoiceItemResponse, 0, len(draft.Lines)),
	}
	for _, l := range draft.Lines {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ProductCode:  l.ProductCode,
			ProductName:  productNames[l.ProductCode],
			Quantity:     l.Quantity,
			SellingPrice: l.SellingPrice,
			Total:        l.Total().Round(2),
		})
	}
	return resp
}
