package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/application/sales"
)

// SalesHandler maneja las peticiones HTTP de ventas.
type SalesHandler struct {
	createUC *sales.CreateSaleUseCase
	readerUC *sales.InvoiceReaderUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(createUC *sales.CreateSaleUseCase, readerUC *sales.InvoiceReaderUseCase) *SalesHandler {
	return &SalesHandler{createUC: createUC, readerUC: readerUC}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Carrito, vendedor, descuento y tasa de impuesto"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         sales
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Tope de filas"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var in dto.ExportFilter
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.readerUC.ListInvoices(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByNum godoc
// @Summary      Obtener factura con detalle
// @Tags         sales
// @Produce      json
// @Param        num  path  int  true  "Número de factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{num} [get]
func (h *SalesHandler) GetByNum(c *fiber.Ctx) error {
	num, err := c.ParamsInt("num")
	if err != nil || num <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "número de factura inválido"})
	}
	out, err := h.readerUC.GetInvoice(c.Context(), int64(num))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         sales
// @Produce      application/pdf
// @Param        num  path  int  true  "Número de factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{num}/pdf [get]
func (h *SalesHandler) GetPDF(c *fiber.Ctx) error {
	num, err := c.ParamsInt("num")
	if err != nil || num <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "número de factura inválido"})
	}
	pdfBytes, err := h.readerUC.GetInvoicePDF(c.Context(), int64(num))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="factura-%d.pdf"`, num))
	return c.Send(pdfBytes)
}

// ExportCSV godoc
// @Summary      Exportar cabeceras de factura a CSV
// @Tags         sales
// @Produce      text/csv
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Tope de filas"
// @Success      200  {file}  binary
// @Router       /api/sales/export.csv [get]
func (h *SalesHandler) ExportCSV(c *fiber.Ctx) error {
	var in dto.ExportFilter
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	csvBytes, err := h.readerUC.ExportCSV(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas.csv"`)
	return c.Send(csvBytes)
}
