package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/application/supply"
)

// SupplyHandler maneja las peticiones HTTP de órdenes de compra.
type SupplyHandler struct {
	uc *supply.UseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *supply.UseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         supply-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.SupplyOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supply-orders [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateOrder(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByNum devuelve la orden con sus líneas.
func (h *SupplyHandler) GetByNum(c *fiber.Ctx) error {
	num, err := c.ParamsInt("num")
	if err != nil || num <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "número de orden inválido"})
	}
	out, err := h.uc.GetOrder(c.Context(), int64(num))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir orden de compra (incrementa stock)
// @Tags         supply-orders
// @Produce      json
// @Param        num  path  int  true  "Número de orden"
// @Success      200  {object}  dto.SupplyOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{num}/receive [post]
func (h *SupplyHandler) Receive(c *fiber.Ctx) error {
	num, err := c.ParamsInt("num")
	if err != nil || num <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "número de orden inválido"})
	}
	out, err := h.uc.ReceiveOrder(c.Context(), int64(num))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
