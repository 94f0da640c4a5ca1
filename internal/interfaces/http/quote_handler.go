package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/application/quotes"
	"github.com/paulinhof/assistencia-api/internal/domain"
)

// QuoteHandler maneja el armado de presupuestos sobre órdenes (protegido).
type QuoteHandler struct {
	uc *quotes.UseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quotes.UseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

func (h *QuoteHandler) respond(c *fiber.Ctx, out *dto.OrderResponse, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden o recurso no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del presupuesto inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Listar órdenes en fase de presupuesto
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) ListPending(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListPending())
}

// AddItem godoc
// @Summary      Agregar pieza al presupuesto
// @Description  El precio unitario se congela con el valor del catálogo al momento de agregar.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Número de la orden"
// @Param        body  body  dto.AddQuoteItemRequest  true  "Pieza y cantidad"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/orders/{id}/quote/items [post]
func (h *QuoteHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddQuoteItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Params("id"), in)
	return h.respond(c, out, err)
}

// RemoveItem godoc
// @Summary      Quitar pieza del presupuesto
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "Número de la orden"
// @Param        itemId  path  string  true  "ID del item"
// @Success      200     {object}  dto.OrderResponse
// @Router       /api/orders/{id}/quote/items/{itemId} [delete]
func (h *QuoteHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Params("id"), c.Params("itemId"))
	return h.respond(c, out, err)
}

// RepriceItem godoc
// @Summary      Ajustar precio unitario de un item
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "Número de la orden"
// @Param        itemId  path  string  true  "ID del item"
// @Param        body    body  dto.RepriceQuoteItemRequest  true  "Nuevo precio unitario"
// @Success      200     {object}  dto.OrderResponse
// @Router       /api/orders/{id}/quote/items/{itemId} [put]
func (h *QuoteHandler) RepriceItem(c *fiber.Ctx) error {
	var in dto.RepriceQuoteItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RepriceItem(c.Params("id"), c.Params("itemId"), in)
	return h.respond(c, out, err)
}

// SetCharges godoc
// @Summary      Ajustar cargos del presupuesto
// @Description  Mano de obra, envío, descuento porcentual (recortado a [0,100]) y datos de pago.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Número de la orden"
// @Param        body  body  dto.QuoteChargesRequest  true  "Cargos a ajustar (solo campos presentes)"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/orders/{id}/quote/charges [put]
func (h *QuoteHandler) SetCharges(c *fiber.Ctx) error {
	var in dto.QuoteChargesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetCharges(c.Params("id"), in)
	return h.respond(c, out, err)
}

// Totals godoc
// @Summary      Desglose calculado del presupuesto
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Número de la orden"
// @Success      200  {object}  dto.QuoteTotalsResponse
// @Router       /api/orders/{id}/quote/totals [get]
func (h *QuoteHandler) Totals(c *fiber.Ctx) error {
	out, err := h.uc.Totals(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// SendForApproval godoc
// @Summary      Enviar presupuesto a aprobación
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Número de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/orders/{id}/quote/send [post]
func (h *QuoteHandler) SendForApproval(c *fiber.Ctx) error {
	out, err := h.uc.SendForApproval(c.Params("id"))
	return h.respond(c, out, err)
}
