package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/application/printing"
	"github.com/paulinhof/assistencia-api/internal/domain"
)

// PrintHandler maneja la descarga de los documentos PDF de una orden (protegido).
type PrintHandler struct {
	uc *printing.UseCase
}

// NewPrintHandler construye el handler.
func NewPrintHandler(uc *printing.UseCase) *PrintHandler {
	return &PrintHandler{uc: uc}
}

func (h *PrintHandler) send(c *fiber.Ctx, doc *printing.Document, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Send(doc.Body)
}

// Quote godoc
// @Summary      Descargar presupuesto en PDF
// @Tags         print
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Número de la orden"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/quote.pdf [get]
func (h *PrintHandler) Quote(c *fiber.Ctx) error {
	doc, err := h.uc.QuotePDF(c.UserContext(), c.Params("id"), GetUserEmail(c))
	return h.send(c, doc, err)
}

// Receipt godoc
// @Summary      Descargar recibo de entrada en PDF
// @Tags         print
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Número de la orden"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt.pdf [get]
func (h *PrintHandler) Receipt(c *fiber.Ctx) error {
	doc, err := h.uc.ReceiptPDF(c.UserContext(), c.Params("id"), GetUserEmail(c))
	return h.send(c, doc, err)
}
