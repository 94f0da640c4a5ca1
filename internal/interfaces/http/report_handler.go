package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/paulinhof/assistencia-api/internal/application/analytics"
	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/domain"
)

// ReportHandler maneja el panel y los reportes de facturación (protegido).
type ReportHandler struct {
	uc *analytics.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Indicadores del panel principal
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.uc.Dashboard())
}

// Billing godoc
// @Summary      Reporte de facturación
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today | week | month | all | custom"  default(all)
// @Param        from    query  string  false  "Fecha desde (YYYY-MM-DD, solo custom)"
// @Param        to      query  string  false  "Fecha hasta (YYYY-MM-DD, solo custom)"
// @Success      200     {object}  dto.BillingResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/billing [get]
func (h *ReportHandler) Billing(c *fiber.Ctx) error {
	period := c.Query("period", analytics.PeriodAll)
	out, err := h.uc.Billing(period, c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
