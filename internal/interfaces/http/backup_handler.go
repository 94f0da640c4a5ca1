package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/application/maintenance"
	"github.com/paulinhof/assistencia-api/internal/domain"
)

// BackupHandler maneja la descarga de respaldos JSON (protegido).
type BackupHandler struct {
	uc *maintenance.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *maintenance.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Descargar respaldo JSON
// @Description  completo descarga todo; clientes, ordens e inventario descargan un array plano.
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "completo | clientes | ordens | inventario"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/backups/{type} [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	b, err := h.uc.Export(c.Params("type"), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", b.Filename))
	return c.Send(b.Body)
}
