package orders

import (
	"strings"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
)

// CanTransition valida un cambio de estado. Las transiciones son permisivas
// (el flujo real del taller va y vuelve entre estados), con una sola regla dura:
// no se puede marcar Entregue sin número de factura registrado.
func CanTransition(o entity.ServiceOrder, to entity.OrderStatus) error {
	if !to.Valid() {
		return domain.ErrInvalidInput
	}
	if to == entity.StatusDelivered && strings.TrimSpace(o.InvoiceNumber) == "" {
		return domain.ErrInvoiceRequired
	}
	return nil
}

// PendingQuote indica si la orden está en fase de presupuesto:
// en análisis o esperando la aprobación del cliente.
func PendingQuote(o entity.ServiceOrder) bool {
	return o.Status == entity.StatusInAnalysis || o.Status == entity.StatusAwaitingApproval
}
