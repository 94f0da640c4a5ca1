package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/orders"
)

// ── Transiciones de estado ────────────────────────────────────────────────────

func TestCanTransition_PermisivaEntreEstados(t *testing.T) {
	o := entity.ServiceOrder{Status: entity.StatusReady}

	// El flujo real va y vuelve; cualquier estado válido es alcanzable.
	for _, destino := range []entity.OrderStatus{
		entity.StatusReceived,
		entity.StatusInAnalysis,
		entity.StatusAwaitingApproval,
		entity.StatusInRepair,
	} {
		assert.NoError(t, orders.CanTransition(o, destino),
			"la transición a %q debe estar permitida", destino)
	}
}

func TestCanTransition_EntregueRequiereFactura(t *testing.T) {
	o := entity.ServiceOrder{Status: entity.StatusReady, InvoiceNumber: ""}

	err := orders.CanTransition(o, entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvoiceRequired,
		"no se puede entregar sin número de factura")

	o.InvoiceNumber = "NF-1234"
	assert.NoError(t, orders.CanTransition(o, entity.StatusDelivered))
}

func TestCanTransition_FacturaSoloEspaciosNoVale(t *testing.T) {
	o := entity.ServiceOrder{Status: entity.StatusReady, InvoiceNumber: "   "}

	err := orders.CanTransition(o, entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvoiceRequired)
}

func TestCanTransition_EstadoDesconocidoEsInvalido(t *testing.T) {
	o := entity.ServiceOrder{Status: entity.StatusReceived}

	err := orders.CanTransition(o, entity.OrderStatus("Perdido"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPendingQuote_SoloAnalisisYAprobacion(t *testing.T) {
	casos := map[entity.OrderStatus]bool{
		entity.StatusReceived:         false,
		entity.StatusInAnalysis:       true,
		entity.StatusAwaitingApproval: true,
		entity.StatusInRepair:         false,
		entity.StatusReady:            false,
		entity.StatusDelivered:        false,
	}

	for status, esperado := range casos {
		o := entity.ServiceOrder{Status: status}
		assert.Equal(t, esperado, orders.PendingQuote(o),
			"estado %q", status)
	}
}
