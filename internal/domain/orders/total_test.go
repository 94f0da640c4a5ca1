package orders_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/orders"
)

// ──────────────────────────────────────────────────────────────────────────────
// Total: el descuento es un porcentaje aplicado SOLO al subtotal de piezas;
// mano de obra y envío se suman después, sin descuento.
//
// Escenario de referencia: 2 piezas a 100.00 c/u, mano de obra 50.00,
// envío 10.00, descuento 10%:
//
//	(100.00 * 2) * 0.90 + 50.00 + 10.00 = 240.00
// ──────────────────────────────────────────────────────────────────────────────

func TestTotal_EscenarioReferencia(t *testing.T) {
	o := entity.ServiceOrder{
		Items: []entity.OrderItem{
			{PartID: "p1", Quantity: 2, UnitPrice: decimal.NewFromFloat(100.00)},
		},
		LaborCost:    decimal.NewFromFloat(50.00),
		ShippingCost: decimal.NewFromFloat(10.00),
		Discount:     decimal.NewFromInt(10),
	}

	total := orders.Total(o)
	assert.True(t, total.Equal(decimal.NewFromFloat(240.00)),
		"total esperado 240.00, obtenido %s", total)
}

func TestTotal_SinItemsNiDescuento(t *testing.T) {
	o := entity.ServiceOrder{
		LaborCost:    decimal.NewFromFloat(80.00),
		ShippingCost: decimal.NewFromFloat(25.50),
	}

	total := orders.Total(o)
	assert.True(t, total.Equal(decimal.NewFromFloat(105.50)),
		"sin piezas el total es mano de obra + envío, obtenido %s", total)
}

func TestTotal_DescuentoNoAfectaManoDeObraNiEnvio(t *testing.T) {
	o := entity.ServiceOrder{
		Items: []entity.OrderItem{
			{PartID: "p1", Quantity: 1, UnitPrice: decimal.NewFromFloat(200.00)},
		},
		LaborCost:    decimal.NewFromFloat(100.00),
		ShippingCost: decimal.NewFromFloat(30.00),
		Discount:     decimal.NewFromInt(100), // piezas quedan en 0
	}

	total := orders.Total(o)
	assert.True(t, total.Equal(decimal.NewFromFloat(130.00)),
		"con 100%% de descuento solo deben quedar mano de obra y envío, obtenido %s", total)
}

func TestPartsSubtotal_SumaCantidadPorPrecio(t *testing.T) {
	items := []entity.OrderItem{
		{PartID: "p1", Quantity: 3, UnitPrice: decimal.NewFromFloat(15.50)},
		{PartID: "p2", Quantity: 1, UnitPrice: decimal.NewFromFloat(99.90)},
	}

	sub := orders.PartsSubtotal(items)
	assert.True(t, sub.Equal(decimal.NewFromFloat(146.40)),
		"subtotal esperado 146.40, obtenido %s", sub)
}

// ── Clamp del descuento ───────────────────────────────────────────────────────

func TestClampDiscount_Rango(t *testing.T) {
	casos := []struct {
		nombre   string
		entrada  decimal.Decimal
		esperado decimal.Decimal
	}{
		{"negativo se trunca a 0", decimal.NewFromInt(-5), decimal.Zero},
		{"mayor a 100 se trunca a 100", decimal.NewFromInt(150), decimal.NewFromInt(100)},
		{"dentro del rango pasa igual", decimal.NewFromFloat(12.5), decimal.NewFromFloat(12.5)},
		{"cero pasa igual", decimal.Zero, decimal.Zero},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := orders.ClampDiscount(c.entrada)
			require.True(t, got.Equal(c.esperado),
				"esperado %s, obtenido %s", c.esperado, got)
		})
	}
}
