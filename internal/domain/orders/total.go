package orders

import (
	"github.com/shopspring/decimal"

	"github.com/paulinhof/assistencia-api/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// PartsSubtotal suma cantidad * precio unitario de todas las piezas de la orden.
func PartsSubtotal(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ClampDiscount normaliza el descuento porcentual al rango [0, 100].
func ClampDiscount(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if d.GreaterThan(cien) {
		return cien
	}
	return d
}

// Total calcula el total de la orden:
// subtotal de piezas con descuento porcentual aplicado, más mano de obra y envío.
// El descuento solo afecta las piezas, nunca la mano de obra ni el envío.
func Total(o entity.ServiceOrder) decimal.Decimal {
	subtotal := PartsSubtotal(o.Items)
	disc := ClampDiscount(o.Discount)
	factor := cien.Sub(disc).Div(cien)
	return subtotal.Mul(factor).Add(o.LaborCost).Add(o.ShippingCost)
}

// PartsCost calcula el costo de piezas sin descuento (usado en reportes de garantía).
func PartsCost(o entity.ServiceOrder) decimal.Decimal {
	return PartsSubtotal(o.Items)
}
