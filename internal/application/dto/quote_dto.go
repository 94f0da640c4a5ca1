package dto

import "github.com/shopspring/decimal"

// AddQuoteItemRequest agrega una pieza al presupuesto. El precio unitario se
// congela con el valor del catálogo al momento de agregar.
type AddQuoteItemRequest struct {
	PartID   string `json:"part_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// RepriceQuoteItemRequest ajusta manualmente el precio unitario de un item.
type RepriceQuoteItemRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// QuoteChargesRequest ajusta los cargos del presupuesto (solo campos presentes).
type QuoteChargesRequest struct {
	LaborCost        *decimal.Decimal `json:"labor_cost"`
	LaborDescription *string          `json:"labor_description"`
	ShippingMethod   *string          `json:"shipping_method"`
	ShippingCost     *decimal.Decimal `json:"shipping_cost"`
	Discount         *decimal.Decimal `json:"discount"` // porcentaje, se recorta a [0,100]
	PaymentMethod    *string          `json:"payment_method"`
	PaymentProofURL  *string          `json:"payment_proof_url"`
}

// QuoteTotalsResponse desglose calculado del presupuesto.
type QuoteTotalsResponse struct {
	PartsSubtotal decimal.Decimal `json:"parts_subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	Total         decimal.Decimal `json:"total"`
}
