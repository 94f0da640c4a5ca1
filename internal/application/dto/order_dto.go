package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear una orden de servicio.
// La orden nace en estado Recebido, sin items y con mano de obra en cero;
// el número OS-YYYY-NNN lo genera el sistema.
type CreateOrderRequest struct {
	ClientID         string    `json:"client_id" validate:"required"`
	Model            string    `json:"model" validate:"required"`
	SerialNumber     string    `json:"serial_number"`
	Condition        string    `json:"condition"`
	FaultDescription string    `json:"fault_description"`
	Accessories      []string  `json:"accessories"`
	EntryDate        time.Time `json:"entry_date"`
	ServiceType      string    `json:"service_type" validate:"omitempty,oneof=Pago Garantia"`
	Photos           []string  `json:"photos"`
}

// UpdateOrderRequest reemplazo completo de la orden (el formulario envía todo).
type UpdateOrderRequest struct {
	ClientID         string             `json:"client_id" validate:"required"`
	Model            string             `json:"model" validate:"required"`
	SerialNumber     string             `json:"serial_number"`
	Condition        string             `json:"condition"`
	FaultDescription string             `json:"fault_description"`
	Accessories      []string           `json:"accessories"`
	EntryDate        time.Time          `json:"entry_date"`
	Status           string             `json:"status"`
	ServiceType      string             `json:"service_type" validate:"omitempty,oneof=Pago Garantia"`
	Items            []OrderItemRequest `json:"items"`
	LaborCost        decimal.Decimal    `json:"labor_cost"`
	LaborDescription string             `json:"labor_description"`
	ShippingMethod   string             `json:"shipping_method"`
	ShippingCost     decimal.Decimal    `json:"shipping_cost"`
	Discount         decimal.Decimal    `json:"discount"`
	Photos           []string           `json:"photos"`
	PaymentMethod    string             `json:"payment_method"`
	PaymentProofURL  string             `json:"payment_proof_url"`
	InvoiceNumber    string             `json:"invoice_number"`
	TechnicalReport  string             `json:"technical_report"`
}

// OrderItemRequest item dentro de una actualización de orden.
type OrderItemRequest struct {
	PartID    string          `json:"part_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateStatusRequest cambio de estado. Para Entregue el número de factura es obligatorio.
type UpdateStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	InvoiceNumber string `json:"invoice_number"`
}

// OrderItemResponse item de una orden, con el nombre de la pieza resuelto del catálogo.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	PartID    string          `json:"part_id"`
	PartName  string          `json:"part_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden de servicio.
type OrderResponse struct {
	ID               string              `json:"id"`
	ClientID         string              `json:"client_id"`
	ClientName       string              `json:"client_name"`
	Model            string              `json:"model"`
	SerialNumber     string              `json:"serial_number"`
	Condition        string              `json:"condition"`
	FaultDescription string              `json:"fault_description"`
	Accessories      []string            `json:"accessories"`
	EntryDate        time.Time           `json:"entry_date"`
	Status           string              `json:"status"`
	ServiceType      string              `json:"service_type"`
	Items            []OrderItemResponse `json:"items"`
	LaborCost        decimal.Decimal     `json:"labor_cost"`
	LaborDescription string              `json:"labor_description"`
	ShippingMethod   string              `json:"shipping_method"`
	ShippingCost     decimal.Decimal     `json:"shipping_cost"`
	Discount         decimal.Decimal     `json:"discount"`
	Photos           []string            `json:"photos"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentProofURL  string              `json:"payment_proof_url"`
	InvoiceNumber    string              `json:"invoice_number"`
	TechnicalReport  string              `json:"technical_report"`
	Total            decimal.Decimal     `json:"total"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderListResponse lista de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}
