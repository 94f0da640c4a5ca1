package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus es el estado de una orden de servicio. Los valores son las
// etiquetas que viajan por el wire y se muestran al usuario.
type OrderStatus string

const (
	StatusReceived         OrderStatus = "Recebido"
	StatusInAnalysis       OrderStatus = "Em Análise"
	StatusAwaitingApproval OrderStatus = "Aguardando Aprovação"
	StatusInRepair         OrderStatus = "Em Reparo"
	StatusReady            OrderStatus = "Pronto"
	StatusDelivered        OrderStatus = "Entregue"
)

// AllStatuses en el orden del flujo de trabajo.
var AllStatuses = []OrderStatus{
	StatusReceived,
	StatusInAnalysis,
	StatusAwaitingApproval,
	StatusInRepair,
	StatusReady,
	StatusDelivered,
}

// Valid indica si el valor corresponde a un estado conocido.
func (s OrderStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Tipos de servicio.
const (
	ServiceTypePaid     = "Pago"
	ServiceTypeWarranty = "Garantia"
)

// OrderItem es una pieza aplicada a una orden, con el precio unitario
// congelado al momento de agregarla (no cambia si el catálogo cambia).
type OrderItem struct {
	ID        string
	OrderID   string
	PartID    string
	Quantity  int
	UnitPrice decimal.Decimal
}

// ServiceOrder representa una orden de servicio (ficha de reparación).
// El ID tiene el formato OS-YYYY-NNN con secuencia anual.
type ServiceOrder struct {
	ID               string
	ClientID         string
	Model            string
	SerialNumber     string
	Condition        string // estado físico del equipo al recibirlo
	FaultDescription string
	Accessories      []string
	EntryDate        time.Time
	Status           OrderStatus
	ServiceType      string // Pago | Garantia
	Items            []OrderItem
	LaborCost        decimal.Decimal
	LaborDescription string
	ShippingMethod   string
	ShippingCost     decimal.Decimal
	Discount         decimal.Decimal // porcentaje [0,100] sobre el subtotal de piezas
	Photos           []string
	PaymentMethod    string
	PaymentProofURL  string
	InvoiceNumber    string
	TechnicalReport  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Delivered indica si la orden ya fue entregada al cliente.
func (o ServiceOrder) Delivered() bool {
	return o.Status == StatusDelivered
}
