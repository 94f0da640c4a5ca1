package quotes

import (
	"time"

	"github.com/google/uuid"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/application/serviceorders"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/orders"
	"github.com/paulinhof/assistencia-api/internal/store"
)

// UseCase arma presupuestos sobre órdenes en análisis o esperando aprobación.
type UseCase struct {
	store    *store.Store
	ordersUC *serviceorders.UseCase
}

// NewUseCase construye el caso de uso de presupuestos.
func NewUseCase(st *store.Store, ordersUC *serviceorders.UseCase) *UseCase {
	return &UseCase{store: st, ordersUC: ordersUC}
}

// ListPending devuelve las órdenes en fase de presupuesto.
func (uc *UseCase) ListPending() dto.OrderListResponse {
	var items []dto.OrderResponse
	for _, o := range uc.store.Orders() {
		if orders.PendingQuote(o) {
			items = append(items, uc.ordersUC.ToResponse(o))
		}
	}
	return dto.OrderListResponse{Items: items, Total: len(items)}
}

// AddItem agrega una pieza al presupuesto congelando el precio del catálogo
// al momento de agregar: un cambio posterior de precio no afecta la orden.
func (uc *UseCase) AddItem(orderID string, in dto.AddQuoteItemRequest) (*dto.OrderResponse, error) {
	o, ok := uc.store.OrderByID(orderID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	part, ok := uc.store.PartByID(in.PartID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	o.Items = append(o.Items, entity.OrderItem{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		PartID:    part.ID,
		Quantity:  in.Quantity,
		UnitPrice: part.Price,
	})
	return uc.persist(o)
}

// RemoveItem quita un item del presupuesto.
func (uc *UseCase) RemoveItem(orderID, itemID string) (*dto.OrderResponse, error) {
	o, ok := uc.store.OrderByID(orderID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := false
	kept := make([]entity.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	o.Items = kept
	return uc.persist(o)
}

// RepriceItem ajusta manualmente el precio unitario de un item ya agregado.
func (uc *UseCase) RepriceItem(orderID, itemID string, in dto.RepriceQuoteItemRequest) (*dto.OrderResponse, error) {
	o, ok := uc.store.OrderByID(orderID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := false
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].UnitPrice = in.UnitPrice
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return uc.persist(o)
}

// SetCharges aplica mano de obra, envío, descuento (recortado a [0,100]) y
// datos de pago; solo los campos presentes.
func (uc *UseCase) SetCharges(orderID string, in dto.QuoteChargesRequest) (*dto.OrderResponse, error) {
	o, ok := uc.store.OrderByID(orderID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.LaborCost != nil {
		o.LaborCost = *in.LaborCost
	}
	if in.LaborDescription != nil {
		o.LaborDescription = *in.LaborDescription
	}
	if in.ShippingMethod != nil {
		o.ShippingMethod = *in.ShippingMethod
	}
	if in.ShippingCost != nil {
		o.ShippingCost = *in.ShippingCost
	}
	if in.Discount != nil {
		o.Discount = orders.ClampDiscount(*in.Discount)
	}
	if in.PaymentMethod != nil {
		o.PaymentMethod = *in.PaymentMethod
	}
	if in.PaymentProofURL != nil {
		o.PaymentProofURL = *in.PaymentProofURL
	}
	return uc.persist(o)
}

// Totals devuelve el desglose calculado del presupuesto.
func (uc *UseCase) Totals(orderID string) (*dto.QuoteTotalsResponse, error) {
	o, ok := uc.store.OrderByID(orderID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dto.QuoteTotalsResponse{
		PartsSubtotal: orders.PartsSubtotal(o.Items),
		Discount:      o.Discount,
		LaborCost:     o.LaborCost,
		ShippingCost:  o.ShippingCost,
		Total:         orders.Total(o),
	}, nil
}

// SendForApproval pasa la orden a Aguardando Aprovação.
func (uc *UseCase) SendForApproval(orderID string) (*dto.OrderResponse, error) {
	o, ok := uc.store.OrderByID(orderID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = entity.StatusAwaitingApproval
	return uc.persist(o)
}

func (uc *UseCase) persist(o entity.ServiceOrder) (*dto.OrderResponse, error) {
	o.UpdatedAt = time.Now()
	if err := uc.store.UpdateOrder(o); err != nil {
		return nil, err
	}
	resp := uc.ordersUC.ToResponse(o)
	return &resp, nil
}
