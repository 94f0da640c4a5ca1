package serviceorders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/catalog"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/orders"
	"github.com/paulinhof/assistencia-api/internal/store"
)

// Solo la cuenta del dueño del taller puede eliminar órdenes; los técnicos no.
const deletionAllowedEmail = "paulinho@mci-store.com.br"

// UseCase operaciones sobre órdenes de servicio.
type UseCase struct {
	store *store.Store
}

// NewUseCase construye el caso de uso de órdenes.
func NewUseCase(st *store.Store) *UseCase {
	return &UseCase{store: st}
}

// List filtra las órdenes por texto libre sobre número, modelo y serie.
func (uc *UseCase) List(search string) dto.OrderListResponse {
	var items []dto.OrderResponse
	for _, o := range uc.store.Orders() {
		if !catalog.Matches(o.ID, search) &&
			!catalog.Matches(o.Model, search) &&
			!catalog.Matches(o.SerialNumber, search) {
			continue
		}
		items = append(items, uc.ToResponse(o))
	}
	return dto.OrderListResponse{Items: items, Total: len(items)}
}

// Get devuelve una orden por ID.
func (uc *UseCase) Get(id string) (*dto.OrderResponse, error) {
	o, ok := uc.store.OrderByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	resp := uc.ToResponse(o)
	return &resp, nil
}

// Create registra una orden nueva: estado Recebido, sin items, mano de obra en
// cero y número OS-YYYY-NNN generado por secuencia anual.
func (uc *UseCase) Create(in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if _, ok := uc.store.ClientByID(in.ClientID); !ok {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	id, err := uc.store.NextOrderID(now)
	if err != nil {
		return nil, err
	}
	entryDate := in.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}
	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = entity.ServiceTypePaid
	}
	o := entity.ServiceOrder{
		ID:               id,
		ClientID:         in.ClientID,
		Model:            in.Model,
		SerialNumber:     in.SerialNumber,
		Condition:        in.Condition,
		FaultDescription: in.FaultDescription,
		Accessories:      in.Accessories,
		EntryDate:        entryDate,
		Status:           entity.StatusReceived,
		ServiceType:      serviceType,
		LaborCost:        decimal.Zero,
		ShippingCost:     decimal.Zero,
		Discount:         decimal.Zero,
		Photos:           in.Photos,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.store.AddOrder(o); err != nil {
		return nil, err
	}
	resp := uc.ToResponse(o)
	return &resp, nil
}

// Update reemplaza la orden completa (el formulario envía todos los campos).
func (uc *UseCase) Update(id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	current, ok := uc.store.OrderByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{
			OrderID:   id,
			PartID:    it.PartID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	status := current.Status
	if in.Status != "" {
		status = entity.OrderStatus(in.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidInput
		}
	}
	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = current.ServiceType
	}

	o := entity.ServiceOrder{
		ID:               id,
		ClientID:         in.ClientID,
		Model:            in.Model,
		SerialNumber:     in.SerialNumber,
		Condition:        in.Condition,
		FaultDescription: in.FaultDescription,
		Accessories:      in.Accessories,
		EntryDate:        in.EntryDate,
		Status:           status,
		ServiceType:      serviceType,
		Items:            items,
		LaborCost:        in.LaborCost,
		LaborDescription: in.LaborDescription,
		ShippingMethod:   in.ShippingMethod,
		ShippingCost:     in.ShippingCost,
		Discount:         orders.ClampDiscount(in.Discount),
		Photos:           in.Photos,
		PaymentMethod:    in.PaymentMethod,
		PaymentProofURL:  in.PaymentProofURL,
		InvoiceNumber:    in.InvoiceNumber,
		TechnicalReport:  in.TechnicalReport,
		CreatedAt:        current.CreatedAt,
		UpdatedAt:        time.Now(),
	}
	if o.EntryDate.IsZero() {
		o.EntryDate = current.EntryDate
	}
	if err := uc.store.UpdateOrder(o); err != nil {
		return nil, err
	}
	resp := uc.ToResponse(o)
	return &resp, nil
}

// UpdateStatus cambia el estado. Cualquier transición entre estados válidos se
// acepta, salvo Entregue sin número de factura: se rechaza sin tocar nada.
func (uc *UseCase) UpdateStatus(id string, in dto.UpdateStatusRequest) (*dto.OrderResponse, error) {
	o, ok := uc.store.OrderByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.InvoiceNumber) != "" {
		o.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	}
	to := entity.OrderStatus(in.Status)
	if err := orders.CanTransition(o, to); err != nil {
		return nil, err
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	if err := uc.store.UpdateOrder(o); err != nil {
		return nil, err
	}
	resp := uc.ToResponse(o)
	return &resp, nil
}

// Delete elimina la orden y sus items. Solo la cuenta habilitada puede hacerlo.
func (uc *UseCase) Delete(id, actorEmail string) error {
	if !strings.EqualFold(actorEmail, deletionAllowedEmail) {
		return domain.ErrForbidden
	}
	return uc.store.DeleteOrder(id)
}

// ToResponse arma la respuesta resolviendo nombre de cliente y de piezas desde
// el estado en memoria, y calcula el total con el descuento sobre piezas.
func (uc *UseCase) ToResponse(o entity.ServiceOrder) dto.OrderResponse {
	clientName := ""
	if c, ok := uc.store.ClientByID(o.ClientID); ok {
		clientName = c.Name
	}

	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		partName := ""
		if p, ok := uc.store.PartByID(it.PartID); ok {
			partName = p.Name
		}
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			PartID:    it.PartID,
			PartName:  partName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}

	return dto.OrderResponse{
		ID:               o.ID,
		ClientID:         o.ClientID,
		ClientName:       clientName,
		Model:            o.Model,
		SerialNumber:     o.SerialNumber,
		Condition:        o.Condition,
		FaultDescription: o.FaultDescription,
		Accessories:      o.Accessories,
		EntryDate:        o.EntryDate,
		Status:           string(o.Status),
		ServiceType:      o.ServiceType,
		Items:            items,
		LaborCost:        o.LaborCost,
		LaborDescription: o.LaborDescription,
		ShippingMethod:   o.ShippingMethod,
		ShippingCost:     o.ShippingCost,
		Discount:         o.Discount,
		Photos:           o.Photos,
		PaymentMethod:    o.PaymentMethod,
		PaymentProofURL:  o.PaymentProofURL,
		InvoiceNumber:    o.InvoiceNumber,
		TechnicalReport:  o.TechnicalReport,
		Total:            orders.Total(o),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
