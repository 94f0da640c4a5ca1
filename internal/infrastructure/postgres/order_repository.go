package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las órdenes viven en service_orders y sus piezas en order_items; este repo
// no hace joins, el ensamblado es responsabilidad del store.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, client_id, COALESCE(model, ''), COALESCE(serial_number, ''),
		COALESCE(condition, ''), COALESCE(fault_description, ''), COALESCE(accessories, '{}'),
		entry_date, COALESCE(status, ''), COALESCE(service_type, ''),
		COALESCE(labor_cost, 0), COALESCE(labor_description, ''),
		COALESCE(shipping_method, ''), COALESCE(shipping_cost, 0), COALESCE(discount, 0),
		COALESCE(photos, '{}'), COALESCE(payment_method, ''), COALESCE(payment_proof_url, ''),
		COALESCE(invoice_number, ''), COALESCE(technical_report, ''), created_at, updated_at`

// List devuelve todas las órdenes sin items.
func (r *OrderRepo) List() ([]entity.ServiceOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM service_orders`, orderColumns)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []entity.ServiceOrder
	for rows.Next() {
		var o entity.ServiceOrder
		var status string
		if err := rows.Scan(
			&o.ID, &o.ClientID, &o.Model, &o.SerialNumber,
			&o.Condition, &o.FaultDescription, &o.Accessories,
			&o.EntryDate, &status, &o.ServiceType,
			&o.LaborCost, &o.LaborDescription,
			&o.ShippingMethod, &o.ShippingCost, &o.Discount,
			&o.Photos, &o.PaymentMethod, &o.PaymentProofURL,
			&o.InvoiceNumber, &o.TechnicalReport, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		// el estado pasa sin validar: un valor desconocido en la base no debe romper la lectura
		o.Status = entity.OrderStatus(status)
		list = append(list, o)
	}
	return list, rows.Err()
}

// ListItems devuelve todos los items de todas las órdenes (el join es en memoria).
func (r *OrderRepo) ListItems() ([]entity.OrderItem, error) {
	const query = `SELECT id, order_id, part_id, quantity, unit_price FROM order_items`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var list []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.PartID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListIDs devuelve solo los identificadores de orden (para la numeración anual).
func (r *OrderRepo) ListIDs() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id FROM service_orders`)
	if err != nil {
		return nil, fmt.Errorf("list order ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create persiste una nueva orden (sin items; usar InsertItems).
func (r *OrderRepo) Create(o *entity.ServiceOrder) error {
	query := `
		INSERT INTO service_orders (id, client_id, model, serial_number, condition, fault_description, accessories,
			entry_date, status, service_type, labor_cost, labor_description, shipping_method, shipping_cost,
			discount, photos, payment_method, payment_proof_url, invoice_number, technical_report, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ClientID, o.Model, o.SerialNumber, o.Condition, o.FaultDescription, o.Accessories,
		o.EntryDate, string(o.Status), o.ServiceType, o.LaborCost, o.LaborDescription,
		o.ShippingMethod, o.ShippingCost, o.Discount, o.Photos, o.PaymentMethod,
		o.PaymentProofURL, o.InvoiceNumber, o.TechnicalReport, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Update actualiza la orden (sin tocar items; usar DeleteItems/InsertItems).
func (r *OrderRepo) Update(o *entity.ServiceOrder) error {
	query := `
		UPDATE service_orders SET client_id = $2, model = $3, serial_number = $4, condition = $5,
			fault_description = $6, accessories = $7, entry_date = $8, status = $9, service_type = $10,
			labor_cost = $11, labor_description = $12, shipping_method = $13, shipping_cost = $14,
			discount = $15, photos = $16, payment_method = $17, payment_proof_url = $18,
			invoice_number = $19, technical_report = $20, updated_at = $21
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		o.ID, o.ClientID, o.Model, o.SerialNumber, o.Condition, o.FaultDescription, o.Accessories,
		o.EntryDate, string(o.Status), o.ServiceType, o.LaborCost, o.LaborDescription,
		o.ShippingMethod, o.ShippingCost, o.Discount, o.Photos, o.PaymentMethod,
		o.PaymentProofURL, o.InvoiceNumber, o.TechnicalReport, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems borra todos los items de una orden.
func (r *OrderRepo) DeleteItems(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

// InsertItems inserta los items de una orden. Genera IDs para los que no traen.
func (r *OrderRepo) InsertItems(orderID string, items []entity.OrderItem) error {
	const query = `
		INSERT INTO order_items (id, order_id, part_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		id := it.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := r.q.Exec(context.Background(), query, id, orderID, it.PartID, it.Quantity, it.UnitPrice); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// Delete borra la orden (los items se borran antes con DeleteItems).
func (r *OrderRepo) Delete(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM service_orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
