package repository

import "github.com/paulinhof/assistencia-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes de servicio (DIP).
// Las órdenes y sus items viven en tablas separadas; el join se hace en memoria.
type OrderRepository interface {
	// List devuelve las órdenes sin items (los items se leen aparte con ListItems).
	List() ([]entity.ServiceOrder, error)
	ListItems() ([]entity.OrderItem, error)
	ListIDs() ([]string, error)
	Create(o *entity.ServiceOrder) error
	Update(o *entity.ServiceOrder) error
	DeleteItems(orderID string) error
	InsertItems(orderID string, items []entity.OrderItem) error
	Delete(orderID string) error
}
