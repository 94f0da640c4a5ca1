package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/orders"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
)

// RefreshOrders recarga órdenes e items con dos lecturas y arma el join en
// memoria por ID de orden. Fallas de lectura se loguean y dejan lo anterior.
func (s *Store) RefreshOrders() {
	list, err := s.orderRepo.List()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la tabla de órdenes")
		return
	}
	items, err := s.orderRepo.ListItems()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer los items de órdenes")
		return
	}

	byOrder := make(map[string][]entity.OrderItem, len(list))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for i := range list {
		list[i].Items = byOrder[list[i].ID]
	}
	// más recientes primero
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].EntryDate.After(list[j].EntryDate)
	})

	s.mu.Lock()
	s.orders = list
	s.mu.Unlock()
	s.notify(EventOrders)
}

// Orders devuelve una copia de las órdenes con sus items.
func (s *Store) Orders() []entity.ServiceOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ServiceOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID busca una orden en memoria.
func (s *Store) OrderByID(id string) (entity.ServiceOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return entity.ServiceOrder{}, false
}

// NextOrderID genera el próximo identificador OS-YYYY-NNN consultando los IDs
// persistidos del año en curso.
func (s *Store) NextOrderID(now time.Time) (string, error) {
	ids, err := s.orderRepo.ListIDs()
	if err != nil {
		return "", fmt.Errorf("numerar orden: %w", err)
	}
	return orders.NextID(ids, now.Year()), nil
}

// ensurePartsExist repara referencias rotas: si un item apunta a una pieza que
// está en memoria (vino de una tabla legada) pero no existe en la tabla
// unificada, la copia antes de insertar el item para no violar la FK.
func (s *Store) ensurePartsExist(items []entity.OrderItem) {
	for _, it := range items {
		exists, err := s.partRepo.Exists(it.PartID)
		if err != nil {
			s.log.Warn().Err(err).Str("part_id", it.PartID).Msg("no se pudo verificar la pieza referenciada")
			continue
		}
		if exists {
			continue
		}
		p, ok := s.PartByID(it.PartID)
		if !ok {
			s.log.Warn().Str("part_id", it.PartID).Msg("item referencia una pieza que no está en el catálogo")
			continue
		}
		if err := s.partRepo.Create(&p); err != nil {
			s.log.Warn().Err(err).Str("part_id", it.PartID).Msg("no se pudo copiar la pieza legada a la tabla unificada")
		}
	}
}

// AddOrder persiste la orden y sus items y la agrega a memoria.
// Si falla el insert de la orden, nada cambia. Si la orden entra pero los
// items fallan, la orden queda (remota y en memoria) y el error se informa;
// no hay rollback.
func (s *Store) AddOrder(o entity.ServiceOrder) error {
	s.ensurePartsExist(o.Items)

	if err := s.orderRepo.Create(&o); err != nil {
		return fmt.Errorf("persistir orden: %w", err)
	}

	var itemErr error
	if len(o.Items) > 0 {
		if err := s.orderRepo.InsertItems(o.ID, o.Items); err != nil {
			s.log.Warn().Err(err).Str("order_id", o.ID).Msg("la orden quedó persistida pero sus items fallaron")
			itemErr = fmt.Errorf("persistir items de la orden: %w", err)
		}
	}

	s.mu.Lock()
	s.orders = append([]entity.ServiceOrder{o}, s.orders...)
	s.mu.Unlock()
	s.notify(EventOrders)
	return itemErr
}

// UpdateOrder persiste la orden y reemplaza sus items (borrar todo y
// reinsertar, sin diff) dentro de una transacción, y actualiza la memoria.
func (s *Store) UpdateOrder(o entity.ServiceOrder) error {
	if _, ok := s.OrderByID(o.ID); !ok {
		return domain.ErrNotFound
	}
	s.ensurePartsExist(o.Items)

	if err := s.orderRepo.Update(&o); err != nil {
		return fmt.Errorf("persistir orden: %w", err)
	}

	err := s.tx.RunOrders(context.Background(), func(repo repository.OrderRepository) error {
		if err := repo.DeleteItems(o.ID); err != nil {
			return err
		}
		if len(o.Items) == 0 {
			return nil
		}
		return repo.InsertItems(o.ID, o.Items)
	})
	if err != nil {
		return fmt.Errorf("reemplazar items de la orden: %w", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = o
			break
		}
	}
	s.mu.Unlock()
	s.notify(EventOrders)
	return nil
}

// DeleteOrder borra items y orden en ese orden. Si el borrado de items falla,
// la orden queda intacta en memoria. Si los items salen pero la orden falla,
// queda el estado parcial (items borrados, orden viva); no hay rollback.
func (s *Store) DeleteOrder(id string) error {
	if _, ok := s.OrderByID(id); !ok {
		return domain.ErrNotFound
	}

	if err := s.orderRepo.DeleteItems(id); err != nil {
		return fmt.Errorf("borrar items de la orden: %w", err)
	}
	if err := s.orderRepo.Delete(id); err != nil {
		return fmt.Errorf("borrar orden: %w", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notify(EventOrders)
	return nil
}
