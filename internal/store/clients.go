package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
)

// RefreshClients recarga la lista de clientes ordenada por nombre.
// Una falla de lectura se loguea y deja la lista anterior intacta.
func (s *Store) RefreshClients() {
	clients, err := s.clientRepo.List()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la tabla de clientes")
		return
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})

	s.mu.Lock()
	s.clients = clients
	s.mu.Unlock()
	s.notify(EventClients)
}

// Clients devuelve una copia de la lista de clientes.
func (s *Store) Clients() []entity.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// ClientByID busca un cliente en memoria.
func (s *Store) ClientByID(id string) (entity.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Client{}, false
}

// AddClient persiste primero y recarga después: si la escritura falla, el
// error corta la operación y la memoria no cambia.
func (s *Store) AddClient(c entity.Client) error {
	if err := s.clientRepo.Create(&c); err != nil {
		return fmt.Errorf("persistir cliente: %w", err)
	}
	s.RefreshClients()
	return nil
}

// UpdateClient persiste primero y recarga después, igual que AddClient.
func (s *Store) UpdateClient(c entity.Client) error {
	if _, ok := s.ClientByID(c.ID); !ok {
		return domain.ErrNotFound
	}
	if err := s.clientRepo.Update(&c); err != nil {
		return fmt.Errorf("persistir cliente: %w", err)
	}
	s.RefreshClients()
	return nil
}
