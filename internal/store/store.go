package store

import (
	"context"
	"sync"

	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
	"github.com/paulinhof/assistencia-api/pkg/logger"
)

// EventType identifica qué colección cambió.
type EventType string

const (
	EventParts   EventType = "parts"
	EventClients EventType = "clients"
	EventOrders  EventType = "orders"
)

// Event se publica a los suscriptores después de cada mutación confirmada.
type Event struct {
	Type EventType
}

// OrderTxRunner ejecuta una operación sobre órdenes dentro de una transacción.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// Store es el estado en memoria de la aplicación: catálogo de piezas, clientes
// y órdenes de servicio. Todas las lecturas de los handlers salen de acá; las
// mutaciones pasan por métodos que coordinan memoria y persistencia.
//
// La política de concurrencia es last-write-wins: dos escritores concurrentes
// sobre el mismo registro no se detectan, gana el último.
type Store struct {
	mu sync.RWMutex

	parts   []entity.Part
	clients []entity.Client
	orders  []entity.ServiceOrder

	partRepo   repository.PartRepository
	legacyRepo repository.LegacyPartRepository
	clientRepo repository.ClientRepository
	orderRepo  repository.OrderRepository
	tx         OrderTxRunner

	log *logger.Logger

	subMu sync.Mutex
	subs  []func(Event)
}

// Deps agrupa las dependencias del store.
type Deps struct {
	PartRepo   repository.PartRepository
	LegacyRepo repository.LegacyPartRepository
	ClientRepo repository.ClientRepository
	OrderRepo  repository.OrderRepository
	Tx         OrderTxRunner
	Logger     *logger.Logger
}

// New construye el store vacío. Llamar RefreshAll para la carga inicial.
func New(deps Deps) *Store {
	return &Store{
		partRepo:   deps.PartRepo,
		legacyRepo: deps.LegacyRepo,
		clientRepo: deps.ClientRepo,
		orderRepo:  deps.OrderRepo,
		tx:         deps.Tx,
		log:        deps.Logger,
	}
}

// Subscribe registra un callback que se invoca después de cada mutación.
// El callback corre en la goroutine del escritor; debe ser barato.
func (s *Store) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(t EventType) {
	s.subMu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(Event{Type: t})
	}
}

// RefreshAll recarga las tres colecciones desde la base.
func (s *Store) RefreshAll() {
	s.RefreshParts()
	s.RefreshClients()
	s.RefreshOrders()
}
