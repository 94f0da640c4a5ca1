// Package maintenance genera los respaldos JSON descargables.
// Exportación solamente; no hay camino de restauración.
package maintenance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
)

// Tipos de respaldo aceptados en la ruta.
const (
	BackupFull      = "completo"
	BackupClients   = "clientes"
	BackupOrders    = "ordens"
	BackupInventory = "inventario"
)

// inventoryDocument agrupa los tres orígenes de piezas.
type inventoryDocument struct {
	General     []json.RawMessage `json:"general"`
	Astera      []json.RawMessage `json:"astera"`
	CreamSource []json.RawMessage `json:"creamsource"`
}

// fullDocument es la estructura del respaldo completo.
type fullDocument struct {
	Timestamp     time.Time         `json:"timestamp"`
	Clients       []json.RawMessage `json:"clients"`
	ServiceOrders []json.RawMessage `json:"service_orders"`
	Inventory     inventoryDocument `json:"inventory"`
}

// Backup es un respaldo listo para descargar.
type Backup struct {
	Filename string
	Body     []byte
}

// UseCase genera los respaldos.
type UseCase struct {
	repo repository.BackupRepository
}

// NewUseCase construye el caso de uso de respaldos.
func NewUseCase(repo repository.BackupRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Export genera el respaldo del tipo pedido: el completo es un documento con
// las tres colecciones y timestamp, los parciales un array plano.
func (uc *UseCase) Export(backupType string, now time.Time) (*Backup, error) {
	var (
		body []byte
		err  error
	)
	switch backupType {
	case BackupFull:
		body, err = uc.full(now)
	case BackupClients:
		body, err = uc.bare(uc.repo.DumpClients)
	case BackupOrders:
		body, err = uc.bare(uc.repo.DumpOrders)
	case BackupInventory:
		body, err = uc.inventory()
	default:
		return nil, fmt.Errorf("tipo de respaldo %q: %w", backupType, domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	return &Backup{
		Filename: fmt.Sprintf("backup_%s_%s.json", backupType, now.Format("2006-01-02")),
		Body:     body,
	}, nil
}

func (uc *UseCase) full(now time.Time) ([]byte, error) {
	clients, err := uc.repo.DumpClients()
	if err != nil {
		return nil, err
	}
	orders, err := uc.repo.DumpOrders()
	if err != nil {
		return nil, err
	}
	inv, err := uc.inventoryDoc()
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(fullDocument{
		Timestamp:     now,
		Clients:       clients,
		ServiceOrders: orders,
		Inventory:     *inv,
	}, "", "  ")
}

func (uc *UseCase) inventory() ([]byte, error) {
	inv, err := uc.inventoryDoc()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(inv, "", "  ")
}

func (uc *UseCase) inventoryDoc() (*inventoryDocument, error) {
	general, err := uc.repo.DumpParts()
	if err != nil {
		return nil, err
	}
	astera, err := uc.repo.DumpAsteraParts()
	if err != nil {
		return nil, err
	}
	cream, err := uc.repo.DumpCreamSourceParts()
	if err != nil {
		return nil, err
	}
	return &inventoryDocument{General: general, Astera: astera, CreamSource: cream}, nil
}

func (uc *UseCase) bare(dump func() ([]json.RawMessage, error)) ([]byte, error) {
	rows, err := dump()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(rows, "", "  ")
}
