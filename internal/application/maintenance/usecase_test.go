package maintenance_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulinhof/assistencia-api/internal/application/maintenance"
	"github.com/paulinhof/assistencia-api/internal/domain"
)

type fakeBackupRepo struct{}

func rows(docs ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		out = append(out, json.RawMessage(d))
	}
	return out
}

func (fakeBackupRepo) DumpParts() ([]json.RawMessage, error) {
	return rows(`{"id":"p1","name":"COB Chip"}`), nil
}
func (fakeBackupRepo) DumpAsteraParts() ([]json.RawMessage, error) {
	return rows(`{"id":"a1","name":"Tubo Titan"}`), nil
}
func (fakeBackupRepo) DumpCreamSourceParts() ([]json.RawMessage, error) {
	return rows(), nil
}
func (fakeBackupRepo) DumpClients() ([]json.RawMessage, error) {
	return rows(`{"id":"c1","name":"João"}`), nil
}
func (fakeBackupRepo) DumpOrders() ([]json.RawMessage, error) {
	return rows(`{"id":"OS-2025-001","items":[]}`), nil
}

var exportDate = time.Date(2025, 8, 29, 15, 30, 0, 0, time.UTC)

func TestExport_Completo(t *testing.T) {
	uc := maintenance.NewUseCase(fakeBackupRepo{})

	b, err := uc.Export(maintenance.BackupFull, exportDate)
	require.NoError(t, err)

	assert.Equal(t, "backup_completo_2025-08-29.json", b.Filename)

	var doc struct {
		Timestamp     time.Time         `json:"timestamp"`
		Clients       []json.RawMessage `json:"clients"`
		ServiceOrders []json.RawMessage `json:"service_orders"`
		Inventory     struct {
			General     []json.RawMessage `json:"general"`
			Astera      []json.RawMessage `json:"astera"`
			CreamSource []json.RawMessage `json:"creamsource"`
		} `json:"inventory"`
	}
	require.NoError(t, json.Unmarshal(b.Body, &doc))

	assert.Equal(t, exportDate, doc.Timestamp)
	assert.Len(t, doc.Clients, 1)
	assert.Len(t, doc.ServiceOrders, 1)
	assert.Len(t, doc.Inventory.General, 1)
	assert.Len(t, doc.Inventory.Astera, 1)
	assert.Empty(t, doc.Inventory.CreamSource,
		"una tabla vacía exporta un array vacío, no null")
}

func TestExport_ParcialEsArrayPlano(t *testing.T) {
	uc := maintenance.NewUseCase(fakeBackupRepo{})

	b, err := uc.Export(maintenance.BackupClients, exportDate)
	require.NoError(t, err)

	assert.Equal(t, "backup_clientes_2025-08-29.json", b.Filename)

	var arr []map[string]any
	require.NoError(t, json.Unmarshal(b.Body, &arr), "el respaldo parcial es un array plano")
	require.Len(t, arr, 1)
	assert.Equal(t, "João", arr[0]["name"])
}

func TestExport_InventarioAgrupaLosTresOrigenes(t *testing.T) {
	uc := maintenance.NewUseCase(fakeBackupRepo{})

	b, err := uc.Export(maintenance.BackupInventory, exportDate)
	require.NoError(t, err)

	var doc map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal(b.Body, &doc))
	assert.Contains(t, doc, "general")
	assert.Contains(t, doc, "astera")
	assert.Contains(t, doc, "creamsource")
}

func TestExport_TipoDesconocido(t *testing.T) {
	uc := maintenance.NewUseCase(fakeBackupRepo{})

	_, err := uc.Export("usuarios", exportDate)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
