package repository

import "encoding/json"

// BackupRepository exporta las tablas crudas como filas JSON, tal como están
// en la base, para los respaldos descargables.
type BackupRepository interface {
	DumpParts() ([]json.RawMessage, error)
	DumpAsteraParts() ([]json.RawMessage, error)
	DumpCreamSourceParts() ([]json.RawMessage, error)
	DumpClients() ([]json.RawMessage, error)
	DumpOrders() ([]json.RawMessage, error)
}
