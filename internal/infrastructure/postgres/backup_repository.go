package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulinhof/assistencia-api/internal/domain/repository"
)

var _ repository.BackupRepository = (*BackupRepo)(nil)

// BackupRepo exporta las tablas como filas JSON crudas vía row_to_json, sin
// pasar por las entidades: el respaldo refleja la base tal cual está.
type BackupRepo struct {
	q Querier
}

// NewBackupRepository construye el adaptador de respaldos.
func NewBackupRepository(q Querier) *BackupRepo {
	return &BackupRepo{q: q}
}

func (r *BackupRepo) dump(query, table string) ([]json.RawMessage, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", table, err)
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("exportar %s: %w", table, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exportar %s: %w", table, err)
	}
	return out, nil
}

// DumpParts exporta la tabla unificada de piezas.
func (r *BackupRepo) DumpParts() ([]json.RawMessage, error) {
	return r.dump(`SELECT row_to_json(t) FROM parts t ORDER BY t.name`, "parts")
}

// DumpAsteraParts exporta la tabla legada de Astera.
func (r *BackupRepo) DumpAsteraParts() ([]json.RawMessage, error) {
	return r.dump(`SELECT row_to_json(t) FROM astera_parts t ORDER BY t.name`, "astera_parts")
}

// DumpCreamSourceParts exporta la tabla legada de Cream Source.
func (r *BackupRepo) DumpCreamSourceParts() ([]json.RawMessage, error) {
	return r.dump(`SELECT row_to_json(t) FROM cream_source_parts t ORDER BY t.name`, "cream_source_parts")
}

// DumpClients exporta los clientes.
func (r *BackupRepo) DumpClients() ([]json.RawMessage, error) {
	return r.dump(`SELECT row_to_json(t) FROM clients t ORDER BY t.name`, "clients")
}

// DumpOrders exporta las órdenes con sus items anidados.
func (r *BackupRepo) DumpOrders() ([]json.RawMessage, error) {
	query := `
		SELECT row_to_json(o) FROM (
			SELECT so.*,
				COALESCE(
					(SELECT json_agg(row_to_json(it))
					 FROM order_items it
					 WHERE it.order_id = so.id),
					'[]'::json
				) AS items
			FROM service_orders so
			ORDER BY so.entry_date DESC
		) o`
	return r.dump(query, "service_orders")
}
