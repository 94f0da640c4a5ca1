package postgres

import (
	"context"
	"fmt"
)

// Capabilities describe qué columnas opcionales tiene el esquema de la tabla
// unificada de piezas. Las instalaciones viejas no tienen manufacturer ni
// units_per_package; el probe se ejecuta una vez al arrancar y decide la
// estrategia de upsert sin depender de inspeccionar mensajes de error.
type Capabilities struct {
	HasManufacturer    bool
	HasUnitsPerPackage bool
}

// DetectCapabilities consulta information_schema para ver qué columnas existen
// en la tabla parts.
func DetectCapabilities(ctx context.Context, q Querier) (Capabilities, error) {
	const query = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'parts' AND column_name IN ('manufacturer', 'units_per_package')`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return Capabilities{}, fmt.Errorf("detect capabilities: %w", err)
	}
	defer rows.Close()

	var caps Capabilities
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return Capabilities{}, fmt.Errorf("scan capability column: %w", err)
		}
		switch col {
		case "manufacturer":
			caps.HasManufacturer = true
		case "units_per_package":
			caps.HasUnitsPerPackage = true
		}
	}
	return caps, rows.Err()
}
