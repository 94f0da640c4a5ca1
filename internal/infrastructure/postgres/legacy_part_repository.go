package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paulinhof/assistencia-api/internal/domain/catalog"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
)

var _ repository.LegacyPartRepository = (*LegacyPartRepo)(nil)

// LegacyPartRepo lee las tablas por fabricante (astera_parts, cream_source_parts)
// que quedaron de instalaciones anteriores. Los datos vienen sucios: montos como
// texto "R$ ...", cantidades en texto libre, nombres vacíos. Todo se lee como
// texto (::text) y se coerciona con el paquete catalog; una fila sucia nunca
// tumba la lectura completa.
type LegacyPartRepo struct {
	q Querier
}

// NewLegacyPartRepository construye el adaptador de solo lectura para tablas legadas.
func NewLegacyPartRepository(q Querier) *LegacyPartRepo {
	return &LegacyPartRepo{q: q}
}

// ListAstera lee astera_parts coercionando a entidades del catálogo unificado.
func (r *LegacyPartRepo) ListAstera() ([]entity.Part, error) {
	const query = `
		SELECT COALESCE(id::text, ''), COALESCE(name::text, ''), COALESCE(code::text, ''),
			COALESCE(quantity::text, ''), COALESCE(price::text, ''), COALESCE(location::text, ''),
			COALESCE(units_per_package::text, '')
		FROM astera_parts`
	return r.list(query, entity.ManufacturerAstera)
}

// ListCreamSource lee cream_source_parts. La tabla no tiene units_per_package.
func (r *LegacyPartRepo) ListCreamSource() ([]entity.Part, error) {
	const query = `
		SELECT COALESCE(id::text, ''), COALESCE(name::text, ''), COALESCE(code::text, ''),
			COALESCE(quantity::text, ''), COALESCE(price::text, ''), COALESCE(location::text, ''),
			''
		FROM cream_source_parts`
	return r.list(query, entity.ManufacturerCreamSource)
}

func (r *LegacyPartRepo) list(query, manufacturer string) ([]entity.Part, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list %s parts: %w", manufacturer, err)
	}
	defer rows.Close()

	var list []entity.Part
	for rows.Next() {
		var id, name, code, quantity, price, location, unitsPerPackage string
		if err := rows.Scan(&id, &name, &code, &quantity, &price, &location, &unitsPerPackage); err != nil {
			return nil, fmt.Errorf("scan %s part: %w", manufacturer, err)
		}
		if id == "" {
			// filas sin id no se pueden referenciar desde órdenes
			id = uuid.New().String()
		}
		list = append(list, entity.Part{
			ID:              id,
			Name:            catalog.NameOrPlaceholder(name),
			Code:            code,
			Category:        "Geral",
			Quantity:        catalog.ParseQuantity(quantity),
			MinStock:        5,
			Price:           catalog.ParseMoney(price),
			Location:        location,
			Manufacturer:    manufacturer,
			UnitsPerPackage: catalog.ParseQuantity(unitsPerPackage),
			CreatedAt:       time.Time{},
		})
	}
	return list, rows.Err()
}
