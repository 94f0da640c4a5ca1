package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre la tabla unificada parts.
// caps decide qué columnas existen y la clave del upsert de importación.
type PartRepo struct {
	q    Querier
	caps Capabilities
}

// NewPartRepository construye el adaptador de persistencia para piezas. Pasar pool o tx (Querier).
func NewPartRepository(q Querier, caps Capabilities) *PartRepo {
	return &PartRepo{q: q, caps: caps}
}

const partColumns = `id, name, code, category, quantity, min_stock, price, location,
		COALESCE(image_url, ''), COALESCE(manufacturer, ''), COALESCE(units_per_package, 0),
		created_at, updated_at`

const partColumnsLegacy = `id, name, code, category, quantity, min_stock, price, location,
		COALESCE(image_url, ''), '', 0, created_at, updated_at`

func (r *PartRepo) columns() string {
	if r.caps.HasManufacturer && r.caps.HasUnitsPerPackage {
		return partColumns
	}
	return partColumnsLegacy
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &p.Category, &p.Quantity, &p.MinStock, &p.Price,
		&p.Location, &p.ImageURL, &p.Manufacturer, &p.UnitsPerPackage,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List devuelve todas las piezas de la tabla unificada.
func (r *PartRepo) List() ([]entity.Part, error) {
	query := fmt.Sprintf(`SELECT %s FROM parts`, r.columns())
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var list []entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// GetByID obtiene una pieza por ID. Retorna (nil, nil) si no existe.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	query := fmt.Sprintf(`SELECT %s FROM parts WHERE id = $1`, r.columns())
	p, err := scanPart(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// Exists verifica si existe una pieza con el ID dado.
func (r *PartRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM parts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("part exists: %w", err)
	}
	return exists, nil
}

// Create persiste una nueva pieza.
func (r *PartRepo) Create(p *entity.Part) error {
	var query string
	var args []any
	if r.caps.HasManufacturer && r.caps.HasUnitsPerPackage {
		query = `
			INSERT INTO parts (id, name, code, category, quantity, min_stock, price, location, image_url, manufacturer, units_per_package, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		args = []any{p.ID, p.Name, p.Code, p.Category, p.Quantity, p.MinStock, p.Price,
			p.Location, p.ImageURL, p.Manufacturer, p.UnitsPerPackage, p.CreatedAt, p.UpdatedAt}
	} else {
		query = `
			INSERT INTO parts (id, name, code, category, quantity, min_stock, price, location, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		args = []any{p.ID, p.Name, p.Code, p.Category, p.Quantity, p.MinStock, p.Price,
			p.Location, p.ImageURL, p.CreatedAt, p.UpdatedAt}
	}
	_, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// Update actualiza una pieza existente.
func (r *PartRepo) Update(p *entity.Part) error {
	var query string
	var args []any
	if r.caps.HasManufacturer && r.caps.HasUnitsPerPackage {
		query = `
			UPDATE parts SET name = $2, code = $3, category = $4, quantity = $5, min_stock = $6,
				price = $7, location = $8, image_url = $9, manufacturer = $10, units_per_package = $11, updated_at = $12
			WHERE id = $1`
		args = []any{p.ID, p.Name, p.Code, p.Category, p.Quantity, p.MinStock, p.Price,
			p.Location, p.ImageURL, p.Manufacturer, p.UnitsPerPackage, p.UpdatedAt}
	} else {
		query = `
			UPDATE parts SET name = $2, code = $3, category = $4, quantity = $5, min_stock = $6,
				price = $7, location = $8, image_url = $9, updated_at = $10
			WHERE id = $1`
		args = []any{p.ID, p.Name, p.Code, p.Category, p.Quantity, p.MinStock, p.Price,
			p.Location, p.ImageURL, p.UpdatedAt}
	}
	cmd, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o actualiza por la clave de importación. Con esquema completo
// la clave es (code, manufacturer); en esquemas viejos se degrada a (code).
func (r *PartRepo) Upsert(p *entity.Part) error {
	var query string
	var args []any
	if r.caps.HasManufacturer && r.caps.HasUnitsPerPackage {
		query = `
			INSERT INTO parts (id, name, code, category, quantity, min_stock, price, location, image_url, manufacturer, units_per_package, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (code, manufacturer) DO UPDATE SET
				name = EXCLUDED.name, category = EXCLUDED.category, quantity = EXCLUDED.quantity,
				price = EXCLUDED.price, location = EXCLUDED.location,
				units_per_package = EXCLUDED.units_per_package, updated_at = EXCLUDED.updated_at`
		args = []any{p.ID, p.Name, p.Code, p.Category, p.Quantity, p.MinStock, p.Price,
			p.Location, p.ImageURL, p.Manufacturer, p.UnitsPerPackage, p.CreatedAt, p.UpdatedAt}
	} else {
		query = `
			INSERT INTO parts (id, name, code, category, quantity, min_stock, price, location, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name, category = EXCLUDED.category, quantity = EXCLUDED.quantity,
				price = EXCLUDED.price, location = EXCLUDED.location, updated_at = EXCLUDED.updated_at`
		args = []any{p.ID, p.Name, p.Code, p.Category, p.Quantity, p.MinStock, p.Price,
			p.Location, p.ImageURL, p.CreatedAt, p.UpdatedAt}
	}
	_, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("upsert part: %w", err)
	}
	return nil
}
