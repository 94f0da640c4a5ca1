package repository

import "github.com/paulinhof/assistencia-api/internal/domain/entity"

// PartRepository define el puerto de persistencia para el catálogo unificado de piezas (DIP).
type PartRepository interface {
	List() ([]entity.Part, error)
	GetByID(id string) (*entity.Part, error)
	Create(p *entity.Part) error
	Update(p *entity.Part) error
	// Upsert inserta o actualiza por clave de importación. La clave preferida es
	// (code, manufacturer); si el esquema no la soporta se degrada a (code).
	Upsert(p *entity.Part) error
	Exists(id string) (bool, error)
}

// LegacyPartRepository lee las tablas por fabricante que quedaron de
// instalaciones anteriores. Solo lectura; las escrituras van al catálogo unificado.
type LegacyPartRepository interface {
	ListAstera() ([]entity.Part, error)
	ListCreamSource() ([]entity.Part, error)
}
