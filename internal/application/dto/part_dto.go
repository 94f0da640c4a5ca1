package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest entrada para crear una pieza.
type CreatePartRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Code            string          `json:"code" validate:"required,min=1,max=100"`
	Category        string          `json:"category"`
	Quantity        int             `json:"quantity" validate:"min=0"`
	MinStock        int             `json:"min_stock" validate:"min=0"`
	Price           decimal.Decimal `json:"price"`
	Location        string          `json:"location"`
	ImageURL        string          `json:"image_url"`
	Manufacturer    string          `json:"manufacturer"`
	UnitsPerPackage int             `json:"units_per_package" validate:"min=0"`
}

// UpdatePartRequest entrada para actualizar una pieza (solo campos presentes).
type UpdatePartRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Code            *string          `json:"code" validate:"omitempty,min=1,max=100"`
	Category        *string          `json:"category"`
	Quantity        *int             `json:"quantity" validate:"omitempty,min=0"`
	MinStock        *int             `json:"min_stock" validate:"omitempty,min=0"`
	Price           *decimal.Decimal `json:"price"`
	Location        *string          `json:"location"`
	ImageURL        *string          `json:"image_url"`
	Manufacturer    *string          `json:"manufacturer"`
	UnitsPerPackage *int             `json:"units_per_package" validate:"omitempty,min=0"`
}

// PartResponse salida de una pieza.
type PartResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Category        string          `json:"category"`
	Quantity        int             `json:"quantity"`
	MinStock        int             `json:"min_stock"`
	Price           decimal.Decimal `json:"price"`
	Location        string          `json:"location"`
	ImageURL        string          `json:"image_url"`
	Manufacturer    string          `json:"manufacturer"`
	UnitsPerPackage int             `json:"units_per_package"`
	LowStock        bool            `json:"low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PartListResponse lista de piezas del catálogo unificado.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Total int            `json:"total"`
}

// ImportResultResponse resumen de una importación de planilla.
// Las filas sin código se saltan y no cuentan ni como importadas ni como fallidas.
type ImportResultResponse struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Skipped  int      `json:"skipped"`
	Log      []string `json:"log"`
}
