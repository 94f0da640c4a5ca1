package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fabricantes conocidos. Cada uno tiene su propia tabla legada en la base;
// en memoria todas las piezas se unifican en un solo catálogo.
const (
	ManufacturerAputure     = "Aputure"
	ManufacturerAstera      = "Astera"
	ManufacturerCreamSource = "Cream Source"
)

// Part representa una pieza de repuesto del inventario.
// Quantity es el stock disponible; MinStock dispara la alerta de reposición.
type Part struct {
	ID              string
	Name            string
	Code            string // código del fabricante, único por (Code, Manufacturer)
	Category        string
	Quantity        int
	MinStock        int
	Price           decimal.Decimal
	Location        string // prateleira / estante
	ImageURL        string
	Manufacturer    string
	UnitsPerPackage int // unidades por paquete (relevante para Astera)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowStock indica si la pieza está en o por debajo del stock mínimo.
func (p Part) LowStock() bool {
	return p.Quantity <= p.MinStock
}
