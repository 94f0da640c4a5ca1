package entity

import "time"

// Client representa un cliente del taller.
// Address es la dirección en texto libre; los campos estructurados (ZipCode, Street, etc.)
// se completan automáticamente al consultar el CEP.
type Client struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	Document     string // CPF o CNPJ
	Address      string
	ZipCode      string // CEP (8 dígitos)
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
