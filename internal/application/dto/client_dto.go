package dto

import "time"

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Document     string `json:"document"` // CPF o CNPJ
	Address      string `json:"address"`
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Notes        string `json:"notes"`
}

// UpdateClientRequest entrada para actualizar un cliente (solo campos presentes).
type UpdateClientRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Document     *string `json:"document"`
	Address      *string `json:"address"`
	ZipCode      *string `json:"zip_code"`
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Notes        *string `json:"notes"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Document     string    `json:"document"`
	Address      string    `json:"address"`
	ZipCode      string    `json:"zip_code"`
	Street       string    `json:"street"`
	Number       string    `json:"number"`
	Complement   string    `json:"complement"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClientListResponse lista de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Total int              `json:"total"`
}

// CEPResponse dirección estructurada devuelta por la consulta de CEP.
type CEPResponse struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}
