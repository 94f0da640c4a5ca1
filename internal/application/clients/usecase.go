// Package clients implementa el CRUD de clientes del taller.
package clients

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/catalog"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/store"
)

// UseCase operaciones sobre clientes.
type UseCase struct {
	store *store.Store
}

// NewUseCase construye el caso de uso de clientes.
func NewUseCase(st *store.Store) *UseCase {
	return &UseCase{store: st}
}

// List filtra los clientes por texto libre sobre nombre, teléfono y documento.
func (uc *UseCase) List(search string) dto.ClientListResponse {
	var items []dto.ClientResponse
	for _, c := range uc.store.Clients() {
		if !catalog.Matches(c.Name, search) &&
			!catalog.Matches(c.Phone, search) &&
			!catalog.Matches(c.Document, search) {
			continue
		}
		items = append(items, toClientResponse(c))
	}
	return dto.ClientListResponse{Items: items, Total: len(items)}
}

// Get devuelve un cliente por ID.
func (uc *UseCase) Get(id string) (*dto.ClientResponse, error) {
	c, ok := uc.store.ClientByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// Create registra un cliente nuevo.
func (uc *UseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := entity.Client{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Phone:        in.Phone,
		Email:        in.Email,
		Document:     in.Document,
		Address:      in.Address,
		ZipCode:      in.ZipCode,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.store.AddClient(c); err != nil {
		return nil, err
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// Update modifica solo los campos presentes en el cuerpo.
func (uc *UseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, ok := uc.store.ClientByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Document != nil {
		c.Document = *in.Document
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.ZipCode != nil {
		c.ZipCode = *in.ZipCode
	}
	if in.Street != nil {
		c.Street = *in.Street
	}
	if in.Number != nil {
		c.Number = *in.Number
	}
	if in.Complement != nil {
		c.Complement = *in.Complement
	}
	if in.Neighborhood != nil {
		c.Neighborhood = *in.Neighborhood
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.State != nil {
		c.State = *in.State
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	c.UpdatedAt = time.Now()

	if err := uc.store.UpdateClient(c); err != nil {
		return nil, err
	}
	resp := toClientResponse(c)
	return &resp, nil
}

func toClientResponse(c entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Document:     c.Document,
		Address:      c.Address,
		ZipCode:      c.ZipCode,
		Street:       c.Street,
		Number:       c.Number,
		Complement:   c.Complement,
		Neighborhood: c.Neighborhood,
		City:         c.City,
		State:        c.State,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
	}
}
