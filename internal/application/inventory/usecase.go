package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/catalog"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/store"
)

// UseCase operaciones sobre el catálogo de piezas.
type UseCase struct {
	store *store.Store
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(st *store.Store) *UseCase {
	return &UseCase{store: st}
}

// ListParts filtra el catálogo por texto libre (sin distinguir acentos ni
// mayúsculas, sobre nombre y código) y por fabricante.
func (uc *UseCase) ListParts(search, manufacturer string) dto.PartListResponse {
	var items []dto.PartResponse
	for _, p := range uc.store.Parts() {
		if manufacturer != "" && p.Manufacturer != manufacturer {
			continue
		}
		if !catalog.Matches(p.Name, search) && !catalog.Matches(p.Code, search) {
			continue
		}
		items = append(items, toPartResponse(p))
	}
	return dto.PartListResponse{Items: items, Total: len(items)}
}

// CreatePart agrega una pieza nueva al catálogo.
func (uc *UseCase) CreatePart(in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := in.Category
	if category == "" {
		category = "Geral"
	}
	p := entity.Part{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Code:            in.Code,
		Category:        category,
		Quantity:        in.Quantity,
		MinStock:        in.MinStock,
		Price:           in.Price,
		Location:        in.Location,
		ImageURL:        in.ImageURL,
		Manufacturer:    in.Manufacturer,
		UnitsPerPackage: in.UnitsPerPackage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.store.AddPart(p); err != nil {
		return nil, err
	}
	resp := toPartResponse(p)
	return &resp, nil
}

// UpdatePart aplica los campos presentes y persiste.
func (uc *UseCase) UpdatePart(id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	p, ok := uc.store.PartByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Code != nil {
		p.Code = *in.Code
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Manufacturer != nil {
		p.Manufacturer = *in.Manufacturer
	}
	if in.UnitsPerPackage != nil {
		p.UnitsPerPackage = *in.UnitsPerPackage
	}
	if p.Quantity < 0 || p.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	p.UpdatedAt = time.Now()

	if err := uc.store.UpdatePart(p); err != nil {
		return nil, err
	}
	resp := toPartResponse(p)
	return &resp, nil
}

func toPartResponse(p entity.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:              p.ID,
		Name:            p.Name,
		Code:            p.Code,
		Category:        p.Category,
		Quantity:        p.Quantity,
		MinStock:        p.MinStock,
		Price:           p.Price,
		Location:        p.Location,
		ImageURL:        p.ImageURL,
		Manufacturer:    p.Manufacturer,
		UnitsPerPackage: p.UnitsPerPackage,
		LowStock:        p.LowStock(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
