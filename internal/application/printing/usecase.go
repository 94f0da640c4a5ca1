// Package printing arma los documentos imprimibles de una orden: el
// presupuesto para el cliente y el recibo de entrada del equipo.
package printing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/store"
)

// OrderLineForPDF es una línea de piezas ya resuelta para el documento.
type OrderLineForPDF struct {
	Quantity  int
	PartName  string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Contact bloque de contacto del técnico que firma el documento.
type Contact struct {
	Technician string
	WhatsApp   string
}

// OrderPDFGenerator renderiza los documentos de una orden.
type OrderPDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, o *entity.ServiceOrder, client *entity.Client, lines []OrderLineForPDF, contact Contact) ([]byte, error)
	GenerateReceiptPDF(ctx context.Context, o *entity.ServiceOrder, client *entity.Client, contact Contact) ([]byte, error)
}

// Bloque de contacto por defecto y variantes por cuenta de usuario.
var (
	defaultContact = Contact{Technician: "Jonathan Jow", WhatsApp: "(85) 98881-7194"}

	contactsByEmail = map[string]Contact{
		"paulinho@mci-store.com.br": {Technician: "Paulinho", WhatsApp: "(85) 98881-7194"},
	}
)

// Document es un PDF listo para descargar.
type Document struct {
	Filename string
	Body     []byte
}

// UseCase genera los documentos imprimibles.
type UseCase struct {
	store *store.Store
	gen   OrderPDFGenerator
}

// NewUseCase construye el caso de uso de impresión.
func NewUseCase(st *store.Store, gen OrderPDFGenerator) *UseCase {
	return &UseCase{store: st, gen: gen}
}

// QuotePDF genera el presupuesto de la orden. userEmail selecciona el bloque
// de contacto del técnico que aparece al pie.
func (uc *UseCase) QuotePDF(ctx context.Context, orderID, userEmail string) (*Document, error) {
	o, client, err := uc.resolve(orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]OrderLineForPDF, 0, len(o.Items))
	for _, it := range o.Items {
		name := it.PartID
		if p, ok := uc.store.PartByID(it.PartID); ok {
			name = p.Name
		}
		lines = append(lines, OrderLineForPDF{
			Quantity:  it.Quantity,
			PartName:  name,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}

	body, err := uc.gen.GenerateQuotePDF(ctx, o, client, lines, contactFor(userEmail))
	if err != nil {
		return nil, fmt.Errorf("generar presupuesto: %w", err)
	}
	return &Document{Filename: fmt.Sprintf("orcamento_%s.pdf", o.ID), Body: body}, nil
}

// ReceiptPDF genera el recibo de entrada del equipo.
func (uc *UseCase) ReceiptPDF(ctx context.Context, orderID, userEmail string) (*Document, error) {
	o, client, err := uc.resolve(orderID)
	if err != nil {
		return nil, err
	}
	body, err := uc.gen.GenerateReceiptPDF(ctx, o, client, contactFor(userEmail))
	if err != nil {
		return nil, fmt.Errorf("generar recibo de entrada: %w", err)
	}
	return &Document{Filename: fmt.Sprintf("recibo_%s.pdf", o.ID), Body: body}, nil
}

func (uc *UseCase) resolve(orderID string) (*entity.ServiceOrder, *entity.Client, error) {
	o, ok := uc.store.OrderByID(orderID)
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	var client *entity.Client
	if c, ok := uc.store.ClientByID(o.ClientID); ok {
		client = &c
	} else {
		client = &entity.Client{Name: "Cliente não cadastrado"}
	}
	return &o, client, nil
}

func contactFor(email string) Contact {
	if c, ok := contactsByEmail[email]; ok {
		return c
	}
	return defaultContact
}
