package quotes_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/application/quotes"
	"github.com/paulinhof/assistencia-api/internal/application/serviceorders"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
	"github.com/paulinhof/assistencia-api/internal/store"
	"github.com/paulinhof/assistencia-api/pkg/logger"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type partRepo struct{ parts []entity.Part }

func (f *partRepo) List() ([]entity.Part, error)         { return f.parts, nil }
func (f *partRepo) GetByID(string) (*entity.Part, error) { return nil, nil }
func (f *partRepo) Create(*entity.Part) error            { return nil }
func (f *partRepo) Update(*entity.Part) error            { return nil }
func (f *partRepo) Upsert(*entity.Part) error            { return nil }
func (f *partRepo) Exists(string) (bool, error)          { return true, nil }

type legacyRepo struct{}

func (legacyRepo) ListAstera() ([]entity.Part, error)      { return nil, nil }
func (legacyRepo) ListCreamSource() ([]entity.Part, error) { return nil, nil }

type clientRepo struct{ clients []entity.Client }

func (f *clientRepo) List() ([]entity.Client, error)         { return f.clients, nil }
func (f *clientRepo) GetByID(string) (*entity.Client, error) { return nil, nil }
func (f *clientRepo) Create(*entity.Client) error            { return nil }
func (f *clientRepo) Update(*entity.Client) error            { return nil }

type orderRepo struct {
	orders []entity.ServiceOrder
	items  []entity.OrderItem
}

func (f *orderRepo) List() ([]entity.ServiceOrder, error)   { return f.orders, nil }
func (f *orderRepo) ListItems() ([]entity.OrderItem, error) { return f.items, nil }
func (f *orderRepo) ListIDs() ([]string, error)             { return nil, nil }
func (f *orderRepo) Create(o *entity.ServiceOrder) error {
	f.orders = append(f.orders, *o)
	return nil
}
func (f *orderRepo) Update(o *entity.ServiceOrder) error {
	for i := range f.orders {
		if f.orders[i].ID == o.ID {
			f.orders[i] = *o
		}
	}
	return nil
}
func (f *orderRepo) DeleteItems(orderID string) error {
	kept := f.items[:0]
	for _, it := range f.items {
		if it.OrderID != orderID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}
func (f *orderRepo) InsertItems(orderID string, items []entity.OrderItem) error {
	for _, it := range items {
		it.OrderID = orderID
		f.items = append(f.items, it)
	}
	return nil
}
func (f *orderRepo) Delete(string) error { return nil }

type passTx struct{ repo repository.OrderRepository }

func (f *passTx) RunOrders(ctx context.Context, fn func(repository.OrderRepository) error) error {
	return fn(f.repo)
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func buildUseCase(t *testing.T, parts []entity.Part, so []entity.ServiceOrder, items []entity.OrderItem) (*quotes.UseCase, *orderRepo) {
	t.Helper()
	repo := &orderRepo{orders: so, items: items}
	st := store.New(store.Deps{
		PartRepo:   &partRepo{parts: parts},
		LegacyRepo: legacyRepo{},
		ClientRepo: &clientRepo{},
		OrderRepo:  repo,
		Tx:         &passTx{repo: repo},
		Logger:     logger.New(logger.Config{Env: "test", Level: "error"}),
	})
	st.RefreshAll()
	ordersUC := serviceorders.NewUseCase(st)
	return quotes.NewUseCase(st, ordersUC), repo
}

func analysisOrder(id string) entity.ServiceOrder {
	return entity.ServiceOrder{
		ID:        id,
		Status:    entity.StatusInAnalysis,
		EntryDate: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ── ListPending ───────────────────────────────────────────────────────────────

func TestListPending_SoloFaseDePresupuesto(t *testing.T) {
	so := []entity.ServiceOrder{
		{ID: "OS-2025-001", Status: entity.StatusInAnalysis},
		{ID: "OS-2025-002", Status: entity.StatusAwaitingApproval},
		{ID: "OS-2025-003", Status: entity.StatusInRepair},
		{ID: "OS-2025-004", Status: entity.StatusReceived},
	}
	uc, _ := buildUseCase(t, nil, so, nil)

	resp := uc.ListPending()

	assert.Equal(t, 2, resp.Total,
		"solo Em Análise y Aguardando Aprovação cuentan como presupuesto pendiente")
}

// ── AddItem ───────────────────────────────────────────────────────────────────

func TestAddItem_CongelaElPrecioDelCatalogo(t *testing.T) {
	parts := []entity.Part{{ID: "p1", Code: "C1", Name: "COB Chip", Price: money("150.50")}}
	uc, repo := buildUseCase(t, parts, []entity.ServiceOrder{analysisOrder("OS-2025-001")}, nil)

	resp, err := uc.AddItem("OS-2025-001", dto.AddQuoteItemRequest{PartID: "p1", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(money("150.50")),
		"el precio unitario sale del catálogo al momento de agregar")
	assert.True(t, resp.Items[0].Subtotal.Equal(money("301")))
	require.Len(t, repo.items, 1, "el item debe quedar persistido")
}

func TestAddItem_PiezaInexistente(t *testing.T) {
	uc, _ := buildUseCase(t, nil, []entity.ServiceOrder{analysisOrder("OS-2025-001")}, nil)

	_, err := uc.AddItem("OS-2025-001", dto.AddQuoteItemRequest{PartID: "no-existe", Quantity: 1})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_CantidadInvalida(t *testing.T) {
	parts := []entity.Part{{ID: "p1", Code: "C1", Name: "COB Chip", Price: money("10")}}
	uc, _ := buildUseCase(t, parts, []entity.ServiceOrder{analysisOrder("OS-2025-001")}, nil)

	_, err := uc.AddItem("OS-2025-001", dto.AddQuoteItemRequest{PartID: "p1", Quantity: 0})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── RemoveItem / RepriceItem ──────────────────────────────────────────────────

func TestRemoveItem(t *testing.T) {
	so := []entity.ServiceOrder{analysisOrder("OS-2025-001")}
	items := []entity.OrderItem{
		{ID: "i1", OrderID: "OS-2025-001", PartID: "p1", Quantity: 1, UnitPrice: money("10")},
		{ID: "i2", OrderID: "OS-2025-001", PartID: "p2", Quantity: 1, UnitPrice: money("20")},
	}
	uc, _ := buildUseCase(t, nil, so, items)

	resp, err := uc.RemoveItem("OS-2025-001", "i1")
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "i2", resp.Items[0].ID)

	_, err = uc.RemoveItem("OS-2025-001", "i9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepriceItem_AjusteManual(t *testing.T) {
	so := []entity.ServiceOrder{analysisOrder("OS-2025-001")}
	items := []entity.OrderItem{
		{ID: "i1", OrderID: "OS-2025-001", PartID: "p1", Quantity: 2, UnitPrice: money("100")},
	}
	uc, _ := buildUseCase(t, nil, so, items)

	resp, err := uc.RepriceItem("OS-2025-001", "i1", dto.RepriceQuoteItemRequest{UnitPrice: money("80")})
	require.NoError(t, err)

	assert.True(t, resp.Items[0].UnitPrice.Equal(money("80")))
	assert.True(t, resp.Items[0].Subtotal.Equal(money("160")))
}

// ── SetCharges / Totals ───────────────────────────────────────────────────────

func TestSetCharges_RecortaElDescuento(t *testing.T) {
	uc, _ := buildUseCase(t, nil, []entity.ServiceOrder{analysisOrder("OS-2025-001")}, nil)

	resp, err := uc.SetCharges("OS-2025-001", dto.QuoteChargesRequest{Discount: ptr(money("150"))})
	require.NoError(t, err)
	assert.True(t, resp.Discount.Equal(money("100")), "el descuento se recorta a [0, 100]")

	resp, err = uc.SetCharges("OS-2025-001", dto.QuoteChargesRequest{Discount: ptr(money("-5"))})
	require.NoError(t, err)
	assert.True(t, resp.Discount.IsZero())
}

func TestSetCharges_SoloCamposPresentes(t *testing.T) {
	o := analysisOrder("OS-2025-001")
	o.LaborCost = money("90")
	uc, _ := buildUseCase(t, nil, []entity.ServiceOrder{o}, nil)

	resp, err := uc.SetCharges("OS-2025-001", dto.QuoteChargesRequest{
		ShippingCost:   ptr(money("25")),
		ShippingMethod: ptr("Sedex"),
	})
	require.NoError(t, err)

	assert.True(t, resp.LaborCost.Equal(money("90")), "los campos ausentes no se tocan")
	assert.True(t, resp.ShippingCost.Equal(money("25")))
	assert.Equal(t, "Sedex", resp.ShippingMethod)
}

func TestTotals_DescuentoSoloSobrePiezas(t *testing.T) {
	o := analysisOrder("OS-2025-001")
	o.LaborCost = money("80")
	o.ShippingCost = money("20")
	o.Discount = money("30")
	items := []entity.OrderItem{
		{ID: "i1", OrderID: "OS-2025-001", PartID: "p1", Quantity: 2, UnitPrice: money("100")},
	}
	uc, _ := buildUseCase(t, nil, []entity.ServiceOrder{o}, items)

	tot, err := uc.Totals("OS-2025-001")
	require.NoError(t, err)

	assert.True(t, tot.PartsSubtotal.Equal(money("200")))
	assert.True(t, tot.Total.Equal(money("240")),
		"140 de piezas con descuento + 80 de mano de obra + 20 de envío")
}

// ── SendForApproval ───────────────────────────────────────────────────────────

func TestSendForApproval(t *testing.T) {
	uc, repo := buildUseCase(t, nil, []entity.ServiceOrder{analysisOrder("OS-2025-001")}, nil)

	resp, err := uc.SendForApproval("OS-2025-001")
	require.NoError(t, err)

	assert.Equal(t, "Aguardando Aprovação", resp.Status)
	require.Len(t, repo.orders, 1)
	assert.Equal(t, entity.StatusAwaitingApproval, repo.orders[0].Status)
}
