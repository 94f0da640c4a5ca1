package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulinhof/assistencia-api/internal/application/analytics"
	"github.com/paulinhof/assistencia-api/internal/application/serviceorders"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
	"github.com/paulinhof/assistencia-api/internal/store"
	"github.com/paulinhof/assistencia-api/pkg/logger"
)

// ── fakes mínimos de solo lectura ─────────────────────────────────────────────

type staticPartRepo struct{ parts []entity.Part }

func (f *staticPartRepo) List() ([]entity.Part, error)         { return f.parts, nil }
func (f *staticPartRepo) GetByID(string) (*entity.Part, error) { return nil, nil }
func (f *staticPartRepo) Create(*entity.Part) error            { return nil }
func (f *staticPartRepo) Update(*entity.Part) error            { return nil }
func (f *staticPartRepo) Upsert(*entity.Part) error            { return nil }
func (f *staticPartRepo) Exists(string) (bool, error)          { return true, nil }

type staticLegacyRepo struct{}

func (staticLegacyRepo) ListAstera() ([]entity.Part, error)      { return nil, nil }
func (staticLegacyRepo) ListCreamSource() ([]entity.Part, error) { return nil, nil }

type staticClientRepo struct{ clients []entity.Client }

func (f *staticClientRepo) List() ([]entity.Client, error)         { return f.clients, nil }
func (f *staticClientRepo) GetByID(string) (*entity.Client, error) { return nil, nil }
func (f *staticClientRepo) Create(*entity.Client) error            { return nil }
func (f *staticClientRepo) Update(*entity.Client) error            { return nil }

type staticOrderRepo struct {
	orders []entity.ServiceOrder
	items  []entity.OrderItem
}

func (f *staticOrderRepo) List() ([]entity.ServiceOrder, error) { return f.orders, nil }
func (f *staticOrderRepo) ListItems() ([]entity.OrderItem, error) {
	return f.items, nil
}
func (f *staticOrderRepo) ListIDs() ([]string, error)                   { return nil, nil }
func (f *staticOrderRepo) Create(*entity.ServiceOrder) error            { return nil }
func (f *staticOrderRepo) Update(*entity.ServiceOrder) error            { return nil }
func (f *staticOrderRepo) DeleteItems(string) error                     { return nil }
func (f *staticOrderRepo) InsertItems(string, []entity.OrderItem) error { return nil }
func (f *staticOrderRepo) Delete(string) error                          { return nil }

type passTx struct{ repo repository.OrderRepository }

func (f *passTx) RunOrders(ctx context.Context, fn func(repository.OrderRepository) error) error {
	return fn(f.repo)
}

func buildUseCase(t *testing.T, parts []entity.Part, clients []entity.Client, so []entity.ServiceOrder, items []entity.OrderItem) *analytics.UseCase {
	t.Helper()
	orderRepo := &staticOrderRepo{orders: so, items: items}
	st := store.New(store.Deps{
		PartRepo:   &staticPartRepo{parts: parts},
		LegacyRepo: staticLegacyRepo{},
		ClientRepo: &staticClientRepo{clients: clients},
		OrderRepo:  orderRepo,
		Tx:         &passTx{repo: orderRepo},
		Logger:     logger.New(logger.Config{Env: "test", Level: "error"}),
	})
	st.RefreshAll()
	return analytics.NewUseCase(st, serviceorders.NewUseCase(st))
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Dashboard ─────────────────────────────────────────────────────────────────

func TestDashboard_Indicadores(t *testing.T) {
	parts := []entity.Part{
		{ID: "p1", Code: "C1", Name: "COB Chip", Quantity: 2, MinStock: 5},
		{ID: "p2", Code: "C2", Name: "Ventilador", Quantity: 20, MinStock: 5},
	}
	clients := []entity.Client{{ID: "c1", Name: "João"}}
	so := []entity.ServiceOrder{
		{ID: "OS-2025-001", Status: entity.StatusReceived, EntryDate: date(2025, 1, 5)},
		{ID: "OS-2025-002", Status: entity.StatusAwaitingApproval, EntryDate: date(2025, 2, 5)},
		{ID: "OS-2025-003", Status: entity.StatusDelivered, EntryDate: date(2025, 3, 5)},
	}
	uc := buildUseCase(t, parts, clients, so, nil)

	d := uc.Dashboard()

	assert.Equal(t, 2, d.TotalParts)
	assert.Equal(t, 1, d.LowStockCount, "p1 tiene stock al límite")
	assert.Equal(t, 1, d.TotalClients)
	assert.Equal(t, 2, d.ActiveRepairs, "todo lo no entregado cuenta como activo")
	assert.Equal(t, 1, d.PendingQuotes)
	assert.Equal(t, 1, d.CountsByStatus["Entregue"])
	assert.Equal(t, 0, d.CountsByStatus["Em Reparo"], "los estados sin órdenes aparecen en cero")
	require.Len(t, d.RecentOrders, 3)
	assert.Equal(t, "OS-2025-003", d.RecentOrders[0].ID, "las más recientes primero")
}

// ── Billing ───────────────────────────────────────────────────────────────────

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestBilling_DesgloseConDescuentoSoloEnPiezas(t *testing.T) {
	so := []entity.ServiceOrder{
		{
			ID: "OS-2025-001", Status: entity.StatusDelivered,
			ServiceType: entity.ServiceTypePaid, EntryDate: date(2025, 3, 1),
			LaborCost: money("80"), ShippingCost: money("20"), Discount: money("30"),
		},
	}
	items := []entity.OrderItem{
		{ID: "i1", OrderID: "OS-2025-001", PartID: "p1", Quantity: 2, UnitPrice: money("100")},
	}
	uc := buildUseCase(t, nil, nil, so, items)

	r, err := uc.Billing(analytics.PeriodAll, "", "")
	require.NoError(t, err)

	assert.True(t, r.Revenue.Parts.Equal(money("140")), "200 de piezas menos 30%%: got %s", r.Revenue.Parts)
	assert.True(t, r.Revenue.Labor.Equal(money("80")))
	assert.True(t, r.Revenue.Shipping.Equal(money("20")))
	assert.True(t, r.Revenue.Total.Equal(money("240")))
	assert.Equal(t, 1, r.OrdersBilled)
	assert.True(t, r.AverageTicket.Equal(money("240")))
}

func TestBilling_SoloProntoOEntregueDeTipoPago(t *testing.T) {
	so := []entity.ServiceOrder{
		{ID: "OS-2025-001", Status: entity.StatusReady, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 3, 1), LaborCost: money("100")},
		{ID: "OS-2025-002", Status: entity.StatusInRepair, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 3, 2), LaborCost: money("50")},
		{ID: "OS-2025-003", Status: entity.StatusDelivered, ServiceType: entity.ServiceTypeWarranty,
			EntryDate: date(2025, 3, 3), LaborCost: money("70")},
	}
	uc := buildUseCase(t, nil, nil, so, nil)

	r, err := uc.Billing(analytics.PeriodAll, "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, r.OrdersBilled, "solo la orden Pronto de tipo Pago factura")
	assert.True(t, r.Revenue.Total.Equal(money("100")))
	assert.True(t, r.WarrantyCost.Equal(money("70")),
		"la garantía suma su costo absorbido, nunca factura")
}

func TestBilling_BucketsMensuales(t *testing.T) {
	so := []entity.ServiceOrder{
		{ID: "OS-2025-001", Status: entity.StatusDelivered, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 1, 10), LaborCost: money("100")},
		{ID: "OS-2025-002", Status: entity.StatusInRepair, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 1, 20), LaborCost: money("60")},
		{ID: "OS-2025-003", Status: entity.StatusReady, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 2, 5), LaborCost: money("40")},
	}
	uc := buildUseCase(t, nil, nil, so, nil)

	r, err := uc.Billing(analytics.PeriodAll, "", "")
	require.NoError(t, err)

	require.Len(t, r.Monthly, 2)
	assert.Equal(t, "2025-01", r.Monthly[0].Month, "buckets en orden cronológico")
	assert.True(t, r.Monthly[0].Revenue.Equal(money("100")))
	assert.True(t, r.Monthly[0].Pending.Equal(money("60")),
		"lo no facturado del mes queda como pendiente")
	assert.Equal(t, 1, r.Monthly[0].Orders)
	assert.Equal(t, "2025-02", r.Monthly[1].Month)
}

func TestBilling_RecebidoYGarantiaNoProyectanPendiente(t *testing.T) {
	so := []entity.ServiceOrder{
		{ID: "OS-2025-001", Status: entity.StatusReceived, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 5, 2), LaborCost: money("90")},
		{ID: "OS-2025-002", Status: entity.StatusInRepair, ServiceType: entity.ServiceTypeWarranty,
			EntryDate: date(2025, 5, 3), LaborCost: money("45")},
		{ID: "OS-2025-003", Status: entity.StatusInAnalysis, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 5, 4), LaborCost: money("30")},
	}
	uc := buildUseCase(t, nil, nil, so, nil)

	r, err := uc.Billing(analytics.PeriodAll, "", "")
	require.NoError(t, err)

	require.Len(t, r.Monthly, 1)
	assert.True(t, r.Monthly[0].Pending.Equal(money("30")),
		"solo las fases intermedias del taller proyectan pendiente; Recebido y Garantia no")
	assert.True(t, r.WarrantyCost.Equal(money("45")))
}

func TestBilling_PeriodoCustom(t *testing.T) {
	so := []entity.ServiceOrder{
		{ID: "OS-2025-001", Status: entity.StatusDelivered, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 1, 10), LaborCost: money("100")},
		{ID: "OS-2025-002", Status: entity.StatusDelivered, ServiceType: entity.ServiceTypePaid,
			EntryDate: date(2025, 4, 10), LaborCost: money("55")},
	}
	uc := buildUseCase(t, nil, nil, so, nil)

	r, err := uc.Billing(analytics.PeriodCustom, "2025-04-01", "2025-04-30")
	require.NoError(t, err)

	assert.Equal(t, 1, r.OrdersBilled)
	assert.True(t, r.Revenue.Total.Equal(money("55")))
}

func TestBilling_PeriodoInvalido(t *testing.T) {
	uc := buildUseCase(t, nil, nil, nil, nil)

	_, err := uc.Billing("quincena", "", "")
	assert.Error(t, err)

	_, err = uc.Billing(analytics.PeriodCustom, "01/04/2025", "2025-04-30")
	assert.Error(t, err, "las fechas custom son YYYY-MM-DD")
}

func TestBilling_PromedioCeroSinFacturacion(t *testing.T) {
	uc := buildUseCase(t, nil, nil, nil, nil)

	r, err := uc.Billing(analytics.PeriodToday, "", "")
	require.NoError(t, err)

	assert.Zero(t, r.OrdersBilled)
	assert.True(t, r.AverageTicket.IsZero())
}
