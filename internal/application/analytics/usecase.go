// Package analytics contiene los casos de uso del panel principal y los
// reportes de facturación del taller. Todas las agregaciones son reducciones
// síncronas sobre el estado en memoria; no tocan la base.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/application/serviceorders"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/orders"
	"github.com/paulinhof/assistencia-api/internal/store"
)

const dashboardRecentOrders = 5 // órdenes recientes en el widget del panel

var cien = decimal.NewFromInt(100)

// Períodos de reporte aceptados.
const (
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodAll    = "all"
	PeriodCustom = "custom"
)

// UseCase genera el panel y los reportes de facturación.
type UseCase struct {
	store    *store.Store
	ordersUC *serviceorders.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(st *store.Store, ordersUC *serviceorders.UseCase) *UseCase {
	return &UseCase{store: st, ordersUC: ordersUC}
}

// Dashboard arma los indicadores del panel principal.
func (uc *UseCase) Dashboard() dto.DashboardResponse {
	parts := uc.store.Parts()
	clients := uc.store.Clients()
	allOrders := uc.store.Orders()

	lowStock := 0
	for _, p := range parts {
		if p.LowStock() {
			lowStock++
		}
	}

	counts := make(map[string]int, len(entity.AllStatuses))
	for _, st := range entity.AllStatuses {
		counts[string(st)] = 0
	}
	active := 0
	pending := 0
	for _, o := range allOrders {
		counts[string(o.Status)]++
		if !o.Delivered() {
			active++
		}
		if orders.PendingQuote(o) {
			pending++
		}
	}

	recent := make([]dto.OrderResponse, 0, dashboardRecentOrders)
	for i, o := range allOrders { // ya vienen ordenadas por fecha de entrada
		if i >= dashboardRecentOrders {
			break
		}
		recent = append(recent, uc.ordersUC.ToResponse(o))
	}

	return dto.DashboardResponse{
		TotalParts:     len(parts),
		LowStockCount:  lowStock,
		TotalClients:   len(clients),
		ActiveRepairs:  active,
		PendingQuotes:  pending,
		CountsByStatus: counts,
		RecentOrders:   recent,
	}
}

// Billing arma el reporte de facturación de un período.
//
// Facturan las órdenes Pronto o Entregue de tipo Pago con fecha de entrada en
// el rango. Las piezas entran netas del descuento porcentual; mano de obra y
// envío completos. El costo de garantía suma piezas + mano de obra de las
// órdenes Garantia del rango (costo absorbido, no facturado).
func (uc *UseCase) Billing(period, from, to string) (*dto.BillingResponse, error) {
	start, end, err := resolveRange(period, from, to, time.Now())
	if err != nil {
		return nil, err
	}

	revenue := dto.RevenueBreakdown{
		Parts:    decimal.Zero,
		Labor:    decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
	}
	warrantyCost := decimal.Zero
	billed := 0
	monthly := map[string]*dto.MonthlyBucket{}

	for _, o := range uc.store.Orders() {
		if o.EntryDate.Before(start) || o.EntryDate.After(end) {
			continue
		}

		month := o.EntryDate.Format("2006-01")
		bucket, ok := monthly[month]
		if !ok {
			bucket = &dto.MonthlyBucket{Month: month, Revenue: decimal.Zero, Pending: decimal.Zero}
			monthly[month] = bucket
		}

		if o.ServiceType == entity.ServiceTypeWarranty {
			warrantyCost = warrantyCost.Add(orders.PartsCost(o)).Add(o.LaborCost)
			continue
		}

		total := orders.Total(o)
		if o.Status == entity.StatusReady || o.Status == entity.StatusDelivered {
			partsNet := orders.PartsSubtotal(o.Items).
				Mul(cien.Sub(orders.ClampDiscount(o.Discount))).Div(cien)
			revenue.Parts = revenue.Parts.Add(partsNet)
			revenue.Labor = revenue.Labor.Add(o.LaborCost)
			revenue.Shipping = revenue.Shipping.Add(o.ShippingCost)
			billed++
			bucket.Revenue = bucket.Revenue.Add(total)
			bucket.Orders++
		} else if enCurso(o.Status) {
			bucket.Pending = bucket.Pending.Add(total)
		}
	}
	revenue.Total = revenue.Parts.Add(revenue.Labor).Add(revenue.Shipping)

	avgTicket := decimal.Zero
	if billed > 0 {
		avgTicket = revenue.Total.Div(decimal.NewFromInt(int64(billed)))
	}

	buckets := make([]dto.MonthlyBucket, 0, len(monthly))
	for _, b := range monthly {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Month < buckets[j].Month })

	return &dto.BillingResponse{
		Period:        period,
		Revenue:       revenue,
		OrdersBilled:  billed,
		AverageTicket: avgTicket,
		WarrantyCost:  warrantyCost,
		Monthly:       buckets,
	}, nil
}

// enCurso indica si la orden está en una fase intermedia del taller; solo
// esas acumulan como pendiente de facturar. Una orden recién recibida todavía
// no tiene presupuesto que proyectar.
func enCurso(status entity.OrderStatus) bool {
	return status == entity.StatusInAnalysis ||
		status == entity.StatusAwaitingApproval ||
		status == entity.StatusInRepair
}

// resolveRange traduce el período a un rango [start, end].
func resolveRange(period, from, to string, now time.Time) (time.Time, time.Time, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	switch period {
	case PeriodToday:
		return dayStart, dayEnd, nil
	case PeriodWeek:
		return dayStart.AddDate(0, 0, -6), dayEnd, nil
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), dayEnd, nil
	case PeriodAll, "":
		return time.Time{}, dayEnd, nil
	case PeriodCustom:
		start, err := time.ParseInLocation("2006-01-02", from, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("fecha desde %q: %w", from, domain.ErrInvalidInput)
		}
		endDay, err := time.ParseInLocation("2006-01-02", to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("fecha hasta %q: %w", to, domain.ErrInvalidInput)
		}
		return start, endDay.Add(24*time.Hour - time.Nanosecond), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("período %q: %w", period, domain.ErrInvalidInput)
	}
}
