package dto

import "github.com/shopspring/decimal"

// DashboardResponse indicadores del panel principal.
type DashboardResponse struct {
	TotalParts     int             `json:"total_parts"`
	LowStockCount  int             `json:"low_stock_count"`
	TotalClients   int             `json:"total_clients"`
	ActiveRepairs  int             `json:"active_repairs"`
	PendingQuotes  int             `json:"pending_quotes"`
	CountsByStatus map[string]int  `json:"counts_by_status"`
	RecentOrders   []OrderResponse `json:"recent_orders"`
}

// RevenueBreakdown desglose de facturación de un período.
// Las piezas entran netas del descuento porcentual; mano de obra y envío completos.
type RevenueBreakdown struct {
	Parts    decimal.Decimal `json:"parts"`
	Labor    decimal.Decimal `json:"labor"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyBucket facturación agregada de un mes (YYYY-MM).
type MonthlyBucket struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Pending decimal.Decimal `json:"pending"`
	Orders  int             `json:"orders"`
}

// BillingResponse reporte de facturación de un período.
type BillingResponse struct {
	Period        string           `json:"period"`
	Revenue       RevenueBreakdown `json:"revenue"`
	OrdersBilled  int              `json:"orders_billed"`
	AverageTicket decimal.Decimal  `json:"average_ticket"`
	WarrantyCost  decimal.Decimal  `json:"warranty_cost"`
	Monthly       []MonthlyBucket  `json:"monthly"`
}
