package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paulinhof/assistencia-api/internal/application/analytics"
	"github.com/paulinhof/assistencia-api/internal/application/auth"
	"github.com/paulinhof/assistencia-api/internal/application/clients"
	"github.com/paulinhof/assistencia-api/internal/application/importer"
	"github.com/paulinhof/assistencia-api/internal/application/inventory"
	"github.com/paulinhof/assistencia-api/internal/application/maintenance"
	"github.com/paulinhof/assistencia-api/internal/application/printing"
	"github.com/paulinhof/assistencia-api/internal/application/quotes"
	"github.com/paulinhof/assistencia-api/internal/application/serviceorders"
	"github.com/paulinhof/assistencia-api/internal/infrastructure/viacep"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *inventory.UseCase
	ImporterUC  *importer.UseCase
	ClientsUC   *clients.UseCase
	OrdersUC    *serviceorders.UseCase
	QuotesUC    *quotes.UseCase
	AnalyticsUC *analytics.UseCase
	BackupUC    *maintenance.UseCase
	PrintingUC  *printing.UseCase
	CEP         viacep.Lookup
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de piezas + importación de planillas
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.InventoryUC, deps.ImporterUC)
	parts.Get("/", partHandler.List)
	parts.Post("/", partHandler.Create)
	parts.Post("/import", partHandler.Import)
	parts.Put("/:id", partHandler.Update)

	// Clientes + consulta de CEP
	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientsUC, deps.CEP)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	protected.Get("/cep/:code", clientHandler.LookupCEP)

	// Órdenes de servicio
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrdersUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Delete("/:id", orderHandler.Delete)

	// Presupuestos sobre órdenes
	quoteHandler := NewQuoteHandler(deps.QuotesUC)
	protected.Get("/quotes", quoteHandler.ListPending)
	orders.Post("/:id/quote/items", quoteHandler.AddItem)
	orders.Put("/:id/quote/items/:itemId", quoteHandler.RepriceItem)
	orders.Delete("/:id/quote/items/:itemId", quoteHandler.RemoveItem)
	orders.Put("/:id/quote/charges", quoteHandler.SetCharges)
	orders.Get("/:id/quote/totals", quoteHandler.Totals)
	orders.Post("/:id/quote/send", quoteHandler.SendForApproval)

	// Documentos imprimibles
	printHandler := NewPrintHandler(deps.PrintingUC)
	orders.Get("/:id/quote.pdf", printHandler.Quote)
	orders.Get("/:id/receipt.pdf", printHandler.Receipt)

	// Panel y reportes
	reportHandler := NewReportHandler(deps.AnalyticsUC)
	protected.Get("/dashboard", reportHandler.Dashboard)
	protected.Get("/reports", reportHandler.Billing)
	protected.Get("/billing", reportHandler.Billing)

	// Respaldos (solo admin)
	backupHandler := NewBackupHandler(deps.BackupUC)
	protected.Get("/backups/:type", RequireRole("admin"), backupHandler.Export)
}
