package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/paulinhof/assistencia-api/internal/application/analytics"
	"github.com/paulinhof/assistencia-api/internal/application/auth"
	"github.com/paulinhof/assistencia-api/internal/application/clients"
	"github.com/paulinhof/assistencia-api/internal/application/importer"
	"github.com/paulinhof/assistencia-api/internal/application/inventory"
	"github.com/paulinhof/assistencia-api/internal/application/maintenance"
	"github.com/paulinhof/assistencia-api/internal/application/printing"
	"github.com/paulinhof/assistencia-api/internal/application/quotes"
	"github.com/paulinhof/assistencia-api/internal/application/serviceorders"
	infrapdf "github.com/paulinhof/assistencia-api/internal/infrastructure/pdf"
	"github.com/paulinhof/assistencia-api/internal/infrastructure/postgres"
	"github.com/paulinhof/assistencia-api/internal/infrastructure/viacep"
	httpRouter "github.com/paulinhof/assistencia-api/internal/interfaces/http"
	"github.com/paulinhof/assistencia-api/internal/store"
	"github.com/paulinhof/assistencia-api/pkg/config"
	"github.com/paulinhof/assistencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Sonda de capacidades: decide la clave del upsert de importación según
	// las columnas que existan en la tabla parts.
	caps, err := postgres.DetectCapabilities(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("detección de capacidades del esquema")
	}
	log.Info().
		Bool("manufacturer", caps.HasManufacturer).
		Bool("units_per_package", caps.HasUnitsPerPackage).
		Msg("capacidades del esquema detectadas")

	partRepo := postgres.NewPartRepository(pool, caps)
	legacyRepo := postgres.NewLegacyPartRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	backupRepo := postgres.NewBackupRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Estado en memoria: carga inicial y logging de mutaciones.
	st := store.New(store.Deps{
		PartRepo:   partRepo,
		LegacyRepo: legacyRepo,
		ClientRepo: clientRepo,
		OrderRepo:  orderRepo,
		Tx:         txRunner,
		Logger:     log,
	})
	st.Subscribe(func(e store.Event) {
		log.Debug().Str("collection", string(e.Type)).Msg("estado en memoria actualizado")
	})
	st.RefreshAll()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	inventoryUC := inventory.NewUseCase(st)
	importerUC := importer.NewUseCase(partRepo, st)
	clientsUC := clients.NewUseCase(st)
	ordersUC := serviceorders.NewUseCase(st)
	quotesUC := quotes.NewUseCase(st, ordersUC)
	analyticsUC := analytics.NewUseCase(st, ordersUC)
	backupUC := maintenance.NewUseCase(backupRepo)
	printingUC := printing.NewUseCase(st, infrapdf.NewMarotoPDFGenerator())
	cepClient := viacep.NewClient(cfg.CEP)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El spec lo genera
	// `swag init` fuera del binario; sin el archivo el servicio arranca igual.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Assistência API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		ImporterUC:  importerUC,
		ClientsUC:   clientsUC,
		OrdersUC:    ordersUC,
		QuotesUC:    quotesUC,
		AnalyticsUC: analyticsUC,
		BackupUC:    backupUC,
		PrintingUC:  printingUC,
		CEP:         cepClient,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
