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

	"github.com/drtc-puno/sirret-api/internal/application/auth"
	"github.com/drtc-puno/sirret-api/internal/application/bulk"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/docstore"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/pdf"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/registry"
	httpRouter "github.com/drtc-puno/sirret-api/internal/interfaces/http"
	"github.com/drtc-puno/sirret-api/pkg/config"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := docstore.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	st, err := docstore.NewPostgres(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización del almacén de documentos")
	}

	companyRepo := registry.NewCompanyRepo(st)
	resolutionRepo := registry.NewResolutionRepo(st)
	routeRepo := registry.NewRouteRepo(st)
	vehicleRepo := registry.NewVehicleRepo(st)
	vehicleDataRepo := registry.NewVehicleDataRepo(st)
	driverRepo := registry.NewDriverRepo(st)
	localityRepo := registry.NewLocalityRepo(st)
	expedienteRepo := registry.NewExpedienteRepo(st)
	documentRepo := registry.NewDocumentRepo(st)
	catalogRepo := registry.NewCatalogRepo(st)
	userRepo := registry.NewUserRepo(st)

	cats := validate.NewCatalogs()
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, cats)
	if err := catalogUC.SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrado de catálogos por defecto")
	}
	if err := catalogUC.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial de catálogos")
	}

	companyUC := usecase.NewCompanyUseCase(companyRepo, cats)
	resolutionUC := usecase.NewResolutionUseCase(resolutionRepo, companyRepo)
	routeUC := usecase.NewRouteUseCase(routeRepo, resolutionRepo, companyRepo, localityRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, vehicleDataRepo, companyRepo, routeRepo, cats)
	driverUC := usecase.NewDriverUseCase(driverRepo, companyRepo)
	localityUC := usecase.NewLocalityUseCase(localityRepo, routeRepo)
	expedienteUC := usecase.NewExpedienteUseCase(expedienteRepo, companyRepo, documentRepo)
	statsUC := usecase.NewStatsUseCase(companyRepo, resolutionRepo, vehicleRepo,
		routeRepo, driverRepo, expedienteRepo)
	reconcileUC := usecase.NewReconcileUseCase(companyRepo, resolutionRepo, vehicleRepo, routeRepo)
	bulkSvc := bulk.NewService(companyRepo, resolutionRepo, routeRepo, vehicleRepo,
		vehicleDataRepo, localityRepo, cats, log)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("alta del administrador inicial")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // las planillas de carga masiva pueden pesar varios MB
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SIRRET API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		ResolutionUC: resolutionUC,
		RouteUC:      routeUC,
		VehicleUC:    vehicleUC,
		DriverUC:     driverUC,
		LocalityUC:   localityUC,
		ExpedienteUC: expedienteUC,
		CatalogUC:    catalogUC,
		StatsUC:      statsUC,
		ReconcileUC:  reconcileUC,
		BulkSvc:      bulkSvc,
		AuthUC:       authUC,
		Constancia:   pdf.NewConstanciaGenerator(cfg.App.Institution),
		JWTSecret:    cfg.JWT.Secret,
		PublicURL:    cfg.App.PublicURL,
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
