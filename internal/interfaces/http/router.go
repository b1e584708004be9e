package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/auth"
	"github.com/drtc-puno/sirret-api/internal/application/bulk"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	ResolutionUC *usecase.ResolutionUseCase
	RouteUC      *usecase.RouteUseCase
	VehicleUC    *usecase.VehicleUseCase
	DriverUC     *usecase.DriverUseCase
	LocalityUC   *usecase.LocalityUseCase
	ExpedienteUC *usecase.ExpedienteUseCase
	CatalogUC    *usecase.CatalogUseCase
	StatsUC      *usecase.StatsUseCase
	ReconcileUC  *usecase.ReconcileUseCase
	BulkSvc      *bulk.Service
	AuthUC       *auth.UseCase
	Constancia   *pdf.ConstanciaGenerator
	JWTSecret    string
	PublicURL    string
}

// Router registra las rutas de la API.
//
// Política de roles: consulta puede leer, registrador además escribe sobre el
// padrón, y admin administra usuarios, catálogos y la reconciliación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	writers := RequireRole(entity.RoleAdmin, entity.RoleRegistrador)
	admins := RequireRole(entity.RoleAdmin)

	// Auth: login público, registro solo admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Consulta pública sin token.
	expedienteHandler := NewExpedienteHandler(deps.ExpedienteUC)
	resolutionHandler := NewResolutionHandler(deps.ResolutionUC, deps.CompanyUC)
	public := api.Group("/public")
	public.Get("/tracking/:numero", expedienteHandler.Track)
	public.Get("/resoluciones/:numero", resolutionHandler.PublicVerify)

	// Todo lo demás requiere Bearer Token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", admins, authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)

	bulkHandler := NewBulkHandler(deps.BulkSvc)

	// Empresas
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	empresas := protected.Group("/empresas")
	empresas.Get("/", companyHandler.List)
	empresas.Post("/", writers, companyHandler.Create)
	mountBulk(empresas, writers, bulkHandler, bulk.DatasetEmpresas)
	empresas.Get("/ruc/:ruc", companyHandler.GetByRUC)
	empresas.Get("/:id", companyHandler.GetByID)
	empresas.Put("/:id", writers, companyHandler.Update)
	empresas.Patch("/:id/estado", writers, companyHandler.ChangeState)
	empresas.Post("/:id/reactivar", writers, companyHandler.Reactivate)
	empresas.Delete("/:id", writers, companyHandler.Deactivate)

	// Resoluciones
	routeHandler := NewRouteHandler(deps.RouteUC)
	resoluciones := protected.Group("/resoluciones")
	resoluciones.Get("/", resolutionHandler.List)
	resoluciones.Post("/", writers, resolutionHandler.Create)
	mountBulk(resoluciones, writers, bulkHandler, bulk.DatasetResoluciones)
	resoluciones.Post("/expirar-vencidas", writers, resolutionHandler.ExpireDue)
	resoluciones.Get("/numero/:numero", resolutionHandler.GetByNumber)
	resoluciones.Get("/:id", resolutionHandler.GetByID)
	resoluciones.Put("/:id", writers, resolutionHandler.Update)
	resoluciones.Get("/:id/hijas", resolutionHandler.ListChildren)
	resoluciones.Get("/:id/rutas", routeHandler.ListByResolution)
	resoluciones.Post("/:id/suspender", writers, resolutionHandler.Suspend)
	resoluciones.Post("/:id/reactivar", writers, resolutionHandler.Reinstate)
	resoluciones.Post("/:id/anular", writers, resolutionHandler.Annul)
	resoluciones.Post("/:id/expirar", writers, resolutionHandler.Expire)

	// Rutas autorizadas
	rutas := protected.Group("/rutas")
	rutas.Get("/", routeHandler.List)
	rutas.Post("/", writers, routeHandler.Create)
	mountBulk(rutas, writers, bulkHandler, bulk.DatasetRutas)
	rutas.Get("/:id", routeHandler.GetByID)
	rutas.Put("/:id", writers, routeHandler.Update)
	rutas.Patch("/:id/estado", writers, routeHandler.ChangeState)
	rutas.Delete("/:id", writers, routeHandler.Deactivate)

	// Flota
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehiculos := protected.Group("/vehiculos")
	vehiculos.Get("/", vehicleHandler.List)
	vehiculos.Post("/", writers, vehicleHandler.Create)
	mountBulk(vehiculos, writers, bulkHandler, bulk.DatasetVehiculos)
	vehiculos.Get("/placa/:placa", vehicleHandler.GetByPlate)
	vehiculos.Get("/:id", vehicleHandler.GetByID)
	vehiculos.Put("/:id", writers, vehicleHandler.Update)
	vehiculos.Post("/:id/transferir", writers, vehicleHandler.Transfer)
	vehiculos.Put("/:id/rutas", writers, vehicleHandler.AssignRoutes)
	vehiculos.Patch("/:id/estado", writers, vehicleHandler.ChangeState)
	vehiculos.Delete("/:id", writers, vehicleHandler.Deactivate)

	// Conductores
	driverHandler := NewDriverHandler(deps.DriverUC)
	conductores := protected.Group("/conductores")
	conductores.Get("/", driverHandler.List)
	conductores.Post("/", writers, driverHandler.Create)
	conductores.Get("/dni/:dni", driverHandler.GetByDNI)
	conductores.Get("/:id", driverHandler.GetByID)
	conductores.Put("/:id", writers, driverHandler.Update)
	conductores.Patch("/:id/estado", writers, driverHandler.ChangeState)
	conductores.Delete("/:id", writers, driverHandler.Deactivate)

	// Localidades
	localityHandler := NewLocalityHandler(deps.LocalityUC)
	localidades := protected.Group("/localidades")
	localidades.Get("/", localityHandler.List)
	localidades.Post("/", writers, localityHandler.Create)
	localidades.Get("/ubigeo/:ubigeo", localityHandler.GetByUbigeo)
	localidades.Get("/:id", localityHandler.GetByID)
	localidades.Put("/:id", writers, localityHandler.Update)
	localidades.Post("/:id/desactivar", writers, localityHandler.Deactivate)
	localidades.Delete("/:id", admins, localityHandler.Delete)

	// Expedientes
	expedientes := protected.Group("/expedientes")
	expedientes.Get("/", expedienteHandler.List)
	expedientes.Post("/", writers, expedienteHandler.Create)
	expedientes.Get("/:id", expedienteHandler.GetByID)
	expedientes.Post("/:id/derivar", writers, expedienteHandler.Derive)
	expedientes.Patch("/:id/estado", writers, expedienteHandler.ChangeState)
	expedientes.Get("/:id/documentos", expedienteHandler.ListDocuments)
	expedientes.Post("/:id/documentos", writers, expedienteHandler.AttachDocument)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogos := protected.Group("/catalogos")
	catalogos.Get("/", catalogHandler.List)
	catalogos.Post("/reload", admins, catalogHandler.Reload)
	catalogos.Get("/:key", catalogHandler.Get)
	catalogos.Put("/:key", admins, catalogHandler.Upsert)

	// Reportes
	reportHandler := NewReportHandler(deps.StatsUC, deps.ReconcileUC,
		deps.CompanyUC, deps.ResolutionUC, deps.RouteUC, deps.VehicleUC,
		deps.Constancia, deps.PublicURL)
	reportes := protected.Group("/reportes")
	reportes.Get("/dashboard", reportHandler.Dashboard)
	reportes.Get("/empresas/:ruc", reportHandler.CompanySummary)
	reportes.Get("/constancia/:numero", reportHandler.Constancia)
	reportes.Post("/reconciliar", admins, reportHandler.Reconcile)
}

// mountBulk registra las rutas de carga masiva de una colección con su
// dataset fijado. Van antes que las rutas /:id del grupo.
func mountBulk(g fiber.Router, writers fiber.Handler, h *BulkHandler, dataset string) {
	g.Get("/bulk/plantilla", h.Template(dataset))
	g.Post("/bulk/validate", writers, h.Validate(dataset))
	g.Post("/bulk/apply", writers, h.Apply(dataset))
}
