package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/docstore"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/registry"
)

const testUser = "funcionario-1"

// env arma el grafo completo de casos de uso sobre el almacén en memoria.
type env struct {
	ctx context.Context

	companies   *usecase.CompanyUseCase
	resolutions *usecase.ResolutionUseCase
	routes      *usecase.RouteUseCase
	vehicles    *usecase.VehicleUseCase
	drivers     *usecase.DriverUseCase
	localities  *usecase.LocalityUseCase
	expedientes *usecase.ExpedienteUseCase
	reconcile   *usecase.ReconcileUseCase
	stats       *usecase.StatsUseCase

	companyRepo    *registry.CompanyRepo
	resolutionRepo *registry.ResolutionRepo
	routeRepo      *registry.RouteRepo
	vehicleRepo    *registry.VehicleRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := docstore.NewMemory()
	cats := validate.NewCatalogs()

	companyRepo := registry.NewCompanyRepo(st)
	resolutionRepo := registry.NewResolutionRepo(st)
	routeRepo := registry.NewRouteRepo(st)
	vehicleRepo := registry.NewVehicleRepo(st)
	vehicleDataRepo := registry.NewVehicleDataRepo(st)
	driverRepo := registry.NewDriverRepo(st)
	localityRepo := registry.NewLocalityRepo(st)
	expedienteRepo := registry.NewExpedienteRepo(st)
	documentRepo := registry.NewDocumentRepo(st)

	return &env{
		ctx:            context.Background(),
		companies:      usecase.NewCompanyUseCase(companyRepo, cats),
		resolutions:    usecase.NewResolutionUseCase(resolutionRepo, companyRepo),
		routes:         usecase.NewRouteUseCase(routeRepo, resolutionRepo, companyRepo, localityRepo),
		vehicles:       usecase.NewVehicleUseCase(vehicleRepo, vehicleDataRepo, companyRepo, routeRepo, cats),
		drivers:        usecase.NewDriverUseCase(driverRepo, companyRepo),
		localities:     usecase.NewLocalityUseCase(localityRepo, routeRepo),
		expedientes:    usecase.NewExpedienteUseCase(expedienteRepo, companyRepo, documentRepo),
		reconcile:      usecase.NewReconcileUseCase(companyRepo, resolutionRepo, vehicleRepo, routeRepo),
		stats:          usecase.NewStatsUseCase(companyRepo, resolutionRepo, vehicleRepo, routeRepo, driverRepo, expedienteRepo),
		companyRepo:    companyRepo,
		resolutionRepo: resolutionRepo,
		routeRepo:      routeRepo,
		vehicleRepo:    vehicleRepo,
	}
}

// mustCompany registra una empresa de prueba con el RUC dado.
func mustCompany(t *testing.T, e *env, ruc string) *entity.Company {
	t.Helper()
	c, err := e.companies.Create(e.ctx, testUser, dto.CreateCompanyRequest{
		RUC:       ruc,
		LegalName: "Transportes Altiplano S.A.C. " + ruc,
	})
	require.NoError(t, err)
	return c
}

// mustAuthorizedCompany registra una empresa y la pasa a AUTHORIZED.
func mustAuthorizedCompany(t *testing.T, e *env, ruc string) *entity.Company {
	t.Helper()
	c := mustCompany(t, e, ruc)
	c, err := e.companies.ChangeState(e.ctx, c.ID, testUser, dto.ChangeCompanyStateRequest{
		State: entity.CompanyAuthorized,
	})
	require.NoError(t, err)
	return c
}

// mustParent registra una resolución padre vigente de 10 años.
func mustParent(t *testing.T, e *env, number, ruc, start string) *entity.Resolution {
	t.Helper()
	r, warnings, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        number,
		CompanyRUC:    ruc,
		IssueDate:     start,
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureNewAuthorization,
		ValidityStart: start,
		ValidityYears: 10,
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	return r
}

// mustLocality registra una localidad distrital.
func mustLocality(t *testing.T, e *env, ubigeo, name string) *entity.Locality {
	t.Helper()
	l, err := e.localities.Create(e.ctx, dto.CreateLocalityRequest{
		Ubigeo: ubigeo,
		Name:   name,
		Level:  "DISTRICT",
	})
	require.NoError(t, err)
	return l
}

// mustRoute autoriza una ruta simple bajo la resolución dada.
func mustRoute(t *testing.T, e *env, code, resolutionNumber string, origin, dest *entity.Locality) *entity.Route {
	t.Helper()
	r, err := e.routes.Create(e.ctx, testUser, dto.CreateRouteRequest{
		Code:                code,
		ResolutionNumber:    resolutionNumber,
		OriginLocalityID:    origin.ID,
		DestinationLocality: dest.ID,
	})
	require.NoError(t, err)
	return r
}
