package usecase

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// DashboardStats conteos agrupados para el tablero institucional.
type DashboardStats struct {
	CompaniesByState   []store.GroupCount `json:"companiesByState"`
	ResolutionsByState []store.GroupCount `json:"resolutionsByState"`
	ResolutionsByKind  []store.GroupCount `json:"resolutionsByKind"`
	VehiclesByCategory []store.GroupCount `json:"vehiclesByCategory"`
	ExpedientesByState []store.GroupCount `json:"expedientesByState"`
	RoutesByState      []store.GroupCount `json:"routesByState"`
}

// CompanySummary vista consolidada de una empresa para reportes: flota y
// rutas se cuentan sobre los registros vivos, no sobre los índices.
type CompanySummary struct {
	Company          *entity.Company `json:"company"`
	TotalResolutions int             `json:"totalResolutions"`
	InForce          int             `json:"inForceResolutions"`
	TotalVehicles    int             `json:"totalVehicles"`
	TotalRoutes      int             `json:"totalRoutes"`
	TotalDrivers     int             `json:"totalDrivers"`
}

// StatsUseCase reportes y conteos del registro.
type StatsUseCase struct {
	companies   repository.CompanyRepository
	resolutions repository.ResolutionRepository
	vehicles    repository.VehicleRepository
	routes      repository.RouteRepository
	drivers     repository.DriverRepository
	expedientes repository.ExpedienteRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(
	companies repository.CompanyRepository,
	resolutions repository.ResolutionRepository,
	vehicles repository.VehicleRepository,
	routes repository.RouteRepository,
	drivers repository.DriverRepository,
	expedientes repository.ExpedienteRepository,
) *StatsUseCase {
	return &StatsUseCase{
		companies:   companies,
		resolutions: resolutions,
		vehicles:    vehicles,
		routes:      routes,
		drivers:     drivers,
		expedientes: expedientes,
	}
}

// Dashboard arma los conteos agrupados del tablero.
func (uc *StatsUseCase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	out := &DashboardStats{}
	var err error
	if out.CompaniesByState, err = uc.companies.CountByState(ctx); err != nil {
		return nil, err
	}
	if out.ResolutionsByState, err = uc.resolutions.CountBy(ctx, "state"); err != nil {
		return nil, err
	}
	if out.ResolutionsByKind, err = uc.resolutions.CountBy(ctx, "kind"); err != nil {
		return nil, err
	}
	if out.VehiclesByCategory, err = uc.vehicles.CountBy(ctx, "category"); err != nil {
		return nil, err
	}
	if out.ExpedientesByState, err = uc.expedientes.CountByState(ctx); err != nil {
		return nil, err
	}
	if out.RoutesByState, err = uc.routes.CountBy(ctx, "state"); err != nil {
		return nil, err
	}
	return out, nil
}

// CompanySummary consolida resoluciones, flota, rutas y conductores de una
// empresa identificada por RUC.
func (uc *StatsUseCase) CompanySummary(ctx context.Context, ruc string) (*CompanySummary, error) {
	c, err := uc.companies.GetByRUC(ctx, ruc)
	if err != nil {
		return nil, err
	}
	resolutions, err := uc.resolutions.ListByCompany(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	vehicles, err := uc.vehicles.ListByCompany(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	_, totalDrivers, err := uc.drivers.List(ctx,
		repository.DriverFilter{CompanyID: c.ID}, repository.Page{Limit: 1})
	if err != nil {
		return nil, err
	}

	summary := &CompanySummary{
		Company:          c,
		TotalResolutions: len(resolutions),
		TotalVehicles:    len(vehicles),
		TotalDrivers:     int(totalDrivers),
	}
	for _, r := range resolutions {
		if r.State == entity.ResolutionInForce {
			summary.InForce++
		}
		routes, err := uc.routes.ListByResolution(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		summary.TotalRoutes += len(routes)
	}
	return summary, nil
}
