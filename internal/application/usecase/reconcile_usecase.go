package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// ReconcileReport resultado de una pasada de reconciliación.
type ReconcileReport struct {
	CompaniesChecked   int      `json:"companiesChecked"`
	CompaniesRepaired  int      `json:"companiesRepaired"`
	ResolutionsChecked int      `json:"resolutionsChecked"`
	ChildSetsRepaired  int      `json:"childSetsRepaired"`
	RepairedIDs        []string `json:"repairedIds,omitempty"`
}

// ReconcileUseCase recalcula los índices desnormalizados a partir de la
// verdad (las referencias directas del hijo): Company.ResolutionIDs,
// Company.VehicleIDs, Company.RouteIDs y Resolution.ChildIDs. Corre bajo
// demanda desde la ruta administrativa.
type ReconcileUseCase struct {
	companies   repository.CompanyRepository
	resolutions repository.ResolutionRepository
	vehicles    repository.VehicleRepository
	routes      repository.RouteRepository
	now         func() time.Time
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	companies repository.CompanyRepository,
	resolutions repository.ResolutionRepository,
	vehicles repository.VehicleRepository,
	routes repository.RouteRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		companies:   companies,
		resolutions: resolutions,
		vehicles:    vehicles,
		routes:      routes,
		now:         time.Now,
	}
}

// Run recorre empresas y resoluciones padre reparando los índices que
// divergen. Devuelve el reporte con los ids reparados.
func (uc *ReconcileUseCase) Run(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}
	now := uc.now().UTC()

	companies, err := uc.allCompanies(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		report.CompaniesChecked++
		resolutions, err := uc.resolutions.ListByCompany(ctx, c.ID)
		if err != nil {
			return report, err
		}
		vehicles, err := uc.vehicles.ListByCompany(ctx, c.ID)
		if err != nil {
			return report, err
		}
		wantRes := idsOfResolutions(resolutions)
		wantVeh := idsOfVehicles(vehicles)
		wantRoutes, err := uc.routeIDsOfCompany(ctx, resolutions, c.ID)
		if err != nil {
			return report, err
		}
		if sameSet(c.ResolutionIDs, wantRes) &&
			sameSet(c.VehicleIDs, wantVeh) &&
			sameSet(c.RouteIDs, wantRoutes) {
			continue
		}
		c.ResolutionIDs = wantRes
		c.VehicleIDs = wantVeh
		c.RouteIDs = wantRoutes
		c.Touch(now)
		if err := uc.companies.Update(ctx, c); err != nil {
			return report, err
		}
		report.CompaniesRepaired++
		report.RepairedIDs = append(report.RepairedIDs, c.ID)
	}

	parents, err := uc.allParentResolutions(ctx)
	if err != nil {
		return report, err
	}
	for _, p := range parents {
		report.ResolutionsChecked++
		children, err := uc.resolutions.ListChildren(ctx, p.ID)
		if err != nil {
			return report, err
		}
		want := idsOfResolutions(children)
		if sameSet(p.ChildIDs, want) {
			continue
		}
		p.ChildIDs = want
		p.Touch(now)
		if err := uc.resolutions.Update(ctx, p); err != nil {
			return report, err
		}
		report.ChildSetsRepaired++
		report.RepairedIDs = append(report.RepairedIDs, p.ID)
	}
	return report, nil
}

func (uc *ReconcileUseCase) allCompanies(ctx context.Context) ([]*entity.Company, error) {
	var out []*entity.Company
	for skip := 0; ; skip += 100 {
		page, _, err := uc.companies.List(ctx, repository.CompanyFilter{}, repository.Page{Skip: skip, Limit: 100})
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < 100 {
			return out, nil
		}
	}
}

func (uc *ReconcileUseCase) allParentResolutions(ctx context.Context) ([]*entity.Resolution, error) {
	var out []*entity.Resolution
	for skip := 0; ; skip += 100 {
		page, _, err := uc.resolutions.List(ctx,
			repository.ResolutionFilter{Kind: entity.ResolutionParent},
			repository.Page{Skip: skip, Limit: 100})
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < 100 {
			return out, nil
		}
	}
}

// routeIDsOfCompany junta las rutas activas de todas las resoluciones de la
// empresa (la ruta referencia a su resolución, no a la empresa).
func (uc *ReconcileUseCase) routeIDsOfCompany(ctx context.Context, resolutions []*entity.Resolution, companyID string) ([]string, error) {
	var ids []string
	for _, r := range resolutions {
		routes, err := uc.routes.ListByResolution(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, rt := range routes {
			ids = appendUnique(ids, rt.ID)
		}
	}
	return ids, nil
}

func idsOfResolutions(list []*entity.Resolution) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func idsOfVehicles(list []*entity.Vehicle) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, v.ID)
	}
	return out
}

// sameSet compara como conjuntos, sin importar el orden.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
