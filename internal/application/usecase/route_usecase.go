package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
)

// RouteUseCase casos de uso de rutas autorizadas. Los snapshots embebidos de
// empresa y resolución se refrescan en cada escritura.
type RouteUseCase struct {
	routes      repository.RouteRepository
	resolutions repository.ResolutionRepository
	companies   repository.CompanyRepository
	localities  repository.LocalityRepository
	now         func() time.Time
}

// NewRouteUseCase construye el caso de uso.
func NewRouteUseCase(
	routes repository.RouteRepository,
	resolutions repository.ResolutionRepository,
	companies repository.CompanyRepository,
	localities repository.LocalityRepository,
) *RouteUseCase {
	return &RouteUseCase{
		routes:      routes,
		resolutions: resolutions,
		companies:   companies,
		localities:  localities,
		now:         time.Now,
	}
}

// Create autoriza una ruta bajo una resolución vigente. El código es único
// dentro de la resolución entre rutas activas; origen, destino y escalas
// deben existir en el ubigeo.
func (uc *RouteUseCase) Create(ctx context.Context, userID string, in dto.CreateRouteRequest) (*entity.Route, error) {
	res, err := uc.resolutions.GetByNumber(ctx, in.ResolutionNumber)
	if err != nil {
		return nil, fmt.Errorf("resolución %s: %w", in.ResolutionNumber, err)
	}
	if res.State != entity.ResolutionInForce {
		return nil, fmt.Errorf("la resolución %s no está vigente (%s): %w",
			res.Number, res.State, domain.ErrConflict)
	}
	company, err := uc.companies.GetByID(ctx, res.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("empresa de la resolución %s: %w", res.Number, err)
	}

	origin, err := uc.routePoint(ctx, "originLocalityId", in.OriginLocalityID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.routePoint(ctx, "destinationLocalityId", in.DestinationLocality)
	if err != nil {
		return nil, err
	}
	itinerary := make([]entity.ItineraryStop, 0, len(in.Itinerary))
	for i, s := range in.Itinerary {
		loc, err := uc.localities.GetByID(ctx, s.LocalityID)
		if err != nil {
			return nil, fmt.Errorf("escala %d (%s): %w", i, s.LocalityID, err)
		}
		itinerary = append(itinerary, entity.ItineraryStop{
			LocalityID: loc.ID, Name: loc.Name, Order: s.Order,
		})
	}

	now := uc.now().UTC()
	r := &entity.Route{
		Base:         entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		Code:         in.Code,
		Name:         in.Name,
		ResolutionID: res.ID,
		Origin:       origin,
		Destination:  dest,
		Itinerary:    itinerary,
		Company:      company.Ref(),
		Resolution:   res.Ref(),
		Frequency: entity.Frequency{
			Kind:        in.Frequency.Kind,
			Count:       in.Frequency.Count,
			Days:        in.Frequency.Days,
			Description: in.Frequency.Description,
		},
		Schedules:     toSchedules(in.Schedules),
		RouteKind:     in.RouteKind,
		ServiceKind:   in.ServiceKind,
		DistanceKm:    in.DistanceKm,
		EstimatedTime: in.EstimatedTime,
		Fare:          in.Fare,
		Capacity:      in.Capacity,
		State:         entity.RouteActive,
		History:       []entity.HistoryEntry{historyEntry(now, userID, ActionCreated, "", "")},
	}
	if r.Name == "" {
		r.Name = origin.Name + " - " + dest.Name
	}
	if fs := validate.Route(r); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	if err := uc.routes.Create(ctx, r); err != nil {
		return nil, err
	}

	company.RouteIDs = appendUnique(company.RouteIDs, r.ID)
	company.Touch(now)
	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("actualizar rutas de la empresa: %w", err)
	}
	return r, nil
}

func (uc *RouteUseCase) routePoint(ctx context.Context, field, localityID string) (entity.RoutePoint, error) {
	loc, err := uc.localities.GetByID(ctx, localityID)
	if err != nil {
		return entity.RoutePoint{}, fmt.Errorf("%s %s: %w", field, localityID, err)
	}
	return entity.RoutePoint{LocalityID: loc.ID, Name: loc.Name}, nil
}

func toSchedules(in []dto.ScheduleInput) []entity.Schedule {
	out := make([]entity.Schedule, 0, len(in))
	for _, s := range in {
		out = append(out, entity.Schedule{Departure: s.Departure, Arrival: s.Arrival})
	}
	return out
}

// GetByID obtiene la ruta por id.
func (uc *RouteUseCase) GetByID(ctx context.Context, id string) (*entity.Route, error) {
	return uc.routes.GetByID(ctx, id)
}

// Update modifica los campos editables de la ruta y refresca snapshots.
func (uc *RouteUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateRouteRequest) (*entity.Route, error) {
	r, err := uc.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Frequency != nil {
		r.Frequency = entity.Frequency{
			Kind:        in.Frequency.Kind,
			Count:       in.Frequency.Count,
			Days:        in.Frequency.Days,
			Description: in.Frequency.Description,
		}
	}
	if in.Schedules != nil {
		r.Schedules = toSchedules(in.Schedules)
	}
	if in.DistanceKm != nil {
		r.DistanceKm = *in.DistanceKm
	}
	if in.EstimatedTime != nil {
		r.EstimatedTime = *in.EstimatedTime
	}
	if in.Fare != nil {
		r.Fare = *in.Fare
	}
	if in.Capacity != nil {
		r.Capacity = *in.Capacity
	}
	if fs := validate.Route(r); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	if err := uc.refreshSnapshots(ctx, r); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	r.Touch(now)
	r.History = append(r.History, historyEntry(now, userID, ActionUpdated, "", ""))
	if err := uc.routes.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// refreshSnapshots alinea los snapshots embebidos con las entidades
// referenciadas en este momento.
func (uc *RouteUseCase) refreshSnapshots(ctx context.Context, r *entity.Route) error {
	res, err := uc.resolutions.GetByID(ctx, r.ResolutionID)
	if err != nil {
		return fmt.Errorf("resolución de la ruta %s: %w", r.Code, err)
	}
	company, err := uc.companies.GetByID(ctx, res.CompanyID)
	if err != nil {
		return fmt.Errorf("empresa de la ruta %s: %w", r.Code, err)
	}
	r.Resolution = res.Ref()
	r.Company = company.Ref()
	return nil
}

// ChangeState transiciona el estado de la ruta (ACTIVE, INACTIVE, SUSPENDED).
func (uc *RouteUseCase) ChangeState(ctx context.Context, id, userID, state, reason string) (*entity.Route, error) {
	switch state {
	case entity.RouteActive, entity.RouteInactive, entity.RouteSuspended:
	default:
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("state", "ENUM", fmt.Sprintf("estado de ruta %q desconocido", state)),
		})
	}
	r, err := uc.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.State == state {
		return r, nil
	}
	now := uc.now().UTC()
	r.State = state
	r.Touch(now)
	r.History = append(r.History, historyEntry(now, userID, ActionStateChanged, reason, ""))
	if err := uc.routes.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Deactivate aplica la baja lógica de la ruta y la quita del índice de la
// empresa.
func (uc *RouteUseCase) Deactivate(ctx context.Context, id, userID, reason string) error {
	r, err := uc.routes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !r.IsActive {
		return nil
	}
	now := uc.now().UTC()
	r.IsActive = false
	r.Touch(now)
	r.History = append(r.History, historyEntry(now, userID, ActionDeactivated, reason, ""))
	if err := uc.routes.Update(ctx, r); err != nil {
		return err
	}
	company, err := uc.companies.GetByID(ctx, r.Company.ID)
	if err != nil {
		return nil // el índice lo repara la reconciliación
	}
	company.RouteIDs = removeID(company.RouteIDs, r.ID)
	company.Touch(now)
	return uc.companies.Update(ctx, company)
}

// List lista rutas con filtros y total.
func (uc *RouteUseCase) List(ctx context.Context, in dto.ListRoutesRequest) ([]*entity.Route, int64, error) {
	return uc.routes.List(ctx, repository.RouteFilter{
		CompanyID:       in.CompanyID,
		ResolutionID:    in.ResolutionID,
		State:           in.State,
		ServiceKind:     in.ServiceKind,
		Text:            in.Text,
		IncludeInactive: in.IncludeInactive,
	}, repository.Page{Skip: in.Skip, Limit: in.Limit})
}

// ListByResolution rutas activas de una resolución.
func (uc *RouteUseCase) ListByResolution(ctx context.Context, resolutionID string) ([]*entity.Route, error) {
	return uc.routes.ListByResolution(ctx, resolutionID)
}

// CountBy conteo de rutas activas por el campo dado.
func (uc *RouteUseCase) CountBy(ctx context.Context, field string) ([]store.GroupCount, error) {
	return uc.routes.CountBy(ctx, field)
}
