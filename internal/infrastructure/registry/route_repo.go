package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

var _ repository.RouteRepository = (*RouteRepo)(nil)

// RouteRepo repositorio de rutas sobre el DocumentStore.
type RouteRepo struct {
	st store.DocumentStore
}

// NewRouteRepo construye el repositorio de rutas.
func NewRouteRepo(st store.DocumentStore) *RouteRepo {
	return &RouteRepo{st: st}
}

func routeSearchText(r *entity.Route) string {
	return peru.Fold(r.Code + " " + r.Name + " " + r.Origin.Name + " " + r.Destination.Name)
}

// Create inserta una ruta; (resolución, código) debe ser único entre activas.
func (r *RouteRepo) Create(ctx context.Context, rt *entity.Route) error {
	if err := ensureUnique(ctx, r.st, store.ColRutas,
		store.Query{"resolutionId": rt.ResolutionID, "code": rt.Code},
		fmt.Sprintf("ruta %s de la resolución %s", rt.Code, rt.Resolution.Number)); err != nil {
		return err
	}
	rt.SearchText = routeSearchText(rt)
	if err := r.st.Insert(ctx, store.ColRutas, rt.ID, rt); err != nil {
		return fmt.Errorf("crear ruta: %w", err)
	}
	return nil
}

// GetByID obtiene la ruta por id.
func (r *RouteRepo) GetByID(ctx context.Context, id string) (*entity.Route, error) {
	return getByID[entity.Route](ctx, r.st, store.ColRutas, id)
}

// GetByCode obtiene la ruta activa por (resolución, código).
func (r *RouteRepo) GetByCode(ctx context.Context, resolutionID, code string) (*entity.Route, error) {
	return findOne[entity.Route](ctx, r.st, store.ColRutas,
		store.Query{"resolutionId": resolutionID, "code": code, "isActive": true})
}

// GetByCodeAnyState incluye rutas dadas de baja.
func (r *RouteRepo) GetByCodeAnyState(ctx context.Context, resolutionID, code string) (*entity.Route, error) {
	return findOne[entity.Route](ctx, r.st, store.ColRutas,
		store.Query{"resolutionId": resolutionID, "code": code})
}

// Update reemplaza el documento completo de la ruta.
func (r *RouteRepo) Update(ctx context.Context, rt *entity.Route) error {
	rt.SearchText = routeSearchText(rt)
	if err := r.st.Replace(ctx, store.ColRutas, rt.ID, rt); err != nil {
		return fmt.Errorf("actualizar ruta %s: %w", rt.ID, err)
	}
	return nil
}

// List lista rutas con filtros y total.
func (r *RouteRepo) List(ctx context.Context, f repository.RouteFilter, p repository.Page) ([]*entity.Route, int64, error) {
	p.Normalize()
	q := store.Query{}
	if !f.IncludeInactive {
		q["isActive"] = true
	}
	if f.CompanyID != "" {
		q["company.id"] = f.CompanyID
	}
	if f.ResolutionID != "" {
		q["resolutionId"] = f.ResolutionID
	}
	if f.State != "" {
		q["state"] = f.State
	}
	if f.ServiceKind != "" {
		q["serviceKind"] = f.ServiceKind
	}
	if f.Text != "" {
		q["searchText"] = store.Contains(peru.Fold(f.Text))
	}
	total, err := r.st.Count(ctx, store.ColRutas, q)
	if err != nil {
		return nil, 0, err
	}
	list, err := findMany[entity.Route](ctx, r.st, store.ColRutas, q,
		store.FindOptions{Skip: p.Skip, Limit: p.Limit, Sort: createdDesc})
	return list, total, err
}

// ListByResolution rutas activas de una resolución.
func (r *RouteRepo) ListByResolution(ctx context.Context, resolutionID string) ([]*entity.Route, error) {
	return findMany[entity.Route](ctx, r.st, store.ColRutas,
		store.Query{"resolutionId": resolutionID, "isActive": true},
		store.FindOptions{Sort: createdDesc})
}

// ListUsingLocality rutas activas que usan la localidad como origen, destino
// o escala. Tres consultas indexables; el resultado se deduplica por id.
func (r *RouteRepo) ListUsingLocality(ctx context.Context, localityID string) ([]*entity.Route, error) {
	seen := make(map[string]*entity.Route)
	queries := []store.Query{
		{"origin.localityId": localityID, "isActive": true},
		{"destination.localityId": localityID, "isActive": true},
	}
	for _, q := range queries {
		list, err := findMany[entity.Route](ctx, r.st, store.ColRutas, q, store.FindOptions{})
		if err != nil {
			return nil, err
		}
		for _, rt := range list {
			seen[rt.ID] = rt
		}
	}
	// escalas del itinerario: no hay índice por campo anidado en arreglo,
	// se recorren las rutas activas restantes
	all, err := findMany[entity.Route](ctx, r.st, store.ColRutas,
		store.Query{"isActive": true}, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	for _, rt := range all {
		if _, ok := seen[rt.ID]; ok {
			continue
		}
		for _, stop := range rt.Itinerary {
			if stop.LocalityID == localityID {
				seen[rt.ID] = rt
				break
			}
		}
	}
	out := make([]*entity.Route, 0, len(seen))
	for _, rt := range seen {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CountBy conteo de rutas activas agrupado por el campo dado.
func (r *RouteRepo) CountBy(ctx context.Context, field string) ([]store.GroupCount, error) {
	return r.st.Aggregate(ctx, store.ColRutas, store.Pipeline{
		Match:   store.Query{"isActive": true},
		GroupBy: field,
	})
}
