package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// RouteFilter filtros del listado de rutas.
type RouteFilter struct {
	CompanyID       string
	ResolutionID    string
	State           string
	ServiceKind     string
	Text            string
	IncludeInactive bool
}

// RouteRepository puerto de persistencia para rutas autorizadas.
type RouteRepository interface {
	Create(ctx context.Context, r *entity.Route) error
	GetByID(ctx context.Context, id string) (*entity.Route, error)
	// GetByCode busca por (resolución, código) entre rutas activas.
	GetByCode(ctx context.Context, resolutionID, code string) (*entity.Route, error)
	GetByCodeAnyState(ctx context.Context, resolutionID, code string) (*entity.Route, error)
	Update(ctx context.Context, r *entity.Route) error
	List(ctx context.Context, f RouteFilter, p Page) ([]*entity.Route, int64, error)
	ListByResolution(ctx context.Context, resolutionID string) ([]*entity.Route, error)
	// ListUsingLocality rutas activas que usan la localidad como origen,
	// destino o escala del itinerario (guarda de eliminación).
	ListUsingLocality(ctx context.Context, localityID string) ([]*entity.Route, error)
	CountBy(ctx context.Context, field string) ([]store.GroupCount, error)
}
