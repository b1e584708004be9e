package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// DriverFilter filtros del listado de conductores.
type DriverFilter struct {
	CompanyID       string
	State           string
	Text            string
	IncludeInactive bool
}

// DriverRepository puerto de persistencia para conductores.
type DriverRepository interface {
	Create(ctx context.Context, d *entity.Driver) error
	GetByID(ctx context.Context, id string) (*entity.Driver, error)
	// GetByDNI busca entre conductores activos.
	GetByDNI(ctx context.Context, dni string) (*entity.Driver, error)
	Update(ctx context.Context, d *entity.Driver) error
	List(ctx context.Context, f DriverFilter, p Page) ([]*entity.Driver, int64, error)
}
