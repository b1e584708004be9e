package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// TerminalRepository puerto para terminales y estaciones de ruta.
type TerminalRepository interface {
	Create(ctx context.Context, t *entity.Terminal) error
	GetByID(ctx context.Context, id string) (*entity.Terminal, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Terminal, error)
	Update(ctx context.Context, t *entity.Terminal) error
}

// OficinaRepository puerto para sedes de registro.
type OficinaRepository interface {
	Create(ctx context.Context, o *entity.Oficina) error
	GetByID(ctx context.Context, id string) (*entity.Oficina, error)
	List(ctx context.Context) ([]*entity.Oficina, error)
	Update(ctx context.Context, o *entity.Oficina) error
}

// CatalogRepository puerto para las enumeraciones configurables.
type CatalogRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.Catalog, error)
	Upsert(ctx context.Context, c *entity.Catalog) error
	List(ctx context.Context) ([]*entity.Catalog, error)
}

// UserRepository puerto para funcionarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
