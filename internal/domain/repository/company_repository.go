package repository

import (
	"context"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// CompanyFilter filtros del listado de empresas.
type CompanyFilter struct {
	State           string
	ServiceKind     string
	RUCPrefix       string
	Text            string // búsqueda libre sobre razón social (plegada)
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	IncludeInactive bool
}

// CompanyRepository puerto de persistencia para empresas.
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByRUC busca entre empresas activas; domain.ErrNotFound si no hay.
	GetByRUC(ctx context.Context, ruc string) (*entity.Company, error)
	// GetByRUCAnyState incluye las dadas de baja (reactivación en carga masiva).
	GetByRUCAnyState(ctx context.Context, ruc string) (*entity.Company, error)
	Update(ctx context.Context, c *entity.Company) error
	List(ctx context.Context, f CompanyFilter, p Page) ([]*entity.Company, int64, error)
	CountByState(ctx context.Context) ([]store.GroupCount, error)
}
