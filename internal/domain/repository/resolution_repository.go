package repository

import (
	"context"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// ResolutionFilter filtros del listado de resoluciones.
type ResolutionFilter struct {
	CompanyID       string
	Kind            string
	State           string
	ProcedureKind   string
	NumberPrefix    string
	IssuedFrom      *time.Time
	IssuedTo        *time.Time
	IncludeInactive bool
}

// ResolutionRepository puerto de persistencia para resoluciones.
type ResolutionRepository interface {
	Create(ctx context.Context, r *entity.Resolution) error
	GetByID(ctx context.Context, id string) (*entity.Resolution, error)
	// GetByNumber busca entre resoluciones activas (el número es único ahí).
	GetByNumber(ctx context.Context, number string) (*entity.Resolution, error)
	GetByNumberAnyState(ctx context.Context, number string) (*entity.Resolution, error)
	Update(ctx context.Context, r *entity.Resolution) error
	List(ctx context.Context, f ResolutionFilter, p Page) ([]*entity.Resolution, int64, error)
	// ListByCompany resoluciones activas de la empresa.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Resolution, error)
	// ListChildren hijas activas de la resolución padre.
	ListChildren(ctx context.Context, parentID string) ([]*entity.Resolution, error)
	CountBy(ctx context.Context, field string) ([]store.GroupCount, error)
}
