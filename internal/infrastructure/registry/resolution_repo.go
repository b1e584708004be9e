package registry

import (
	"context"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

var _ repository.ResolutionRepository = (*ResolutionRepo)(nil)

// ResolutionRepo repositorio de resoluciones sobre el DocumentStore.
type ResolutionRepo struct {
	st store.DocumentStore
}

// NewResolutionRepo construye el repositorio de resoluciones.
func NewResolutionRepo(st store.DocumentStore) *ResolutionRepo {
	return &ResolutionRepo{st: st}
}

// Create inserta una resolución; el número debe ser único entre activas.
func (r *ResolutionRepo) Create(ctx context.Context, res *entity.Resolution) error {
	if err := ensureUnique(ctx, r.st, store.ColResoluciones,
		store.Query{"number": res.Number}, "resolución "+res.Number); err != nil {
		return err
	}
	res.SearchText = peru.Fold(res.Number + " " + res.Description)
	if err := r.st.Insert(ctx, store.ColResoluciones, res.ID, res); err != nil {
		return fmt.Errorf("crear resolución: %w", err)
	}
	return nil
}

// GetByID obtiene la resolución por id.
func (r *ResolutionRepo) GetByID(ctx context.Context, id string) (*entity.Resolution, error) {
	return getByID[entity.Resolution](ctx, r.st, store.ColResoluciones, id)
}

// GetByNumber obtiene la resolución activa con ese número.
func (r *ResolutionRepo) GetByNumber(ctx context.Context, number string) (*entity.Resolution, error) {
	return findOne[entity.Resolution](ctx, r.st, store.ColResoluciones,
		store.Query{"number": number, "isActive": true})
}

// GetByNumberAnyState incluye resoluciones dadas de baja.
func (r *ResolutionRepo) GetByNumberAnyState(ctx context.Context, number string) (*entity.Resolution, error) {
	return findOne[entity.Resolution](ctx, r.st, store.ColResoluciones, store.Query{"number": number})
}

// Update reemplaza el documento completo de la resolución.
func (r *ResolutionRepo) Update(ctx context.Context, res *entity.Resolution) error {
	res.SearchText = peru.Fold(res.Number + " " + res.Description)
	if err := r.st.Replace(ctx, store.ColResoluciones, res.ID, res); err != nil {
		return fmt.Errorf("actualizar resolución %s: %w", res.ID, err)
	}
	return nil
}

// List lista resoluciones con filtros y total.
func (r *ResolutionRepo) List(ctx context.Context, f repository.ResolutionFilter, p repository.Page) ([]*entity.Resolution, int64, error) {
	p.Normalize()
	q := store.Query{}
	if !f.IncludeInactive {
		q["isActive"] = true
	}
	if f.CompanyID != "" {
		q["companyId"] = f.CompanyID
	}
	if f.Kind != "" {
		q["kind"] = f.Kind
	}
	if f.State != "" {
		q["state"] = f.State
	}
	if f.ProcedureKind != "" {
		q["procedureKind"] = f.ProcedureKind
	}
	if f.NumberPrefix != "" {
		q["number"] = store.Prefix(f.NumberPrefix)
	}
	switch {
	case f.IssuedFrom != nil && f.IssuedTo != nil:
		q["issueDate"] = store.Range(*f.IssuedFrom, *f.IssuedTo)
	case f.IssuedFrom != nil:
		q["issueDate"] = store.Gte(*f.IssuedFrom)
	case f.IssuedTo != nil:
		q["issueDate"] = store.Lte(*f.IssuedTo)
	}
	total, err := r.st.Count(ctx, store.ColResoluciones, q)
	if err != nil {
		return nil, 0, err
	}
	list, err := findMany[entity.Resolution](ctx, r.st, store.ColResoluciones, q,
		store.FindOptions{Skip: p.Skip, Limit: p.Limit, Sort: createdDesc})
	return list, total, err
}

// ListByCompany resoluciones activas de la empresa.
func (r *ResolutionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Resolution, error) {
	return findMany[entity.Resolution](ctx, r.st, store.ColResoluciones,
		store.Query{"companyId": companyID, "isActive": true},
		store.FindOptions{Sort: createdDesc})
}

// ListChildren hijas activas de una resolución padre.
func (r *ResolutionRepo) ListChildren(ctx context.Context, parentID string) ([]*entity.Resolution, error) {
	return findMany[entity.Resolution](ctx, r.st, store.ColResoluciones,
		store.Query{"parentId": parentID, "isActive": true},
		store.FindOptions{Sort: createdDesc})
}

// CountBy conteo de resoluciones activas agrupado por el campo dado.
func (r *ResolutionRepo) CountBy(ctx context.Context, field string) ([]store.GroupCount, error) {
	return r.st.Aggregate(ctx, store.ColResoluciones, store.Pipeline{
		Match:   store.Query{"isActive": true},
		GroupBy: field,
	})
}
