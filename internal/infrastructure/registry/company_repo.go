package registry

import (
	"context"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo repositorio de empresas sobre el DocumentStore.
type CompanyRepo struct {
	st store.DocumentStore
}

// NewCompanyRepo construye el repositorio de empresas.
func NewCompanyRepo(st store.DocumentStore) *CompanyRepo {
	return &CompanyRepo{st: st}
}

func companySearchText(c *entity.Company) string {
	return peru.Fold(c.LegalName.Canonical + " " + c.LegalName.Short + " " + c.RUC)
}

// Create inserta una empresa nueva; el RUC debe ser único entre activas.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	if err := ensureUnique(ctx, r.st, store.ColEmpresas, store.Query{"ruc": c.RUC}, "RUC "+c.RUC); err != nil {
		return err
	}
	c.SearchText = companySearchText(c)
	if err := r.st.Insert(ctx, store.ColEmpresas, c.ID, c); err != nil {
		return fmt.Errorf("crear empresa: %w", err)
	}
	return nil
}

// GetByID obtiene la empresa por id (activa o no).
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return getByID[entity.Company](ctx, r.st, store.ColEmpresas, id)
}

// GetByRUC obtiene la empresa activa con ese RUC.
func (r *CompanyRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Company, error) {
	return findOne[entity.Company](ctx, r.st, store.ColEmpresas, store.Query{"ruc": ruc, "isActive": true})
}

// GetByRUCAnyState incluye empresas dadas de baja (reactivación en carga).
func (r *CompanyRepo) GetByRUCAnyState(ctx context.Context, ruc string) (*entity.Company, error) {
	return findOne[entity.Company](ctx, r.st, store.ColEmpresas, store.Query{"ruc": ruc})
}

// Update reemplaza el documento completo de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	c.SearchText = companySearchText(c)
	if err := r.st.Replace(ctx, store.ColEmpresas, c.ID, c); err != nil {
		return fmt.Errorf("actualizar empresa %s: %w", c.ID, err)
	}
	return nil
}

// List lista empresas con filtros y total.
func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter, p repository.Page) ([]*entity.Company, int64, error) {
	p.Normalize()
	q := store.Query{}
	if !f.IncludeInactive {
		q["isActive"] = true
	}
	if f.State != "" {
		q["state"] = f.State
	}
	if f.ServiceKind != "" {
		q["serviceKind"] = f.ServiceKind
	}
	if f.RUCPrefix != "" {
		q["ruc"] = store.Prefix(f.RUCPrefix)
	}
	if f.Text != "" {
		q["searchText"] = store.Contains(peru.Fold(f.Text))
	}
	switch {
	case f.CreatedFrom != nil && f.CreatedTo != nil:
		q["createdAt"] = store.Range(*f.CreatedFrom, *f.CreatedTo)
	case f.CreatedFrom != nil:
		q["createdAt"] = store.Gte(*f.CreatedFrom)
	case f.CreatedTo != nil:
		q["createdAt"] = store.Lte(*f.CreatedTo)
	}
	total, err := r.st.Count(ctx, store.ColEmpresas, q)
	if err != nil {
		return nil, 0, err
	}
	list, err := findMany[entity.Company](ctx, r.st, store.ColEmpresas, q,
		store.FindOptions{Skip: p.Skip, Limit: p.Limit, Sort: createdDesc})
	return list, total, err
}

// CountByState conteo de empresas activas agrupado por estado.
func (r *CompanyRepo) CountByState(ctx context.Context) ([]store.GroupCount, error) {
	return r.st.Aggregate(ctx, store.ColEmpresas, store.Pipeline{
		Match:   store.Query{"isActive": true},
		GroupBy: "state",
	})
}
