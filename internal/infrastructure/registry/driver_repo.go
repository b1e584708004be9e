package registry

import (
	"context"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo repositorio de conductores sobre el DocumentStore.
type DriverRepo struct {
	st store.DocumentStore
}

// NewDriverRepo construye el repositorio de conductores.
func NewDriverRepo(st store.DocumentStore) *DriverRepo {
	return &DriverRepo{st: st}
}

func driverSearchText(d *entity.Driver) string {
	return peru.Fold(d.Surnames + " " + d.GivenNames + " " + d.DNI)
}

// Create inserta un conductor; el DNI debe ser único entre activos.
func (r *DriverRepo) Create(ctx context.Context, d *entity.Driver) error {
	if err := ensureUnique(ctx, r.st, store.ColConductores,
		store.Query{"dni": d.DNI}, "DNI "+d.DNI); err != nil {
		return err
	}
	d.SearchText = driverSearchText(d)
	if err := r.st.Insert(ctx, store.ColConductores, d.ID, d); err != nil {
		return fmt.Errorf("crear conductor: %w", err)
	}
	return nil
}

// GetByID obtiene el conductor por id.
func (r *DriverRepo) GetByID(ctx context.Context, id string) (*entity.Driver, error) {
	return getByID[entity.Driver](ctx, r.st, store.ColConductores, id)
}

// GetByDNI obtiene el conductor activo con ese DNI.
func (r *DriverRepo) GetByDNI(ctx context.Context, dni string) (*entity.Driver, error) {
	return findOne[entity.Driver](ctx, r.st, store.ColConductores,
		store.Query{"dni": dni, "isActive": true})
}

// Update reemplaza el documento completo del conductor.
func (r *DriverRepo) Update(ctx context.Context, d *entity.Driver) error {
	d.SearchText = driverSearchText(d)
	if err := r.st.Replace(ctx, store.ColConductores, d.ID, d); err != nil {
		return fmt.Errorf("actualizar conductor %s: %w", d.ID, err)
	}
	return nil
}

// List lista conductores con filtros y total.
func (r *DriverRepo) List(ctx context.Context, f repository.DriverFilter, p repository.Page) ([]*entity.Driver, int64, error) {
	p.Normalize()
	q := store.Query{}
	if !f.IncludeInactive {
		q["isActive"] = true
	}
	if f.CompanyID != "" {
		q["companyId"] = f.CompanyID
	}
	if f.State != "" {
		q["state"] = f.State
	}
	if f.Text != "" {
		q["searchText"] = store.Contains(peru.Fold(f.Text))
	}
	total, err := r.st.Count(ctx, store.ColConductores, q)
	if err != nil {
		return nil, 0, err
	}
	list, err := findMany[entity.Driver](ctx, r.st, store.ColConductores, q,
		store.FindOptions{Skip: p.Skip, Limit: p.Limit, Sort: createdDesc})
	return list, total, err
}
