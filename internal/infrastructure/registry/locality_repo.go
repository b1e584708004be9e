package registry

import (
	"context"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

var _ repository.LocalityRepository = (*LocalityRepo)(nil)

// LocalityRepo repositorio de localidades (ubigeo) sobre el DocumentStore.
type LocalityRepo struct {
	st store.DocumentStore
}

// NewLocalityRepo construye el repositorio de localidades.
func NewLocalityRepo(st store.DocumentStore) *LocalityRepo {
	return &LocalityRepo{st: st}
}

// Create inserta una localidad; el ubigeo es único entre activas.
func (r *LocalityRepo) Create(ctx context.Context, l *entity.Locality) error {
	if err := ensureUnique(ctx, r.st, store.ColLocalidades,
		store.Query{"ubigeo": l.Ubigeo}, "ubigeo "+l.Ubigeo); err != nil {
		return err
	}
	l.SearchText = peru.Fold(l.Name + " " + l.ProvinceName + " " + l.DepartmentName)
	if err := r.st.Insert(ctx, store.ColLocalidades, l.ID, l); err != nil {
		return fmt.Errorf("crear localidad: %w", err)
	}
	return nil
}

// GetByID obtiene la localidad por id.
func (r *LocalityRepo) GetByID(ctx context.Context, id string) (*entity.Locality, error) {
	return getByID[entity.Locality](ctx, r.st, store.ColLocalidades, id)
}

// GetByUbigeo obtiene la localidad activa con ese código.
func (r *LocalityRepo) GetByUbigeo(ctx context.Context, ubigeo string) (*entity.Locality, error) {
	return findOne[entity.Locality](ctx, r.st, store.ColLocalidades,
		store.Query{"ubigeo": ubigeo, "isActive": true})
}

// Update reemplaza el documento completo de la localidad.
func (r *LocalityRepo) Update(ctx context.Context, l *entity.Locality) error {
	l.SearchText = peru.Fold(l.Name + " " + l.ProvinceName + " " + l.DepartmentName)
	if err := r.st.Replace(ctx, store.ColLocalidades, l.ID, l); err != nil {
		return fmt.Errorf("actualizar localidad %s: %w", l.ID, err)
	}
	return nil
}

// List lista localidades con filtros y total.
func (r *LocalityRepo) List(ctx context.Context, f repository.LocalityFilter, p repository.Page) ([]*entity.Locality, int64, error) {
	p.Normalize()
	q := store.Query{}
	if !f.IncludeInactive {
		q["isActive"] = true
	}
	if f.Level != "" {
		q["level"] = f.Level
	}
	if f.UbigeoPrefix != "" {
		q["ubigeo"] = store.Prefix(f.UbigeoPrefix)
	}
	if f.Text != "" {
		q["searchText"] = store.Contains(peru.Fold(f.Text))
	}
	total, err := r.st.Count(ctx, store.ColLocalidades, q)
	if err != nil {
		return nil, 0, err
	}
	list, err := findMany[entity.Locality](ctx, r.st, store.ColLocalidades, q,
		store.FindOptions{Skip: p.Skip, Limit: p.Limit, Sort: createdDesc})
	return list, total, err
}

// HardDelete elimina físicamente la localidad. Requiere que el backend
// exponga la capacidad opcional de borrado; la guarda de rutas en uso la
// aplica el caso de uso antes de llamar aquí.
func (r *LocalityRepo) HardDelete(ctx context.Context, id string) error {
	del, ok := r.st.(store.Deleter)
	if !ok {
		return fmt.Errorf("el backend no soporta eliminación física: %w", domain.ErrConflict)
	}
	return del.Delete(ctx, store.ColLocalidades, id)
}
