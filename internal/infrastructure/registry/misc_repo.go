package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

var (
	_ repository.TerminalRepository = (*TerminalRepo)(nil)
	_ repository.OficinaRepository  = (*OficinaRepo)(nil)
	_ repository.CatalogRepository  = (*CatalogRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// TerminalRepo repositorio de terminales y estaciones de ruta.
type TerminalRepo struct {
	st store.DocumentStore
}

// NewTerminalRepo construye el repositorio de terminales.
func NewTerminalRepo(st store.DocumentStore) *TerminalRepo {
	return &TerminalRepo{st: st}
}

// Create inserta un terminal.
func (r *TerminalRepo) Create(ctx context.Context, t *entity.Terminal) error {
	if err := r.st.Insert(ctx, store.ColTerminales, t.ID, t); err != nil {
		return fmt.Errorf("crear terminal: %w", err)
	}
	return nil
}

// GetByID obtiene el terminal por id.
func (r *TerminalRepo) GetByID(ctx context.Context, id string) (*entity.Terminal, error) {
	return getByID[entity.Terminal](ctx, r.st, store.ColTerminales, id)
}

// ListByCompany terminales activos de la empresa.
func (r *TerminalRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Terminal, error) {
	return findMany[entity.Terminal](ctx, r.st, store.ColTerminales,
		store.Query{"companyId": companyID, "isActive": true},
		store.FindOptions{Sort: createdDesc})
}

// Update reemplaza el terminal completo.
func (r *TerminalRepo) Update(ctx context.Context, t *entity.Terminal) error {
	if err := r.st.Replace(ctx, store.ColTerminales, t.ID, t); err != nil {
		return fmt.Errorf("actualizar terminal %s: %w", t.ID, err)
	}
	return nil
}

// OficinaRepo repositorio de sedes de registro.
type OficinaRepo struct {
	st store.DocumentStore
}

// NewOficinaRepo construye el repositorio de sedes.
func NewOficinaRepo(st store.DocumentStore) *OficinaRepo {
	return &OficinaRepo{st: st}
}

// Create inserta una sede.
func (r *OficinaRepo) Create(ctx context.Context, o *entity.Oficina) error {
	if err := r.st.Insert(ctx, store.ColOficinas, o.ID, o); err != nil {
		return fmt.Errorf("crear oficina: %w", err)
	}
	return nil
}

// GetByID obtiene la sede por id.
func (r *OficinaRepo) GetByID(ctx context.Context, id string) (*entity.Oficina, error) {
	return getByID[entity.Oficina](ctx, r.st, store.ColOficinas, id)
}

// List sedes activas.
func (r *OficinaRepo) List(ctx context.Context) ([]*entity.Oficina, error) {
	return findMany[entity.Oficina](ctx, r.st, store.ColOficinas,
		store.Query{"isActive": true}, store.FindOptions{Sort: createdDesc})
}

// Update reemplaza la sede completa.
func (r *OficinaRepo) Update(ctx context.Context, o *entity.Oficina) error {
	if err := r.st.Replace(ctx, store.ColOficinas, o.ID, o); err != nil {
		return fmt.Errorf("actualizar oficina %s: %w", o.ID, err)
	}
	return nil
}

// CatalogRepo repositorio de enumeraciones configurables.
type CatalogRepo struct {
	st store.DocumentStore
}

// NewCatalogRepo construye el repositorio de catálogos.
func NewCatalogRepo(st store.DocumentStore) *CatalogRepo {
	return &CatalogRepo{st: st}
}

// GetByKey obtiene el catálogo por clave (COMPANY_STATES, SERVICE_KINDS...).
func (r *CatalogRepo) GetByKey(ctx context.Context, key string) (*entity.Catalog, error) {
	return findOne[entity.Catalog](ctx, r.st, store.ColCatalogos,
		store.Query{"key": key, "isActive": true})
}

// Upsert crea o reemplaza el catálogo de la clave.
func (r *CatalogRepo) Upsert(ctx context.Context, c *entity.Catalog) error {
	existing, err := notFoundAsNil(r.GetByKey(ctx, c.Key))
	if err != nil {
		return err
	}
	if existing != nil {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		return r.st.Replace(ctx, store.ColCatalogos, c.ID, c)
	}
	return r.st.Insert(ctx, store.ColCatalogos, c.ID, c)
}

// List catálogos activos.
func (r *CatalogRepo) List(ctx context.Context) ([]*entity.Catalog, error) {
	return findMany[entity.Catalog](ctx, r.st, store.ColCatalogos,
		store.Query{"isActive": true}, store.FindOptions{Sort: []store.Sort{{Field: "key"}}})
}

// UserRepo repositorio de funcionarios.
type UserRepo struct {
	st store.DocumentStore
}

// NewUserRepo construye el repositorio de funcionarios.
func NewUserRepo(st store.DocumentStore) *UserRepo {
	return &UserRepo{st: st}
}

// Create inserta un funcionario; el email es único entre activos.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if err := ensureUnique(ctx, r.st, store.ColUsuarios,
		store.Query{"email": u.Email}, "email "+u.Email); err != nil {
		return err
	}
	if err := r.st.Insert(ctx, store.ColUsuarios, u.ID, u); err != nil {
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// GetByID obtiene el funcionario por id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getByID[entity.User](ctx, r.st, store.ColUsuarios, id)
}

// GetByEmail obtiene el funcionario activo con ese email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := findOne[entity.User](ctx, r.st, store.ColUsuarios,
		store.Query{"email": email, "isActive": true})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

// Update reemplaza el funcionario completo.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	if err := r.st.Replace(ctx, store.ColUsuarios, u.ID, u); err != nil {
		return fmt.Errorf("actualizar usuario %s: %w", u.ID, err)
	}
	return nil
}
