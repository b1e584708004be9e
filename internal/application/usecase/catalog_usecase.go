package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
)

// CatalogUseCase administra las enumeraciones configurables y mantiene el
// snapshot que consultan los validadores. Reload se invoca al arrancar y
// desde la ruta administrativa de recarga.
type CatalogUseCase struct {
	catalogs repository.CatalogRepository
	cats     *validate.Catalogs
	now      func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(catalogs repository.CatalogRepository, cats *validate.Catalogs) *CatalogUseCase {
	return &CatalogUseCase{catalogs: catalogs, cats: cats, now: time.Now}
}

// Reload recarga el snapshot de validación desde el almacén. Las claves sin
// registro conservan los valores por defecto compilados.
func (uc *CatalogUseCase) Reload(ctx context.Context) error {
	list, err := uc.catalogs.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		uc.cats.Replace(c.Key, c.Codes())
	}
	return nil
}

// Upsert crea o reemplaza un catálogo y refresca el snapshot.
func (uc *CatalogUseCase) Upsert(ctx context.Context, key string, values []entity.CatalogValue) (*entity.Catalog, error) {
	if key == "" || len(values) == 0 {
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("key", "REQUIRED", "clave y valores del catálogo son obligatorios"),
		})
	}
	now := uc.now().UTC()
	c := &entity.Catalog{
		Base:   entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		Key:    key,
		Values: values,
	}
	if err := uc.catalogs.Upsert(ctx, c); err != nil {
		return nil, err
	}
	uc.cats.Replace(c.Key, c.Codes())
	return c, nil
}

// Get devuelve el catálogo de la clave.
func (uc *CatalogUseCase) Get(ctx context.Context, key string) (*entity.Catalog, error) {
	return uc.catalogs.GetByKey(ctx, key)
}

// List devuelve todos los catálogos activos.
func (uc *CatalogUseCase) List(ctx context.Context) ([]*entity.Catalog, error) {
	return uc.catalogs.List(ctx)
}

// SeedDefaults persiste los catálogos por defecto que aún no existen, para
// que puedan editarse desde la API.
func (uc *CatalogUseCase) SeedDefaults(ctx context.Context) error {
	defaults := map[string][]string{
		entity.CatalogCompanyStates:     entity.CompanyStates,
		entity.CatalogServiceKinds:      entity.ServiceKinds,
		entity.CatalogVehicleCategories: entity.VehicleCategories,
		entity.CatalogFuelKinds:         entity.FuelKinds,
	}
	now := uc.now().UTC()
	for key, codes := range defaults {
		_, err := uc.catalogs.GetByKey(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		values := make([]entity.CatalogValue, 0, len(codes))
		for _, code := range codes {
			values = append(values, entity.CatalogValue{Code: code, Active: true})
		}
		c := &entity.Catalog{
			Base:   entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
			Key:    key,
			Values: values,
		}
		if err := uc.catalogs.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
