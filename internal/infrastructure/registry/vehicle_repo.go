package registry

import (
	"context"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

var (
	_ repository.VehicleRepository     = (*VehicleRepo)(nil)
	_ repository.VehicleDataRepository = (*VehicleDataRepo)(nil)
)

// VehicleRepo repositorio de vehículos habilitados sobre el DocumentStore.
type VehicleRepo struct {
	st store.DocumentStore
}

// NewVehicleRepo construye el repositorio de vehículos.
func NewVehicleRepo(st store.DocumentStore) *VehicleRepo {
	return &VehicleRepo{st: st}
}

// Create inserta un vehículo; la placa debe ser única entre activos.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	if err := ensureUnique(ctx, r.st, store.ColVehiculos,
		store.Query{"plate": v.Plate}, "placa "+v.Plate); err != nil {
		return err
	}
	if err := r.st.Insert(ctx, store.ColVehiculos, v.ID, v); err != nil {
		return fmt.Errorf("crear vehículo: %w", err)
	}
	return nil
}

// GetByID obtiene el vehículo por id.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	return getByID[entity.Vehicle](ctx, r.st, store.ColVehiculos, id)
}

// GetByPlate obtiene el vehículo activo con esa placa normalizada.
func (r *VehicleRepo) GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	return findOne[entity.Vehicle](ctx, r.st, store.ColVehiculos,
		store.Query{"plate": plate, "isActive": true})
}

// GetByPlateAnyState incluye vehículos dados de baja.
func (r *VehicleRepo) GetByPlateAnyState(ctx context.Context, plate string) (*entity.Vehicle, error) {
	return findOne[entity.Vehicle](ctx, r.st, store.ColVehiculos, store.Query{"plate": plate})
}

// Update reemplaza el documento completo del vehículo.
func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	if err := r.st.Replace(ctx, store.ColVehiculos, v.ID, v); err != nil {
		return fmt.Errorf("actualizar vehículo %s: %w", v.ID, err)
	}
	return nil
}

// List lista vehículos con filtros y total.
func (r *VehicleRepo) List(ctx context.Context, f repository.VehicleFilter, p repository.Page) ([]*entity.Vehicle, int64, error) {
	p.Normalize()
	q := store.Query{}
	if !f.IncludeInactive {
		q["isActive"] = true
	}
	if f.CompanyID != "" {
		q["currentCompanyId"] = f.CompanyID
	}
	if f.State != "" {
		q["state"] = f.State
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.PlatePrefix != "" {
		q["plate"] = store.Prefix(f.PlatePrefix)
	}
	total, err := r.st.Count(ctx, store.ColVehiculos, q)
	if err != nil {
		return nil, 0, err
	}
	list, err := findMany[entity.Vehicle](ctx, r.st, store.ColVehiculos, q,
		store.FindOptions{Skip: p.Skip, Limit: p.Limit, Sort: createdDesc})
	return list, total, err
}

// ListByCompany vehículos activos de la empresa.
func (r *VehicleRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Vehicle, error) {
	return findMany[entity.Vehicle](ctx, r.st, store.ColVehiculos,
		store.Query{"currentCompanyId": companyID, "isActive": true},
		store.FindOptions{Sort: createdDesc})
}

// CountBy conteo de vehículos activos agrupado por el campo dado.
func (r *VehicleRepo) CountBy(ctx context.Context, field string) ([]store.GroupCount, error) {
	return r.st.Aggregate(ctx, store.ColVehiculos, store.Pipeline{
		Match:   store.Query{"isActive": true},
		GroupBy: field,
	})
}

// VehicleDataRepo repositorio del gemelo técnico.
type VehicleDataRepo struct {
	st store.DocumentStore
}

// NewVehicleDataRepo construye el repositorio de fichas técnicas.
func NewVehicleDataRepo(st store.DocumentStore) *VehicleDataRepo {
	return &VehicleDataRepo{st: st}
}

// Create inserta una ficha técnica; la placa es única entre fichas activas.
func (r *VehicleDataRepo) Create(ctx context.Context, d *entity.VehicleData) error {
	if err := ensureUnique(ctx, r.st, store.ColVehiculoDatos,
		store.Query{"plate": d.Plate}, "ficha técnica "+d.Plate); err != nil {
		return err
	}
	if err := r.st.Insert(ctx, store.ColVehiculoDatos, d.ID, d); err != nil {
		return fmt.Errorf("crear ficha técnica: %w", err)
	}
	return nil
}

// GetByID obtiene la ficha por id.
func (r *VehicleDataRepo) GetByID(ctx context.Context, id string) (*entity.VehicleData, error) {
	return getByID[entity.VehicleData](ctx, r.st, store.ColVehiculoDatos, id)
}

// GetByPlate obtiene la ficha activa por placa.
func (r *VehicleDataRepo) GetByPlate(ctx context.Context, plate string) (*entity.VehicleData, error) {
	return findOne[entity.VehicleData](ctx, r.st, store.ColVehiculoDatos,
		store.Query{"plate": plate, "isActive": true})
}

// Update reemplaza la ficha completa.
func (r *VehicleDataRepo) Update(ctx context.Context, d *entity.VehicleData) error {
	if err := r.st.Replace(ctx, store.ColVehiculoDatos, d.ID, d); err != nil {
		return fmt.Errorf("actualizar ficha técnica %s: %w", d.ID, err)
	}
	return nil
}
