package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// VehicleFilter filtros del listado de vehículos.
type VehicleFilter struct {
	CompanyID       string
	State           string
	Category        string
	PlatePrefix     string
	IncludeInactive bool
}

// VehicleRepository puerto de persistencia para vehículos habilitados.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	// GetByPlate busca entre vehículos activos (placa normalizada).
	GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	GetByPlateAnyState(ctx context.Context, plate string) (*entity.Vehicle, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	List(ctx context.Context, f VehicleFilter, p Page) ([]*entity.Vehicle, int64, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Vehicle, error)
	CountBy(ctx context.Context, field string) ([]store.GroupCount, error)
}

// VehicleDataRepository puerto para el gemelo técnico (ficha por placa/VIN).
type VehicleDataRepository interface {
	Create(ctx context.Context, d *entity.VehicleData) error
	GetByID(ctx context.Context, id string) (*entity.VehicleData, error)
	GetByPlate(ctx context.Context, plate string) (*entity.VehicleData, error)
	Update(ctx context.Context, d *entity.VehicleData) error
}
