package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// VehicleUseCase casos de uso de vehículos habilitados. Cada vehículo
// administrativo referencia la ficha técnica compartida (gemelo por placa);
// la ficha se crea con el primer registro y se reutiliza en los traslados.
type VehicleUseCase struct {
	vehicles  repository.VehicleRepository
	data      repository.VehicleDataRepository
	companies repository.CompanyRepository
	routes    repository.RouteRepository
	cats      *validate.Catalogs
	now       func() time.Time
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(
	vehicles repository.VehicleRepository,
	data repository.VehicleDataRepository,
	companies repository.CompanyRepository,
	routes repository.RouteRepository,
	cats *validate.Catalogs,
) *VehicleUseCase {
	return &VehicleUseCase{
		vehicles:  vehicles,
		data:      data,
		companies: companies,
		routes:    routes,
		cats:      cats,
		now:       time.Now,
	}
}

// Create habilita un vehículo para una empresa. La placa se normaliza y es
// única entre vehículos activos.
func (uc *VehicleUseCase) Create(ctx context.Context, userID string, in dto.CreateVehicleRequest) (*entity.Vehicle, error) {
	plate, err := peru.NormalizePlaca(in.Plate)
	if err != nil {
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("plate", "FORMAT", err.Error()),
		})
	}
	company, err := uc.companies.GetByRUC(ctx, in.CompanyRUC)
	if err != nil {
		return nil, fmt.Errorf("empresa con RUC %s: %w", in.CompanyRUC, err)
	}

	now := uc.now().UTC()
	td := toTechnicalData(in.TechnicalData)
	v := &entity.Vehicle{
		Base:             entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		Plate:            plate,
		CurrentCompanyID: company.ID,
		Category:         in.Category,
		Brand:            in.Brand,
		Model:            in.Model,
		ManufactureYear:  in.ManufactureYear,
		TechnicalData:    td,
		State:            entity.VehicleActive,
		History:          []entity.HistoryEntry{historyEntry(now, userID, ActionCreated, "", "")},
	}
	if fs := validate.Vehicle(v, uc.cats); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}

	// gemelo técnico: se reutiliza la ficha existente de la placa
	vd, err := uc.data.GetByPlate(ctx, plate)
	switch {
	case err == nil:
		v.VehicleDataID = vd.ID
	case errors.Is(err, domain.ErrNotFound):
		vd = &entity.VehicleData{
			Base:            entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
			Plate:           plate,
			VIN:             td.VIN,
			Brand:           in.Brand,
			Model:           in.Model,
			ManufactureYear: in.ManufactureYear,
			TechnicalData:   td,
		}
		if err := uc.data.Create(ctx, vd); err != nil {
			return nil, fmt.Errorf("crear ficha técnica: %w", err)
		}
		v.VehicleDataID = vd.ID
	default:
		return nil, err
	}

	if err := uc.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	company.VehicleIDs = appendUnique(company.VehicleIDs, v.ID)
	company.Touch(now)
	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("actualizar vehículos de la empresa: %w", err)
	}
	return v, nil
}

func toTechnicalData(in dto.TechnicalDataInput) entity.TechnicalData {
	return entity.TechnicalData{
		Engine:      in.Engine,
		Chassis:     in.Chassis,
		VIN:         in.VIN,
		Axles:       in.Axles,
		Cylinders:   in.Cylinders,
		Wheels:      in.Wheels,
		Seats:       in.Seats,
		NetWeight:   in.NetWeight,
		GrossWeight: in.GrossWeight,
		Dimensions: entity.Dimensions{
			Length: in.Length, Width: in.Width, Height: in.Height,
		},
		Fuel:         in.Fuel,
		Displacement: in.Displacement,
		Power:        in.Power,
	}
}

// GetByID obtiene el vehículo por id.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	return uc.vehicles.GetByID(ctx, id)
}

// GetByPlate obtiene el vehículo activo por placa normalizada.
func (uc *VehicleUseCase) GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	p, err := peru.NormalizePlaca(plate)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return uc.vehicles.GetByPlate(ctx, p)
}

// Update modifica los campos editables del vehículo y propaga los atributos
// estáticos a la ficha técnica compartida.
func (uc *VehicleUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateVehicleRequest) (*entity.Vehicle, error) {
	v, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Category != nil {
		v.Category = *in.Category
	}
	if in.Brand != nil {
		v.Brand = *in.Brand
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.ManufactureYear != nil {
		v.ManufactureYear = *in.ManufactureYear
	}
	if in.TechnicalData != nil {
		v.TechnicalData = toTechnicalData(*in.TechnicalData)
	}
	if fs := validate.Vehicle(v, uc.cats); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	now := uc.now().UTC()
	v.Touch(now)
	v.History = append(v.History, historyEntry(now, userID, ActionUpdated, "", ""))
	if err := uc.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	if v.VehicleDataID != "" {
		if vd, err := uc.data.GetByID(ctx, v.VehicleDataID); err == nil {
			vd.Brand = v.Brand
			vd.Model = v.Model
			vd.ManufactureYear = v.ManufactureYear
			vd.TechnicalData = v.TechnicalData
			vd.VIN = v.TechnicalData.VIN
			vd.Touch(now)
			if err := uc.data.Update(ctx, vd); err != nil {
				return nil, fmt.Errorf("actualizar ficha técnica: %w", err)
			}
		}
	}
	return v, nil
}

// Transfer traslada el vehículo a otra empresa, que debe estar AUTHORIZED.
// Las asignaciones de ruta se limpian porque pertenecen a la empresa de
// origen; ambos índices de empresa se actualizan y el movimiento queda en el
// historial.
func (uc *VehicleUseCase) Transfer(ctx context.Context, id, userID string, in dto.TransferVehicleRequest) (*entity.Vehicle, error) {
	v, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	target, err := uc.companies.GetByRUC(ctx, in.ToCompanyRUC)
	if err != nil {
		return nil, fmt.Errorf("empresa destino con RUC %s: %w", in.ToCompanyRUC, err)
	}
	if target.ID == v.CurrentCompanyID {
		return nil, fmt.Errorf("el vehículo %s ya pertenece a la empresa %s: %w",
			v.Plate, target.RUC, domain.ErrConflict)
	}
	if target.State != entity.CompanyAuthorized {
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("toCompanyRuc", "CROSS_FIELD",
				fmt.Sprintf("la empresa destino %s no está autorizada (%s)", target.RUC, target.State)),
		})
	}

	now := uc.now().UTC()
	fromID := v.CurrentCompanyID
	v.CurrentCompanyID = target.ID
	v.AssignedRouteIDs = nil
	v.Touch(now)
	v.History = append(v.History, historyEntry(now, userID, ActionTransferred,
		fmt.Sprintf("traslado a RUC %s: %s", target.RUC, in.Reason), ""))
	if err := uc.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}

	if origin, err := uc.companies.GetByID(ctx, fromID); err == nil {
		origin.VehicleIDs = removeID(origin.VehicleIDs, v.ID)
		origin.Touch(now)
		if err := uc.companies.Update(ctx, origin); err != nil {
			return nil, fmt.Errorf("actualizar empresa de origen: %w", err)
		}
	}
	target.VehicleIDs = appendUnique(target.VehicleIDs, v.ID)
	target.Touch(now)
	if err := uc.companies.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("actualizar empresa destino: %w", err)
	}
	return v, nil
}

// AssignRoutes asigna rutas al vehículo; todas deben pertenecer a su empresa.
func (uc *VehicleUseCase) AssignRoutes(ctx context.Context, id, userID string, in dto.AssignRoutesRequest) (*entity.Vehicle, error) {
	v, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var fs []domain.Finding
	for i, routeID := range in.RouteIDs {
		r, err := uc.routes.GetByID(ctx, routeID)
		if err != nil {
			return nil, fmt.Errorf("ruta %s: %w", routeID, err)
		}
		if r.Company.ID != v.CurrentCompanyID {
			fs = append(fs, domain.Error(fmt.Sprintf("routeIds[%d]", i), "CROSS_FIELD",
				fmt.Sprintf("la ruta %s pertenece a otra empresa", r.Code)))
		}
	}
	if domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	for _, routeID := range in.RouteIDs {
		v.AssignedRouteIDs = appendUnique(v.AssignedRouteIDs, routeID)
	}
	now := uc.now().UTC()
	v.Touch(now)
	v.History = append(v.History, historyEntry(now, userID, ActionUpdated, "asignación de rutas", ""))
	if err := uc.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ChangeState transiciona el estado administrativo del vehículo.
func (uc *VehicleUseCase) ChangeState(ctx context.Context, id, userID, state, reason string) (*entity.Vehicle, error) {
	switch state {
	case entity.VehicleActive, entity.VehicleInactive,
		entity.VehicleSuspended, entity.VehicleDeregistered:
	default:
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("state", "ENUM", fmt.Sprintf("estado de vehículo %q desconocido", state)),
		})
	}
	v, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.State == state {
		return v, nil
	}
	now := uc.now().UTC()
	v.State = state
	v.Touch(now)
	v.History = append(v.History, historyEntry(now, userID, ActionStateChanged, reason, ""))
	if err := uc.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Deactivate aplica la baja lógica del vehículo y lo quita del índice de su
// empresa.
func (uc *VehicleUseCase) Deactivate(ctx context.Context, id, userID, reason string) error {
	v, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !v.IsActive {
		return nil
	}
	now := uc.now().UTC()
	v.IsActive = false
	v.Touch(now)
	v.History = append(v.History, historyEntry(now, userID, ActionDeactivated, reason, ""))
	if err := uc.vehicles.Update(ctx, v); err != nil {
		return err
	}
	if company, err := uc.companies.GetByID(ctx, v.CurrentCompanyID); err == nil {
		company.VehicleIDs = removeID(company.VehicleIDs, v.ID)
		company.Touch(now)
		return uc.companies.Update(ctx, company)
	}
	return nil
}

// List lista vehículos con filtros y total.
func (uc *VehicleUseCase) List(ctx context.Context, in dto.ListVehiclesRequest) ([]*entity.Vehicle, int64, error) {
	return uc.vehicles.List(ctx, repository.VehicleFilter{
		CompanyID:       in.CompanyID,
		State:           in.State,
		Category:        in.Category,
		PlatePrefix:     in.PlatePrefix,
		IncludeInactive: in.IncludeInactive,
	}, repository.Page{Skip: in.Skip, Limit: in.Limit})
}

// CountBy conteo de vehículos activos por el campo dado.
func (uc *VehicleUseCase) CountBy(ctx context.Context, field string) ([]store.GroupCount, error) {
	return uc.vehicles.CountBy(ctx, field)
}
