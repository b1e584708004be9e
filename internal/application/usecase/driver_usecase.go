package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
)

// DriverUseCase casos de uso de conductores habilitados.
type DriverUseCase struct {
	drivers   repository.DriverRepository
	companies repository.CompanyRepository
	now       func() time.Time
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(drivers repository.DriverRepository, companies repository.CompanyRepository) *DriverUseCase {
	return &DriverUseCase{drivers: drivers, companies: companies, now: time.Now}
}

// Create habilita un conductor; el DNI es único entre activos.
func (uc *DriverUseCase) Create(ctx context.Context, userID string, in dto.CreateDriverRequest) (*entity.Driver, error) {
	var fs []domain.Finding
	birth, f := parseOptionalFecha("birthDate", in.BirthDate)
	fs = append(fs, f...)
	expiry, f := parseOptionalFecha("licenseExpiry", in.LicenseExpiry)
	fs = append(fs, f...)
	if domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}

	var companyID string
	if in.CompanyRUC != "" {
		company, err := uc.companies.GetByRUC(ctx, in.CompanyRUC)
		if err != nil {
			return nil, fmt.Errorf("empresa con RUC %s: %w", in.CompanyRUC, err)
		}
		companyID = company.ID
	}

	now := uc.now().UTC()
	d := &entity.Driver{
		Base:            entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		DNI:             in.DNI,
		GivenNames:      in.GivenNames,
		Surnames:        in.Surnames,
		BirthDate:       birth,
		LicenseNumber:   in.LicenseNumber,
		LicenseCategory: in.LicenseCategory,
		LicenseExpiry:   expiry,
		CompanyID:       companyID,
		Phone:           in.Phone,
		Email:           in.Email,
		State:           entity.DriverActive,
		History:         []entity.HistoryEntry{historyEntry(now, userID, ActionCreated, "", "")},
	}
	if fs := validate.Driver(d); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	if err := uc.drivers.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID obtiene el conductor por id.
func (uc *DriverUseCase) GetByID(ctx context.Context, id string) (*entity.Driver, error) {
	return uc.drivers.GetByID(ctx, id)
}

// GetByDNI obtiene el conductor activo por DNI.
func (uc *DriverUseCase) GetByDNI(ctx context.Context, dni string) (*entity.Driver, error) {
	return uc.drivers.GetByDNI(ctx, dni)
}

// Update modifica los campos editables del conductor.
func (uc *DriverUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateDriverRequest) (*entity.Driver, error) {
	d, err := uc.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.GivenNames != nil {
		d.GivenNames = *in.GivenNames
	}
	if in.Surnames != nil {
		d.Surnames = *in.Surnames
	}
	if in.LicenseNumber != nil {
		d.LicenseNumber = *in.LicenseNumber
	}
	if in.LicenseCategory != nil {
		d.LicenseCategory = *in.LicenseCategory
	}
	if in.LicenseExpiry != nil {
		expiry, fs := parseOptionalFecha("licenseExpiry", *in.LicenseExpiry)
		if domain.HasErrors(fs) {
			return nil, domain.NewValidationError(fs)
		}
		d.LicenseExpiry = expiry
	}
	if in.Phone != nil {
		d.Phone = *in.Phone
	}
	if in.Email != nil {
		d.Email = *in.Email
	}
	if fs := validate.Driver(d); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	now := uc.now().UTC()
	d.Touch(now)
	d.History = append(d.History, historyEntry(now, userID, ActionUpdated, "", ""))
	if err := uc.drivers.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ChangeState transiciona el estado del conductor.
func (uc *DriverUseCase) ChangeState(ctx context.Context, id, userID, state, reason string) (*entity.Driver, error) {
	switch state {
	case entity.DriverActive, entity.DriverInactive, entity.DriverSuspended:
	default:
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("state", "ENUM", fmt.Sprintf("estado de conductor %q desconocido", state)),
		})
	}
	d, err := uc.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.State == state {
		return d, nil
	}
	now := uc.now().UTC()
	d.State = state
	d.Touch(now)
	d.History = append(d.History, historyEntry(now, userID, ActionStateChanged, reason, ""))
	if err := uc.drivers.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Deactivate aplica la baja lógica del conductor.
func (uc *DriverUseCase) Deactivate(ctx context.Context, id, userID, reason string) error {
	d, err := uc.drivers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !d.IsActive {
		return nil
	}
	now := uc.now().UTC()
	d.IsActive = false
	d.Touch(now)
	d.History = append(d.History, historyEntry(now, userID, ActionDeactivated, reason, ""))
	return uc.drivers.Update(ctx, d)
}

// List lista conductores con filtros y total.
func (uc *DriverUseCase) List(ctx context.Context, in dto.ListDriversRequest) ([]*entity.Driver, int64, error) {
	return uc.drivers.List(ctx, repository.DriverFilter{
		CompanyID:       in.CompanyID,
		State:           in.State,
		Text:            in.Text,
		IncludeInactive: in.IncludeInactive,
	}, repository.Page{Skip: in.Skip, Limit: in.Limit})
}
