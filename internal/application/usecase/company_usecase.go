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
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// CompanyUseCase casos de uso de empresas operadoras.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	cats      *validate.Catalogs
	now       func() time.Time
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companies repository.CompanyRepository, cats *validate.Catalogs) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, cats: cats, now: time.Now}
}

// Create registra una empresa en estado IN_PROCESS. El RUC es único entre
// empresas activas; los teléfonos se normalizan a lista separada por comas.
func (uc *CompanyUseCase) Create(ctx context.Context, userID string, in dto.CreateCompanyRequest) (*entity.Company, error) {
	phone, err := peru.NormalizeTelefonos(in.Phone)
	if err != nil {
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("phone", "FORMAT", err.Error()),
		})
	}
	now := uc.now().UTC()
	c := &entity.Company{
		Base: entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		RUC:  in.RUC,
		LegalName: entity.LegalName{
			Canonical: in.LegalName,
			Official:  in.OfficialName,
			Short:     in.ShortName,
		},
		FiscalAddress: in.FiscalAddress,
		LegalRepresentative: entity.LegalRepresentative{
			DNI:        in.RepresentativeDNI,
			GivenNames: in.RepresentativeName.GivenNames,
			Surnames:   in.RepresentativeName.Surnames,
		},
		ServiceKind: in.ServiceKind,
		State:       entity.CompanyInProcess,
		Phone:       phone,
		Email:       in.Email,
		History:     []entity.HistoryEntry{historyEntry(now, userID, ActionCreated, "", "")},
	}
	if fs := validate.Company(c, uc.cats); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	if err := uc.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID obtiene la empresa por id.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return uc.companies.GetByID(ctx, id)
}

// GetByRUC obtiene la empresa activa por RUC.
func (uc *CompanyUseCase) GetByRUC(ctx context.Context, ruc string) (*entity.Company, error) {
	return uc.companies.GetByRUC(ctx, ruc)
}

// Update modifica los campos presentes y deja constancia en el historial.
func (uc *CompanyUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateCompanyRequest) (*entity.Company, error) {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.LegalName != nil {
		c.LegalName.Canonical = *in.LegalName
	}
	if in.OfficialName != nil {
		c.LegalName.Official = *in.OfficialName
	}
	if in.ShortName != nil {
		c.LegalName.Short = *in.ShortName
	}
	if in.FiscalAddress != nil {
		c.FiscalAddress = *in.FiscalAddress
	}
	if in.ServiceKind != nil {
		c.ServiceKind = *in.ServiceKind
	}
	if in.Phone != nil {
		phone, err := peru.NormalizeTelefonos(*in.Phone)
		if err != nil {
			return nil, domain.NewValidationError([]domain.Finding{
				domain.Error("phone", "FORMAT", err.Error()),
			})
		}
		c.Phone = phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if fs := validate.Company(c, uc.cats); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	now := uc.now().UTC()
	c.Touch(now)
	c.History = append(c.History, historyEntry(now, userID, ActionUpdated, "", ""))
	if err := uc.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ChangeState transiciona el estado administrativo de la empresa.
func (uc *CompanyUseCase) ChangeState(ctx context.Context, id, userID string, in dto.ChangeCompanyStateRequest) (*entity.Company, error) {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !uc.cats.Allowed(entity.CatalogCompanyStates, in.State) {
		return nil, domain.NewValidationError([]domain.Finding{
			domain.Error("state", "ENUM", fmt.Sprintf("estado %q fuera del catálogo COMPANY_STATES", in.State)),
		})
	}
	if c.State == in.State {
		return c, nil
	}
	now := uc.now().UTC()
	c.State = in.State
	c.Touch(now)
	c.History = append(c.History, historyEntry(now, userID, ActionStateChanged, in.Reason, ""))
	if err := uc.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Deactivate aplica la baja lógica; el registro persiste fuera de listados.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, id, userID, reason string) error {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !c.IsActive {
		return nil
	}
	now := uc.now().UTC()
	c.IsActive = false
	c.Touch(now)
	c.History = append(c.History, historyEntry(now, userID, ActionDeactivated, reason, ""))
	return uc.companies.Update(ctx, c)
}

// Reactivate revierte la baja lógica si el RUC no fue reutilizado.
func (uc *CompanyUseCase) Reactivate(ctx context.Context, id, userID string) (*entity.Company, error) {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsActive {
		return c, nil
	}
	if existing, err := uc.companies.GetByRUC(ctx, c.RUC); err == nil && existing.ID != c.ID {
		return nil, fmt.Errorf("el RUC %s ya pertenece a otra empresa activa: %w", c.RUC, domain.ErrConflict)
	}
	now := uc.now().UTC()
	c.IsActive = true
	c.Touch(now)
	c.History = append(c.History, historyEntry(now, userID, ActionReactivated, "", ""))
	if err := uc.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List lista empresas con filtros y total.
func (uc *CompanyUseCase) List(ctx context.Context, in dto.ListCompaniesRequest) ([]*entity.Company, int64, error) {
	f := repository.CompanyFilter{
		State:           in.State,
		ServiceKind:     in.ServiceKind,
		RUCPrefix:       in.RUCPrefix,
		Text:            in.Text,
		IncludeInactive: in.IncludeInactive,
	}
	from, fs := parseOptionalFecha("createdFrom", in.CreatedFrom)
	if domain.HasErrors(fs) {
		return nil, 0, domain.NewValidationError(fs)
	}
	to, fs := parseOptionalFecha("createdTo", in.CreatedTo)
	if domain.HasErrors(fs) {
		return nil, 0, domain.NewValidationError(fs)
	}
	f.CreatedFrom, f.CreatedTo = from, to
	return uc.companies.List(ctx, f, repository.Page{Skip: in.Skip, Limit: in.Limit})
}

// CountByState conteo de empresas activas por estado (tablero).
func (uc *CompanyUseCase) CountByState(ctx context.Context) ([]store.GroupCount, error) {
	return uc.companies.CountByState(ctx)
}
