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
	"github.com/drtc-puno/sirret-api/pkg/peru"

	"github.com/drtc-puno/sirret-api/internal/domain/validate"
)

// ResolutionUseCase casos de uso de resoluciones. Mantiene los índices
// desnormalizados (Company.ResolutionIDs, Resolution.ChildIDs) en cada
// escritura; la rutina de reconciliación los repara si divergen.
type ResolutionUseCase struct {
	resolutions repository.ResolutionRepository
	companies   repository.CompanyRepository
	now         func() time.Time
}

// NewResolutionUseCase construye el caso de uso.
func NewResolutionUseCase(resolutions repository.ResolutionRepository, companies repository.CompanyRepository) *ResolutionUseCase {
	return &ResolutionUseCase{resolutions: resolutions, companies: companies, now: time.Now}
}

// Create registra una resolución padre o hija.
//
// Padre: la vigencia se deriva de ValidityStart y ValidityYears; un fin
// declarado distinto se ajusta al calculado con advertencia. Hija: hereda la
// ventana de vigencia de la padre, que debe estar vigente y pertenecer a la
// misma empresa.
func (uc *ResolutionUseCase) Create(ctx context.Context, userID string, in dto.CreateResolutionRequest) (*entity.Resolution, []domain.Finding, error) {
	var fs []domain.Finding

	issue, f := parseRequiredFecha("issueDate", in.IssueDate)
	fs = append(fs, f...)

	company, err := uc.companies.GetByRUC(ctx, in.CompanyRUC)
	if err != nil {
		return nil, nil, fmt.Errorf("empresa con RUC %s: %w", in.CompanyRUC, err)
	}

	now := uc.now().UTC()
	r := &entity.Resolution{
		Base:          entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		Number:        in.Number,
		CompanyID:     company.ID,
		ExpedienteID:  in.ExpedienteID,
		IssueDate:     issue,
		Kind:          in.Kind,
		ProcedureKind: in.ProcedureKind,
		State:         entity.ResolutionInForce,
		Description:   in.Description,
		IssuingUser:   userID,
		Observations:  in.Observations,
		History:       []entity.HistoryEntry{historyEntry(now, userID, ActionCreated, "", "")},
	}

	var parent *entity.Resolution
	switch in.Kind {
	case entity.ResolutionParent:
		start, f := parseRequiredFecha("validityStart", in.ValidityStart)
		fs = append(fs, f...)
		r.ValidityStart = start
		r.ValidityYears = in.ValidityYears
		if end, f := parseOptionalFecha("validityEnd", in.ValidityEnd); len(f) > 0 {
			fs = append(fs, f...)
		} else if end != nil {
			r.ValidityEnd = *end
		}
	case entity.ResolutionChild:
		if in.ParentNumber == "" {
			fs = append(fs, domain.Error("parentNumber", "REQUIRED",
				"una resolución hija requiere el número de la padre"))
			break
		}
		parent, err = uc.resolutions.GetByNumber(ctx, in.ParentNumber)
		if err != nil {
			return nil, nil, fmt.Errorf("resolución padre %s: %w", in.ParentNumber, err)
		}
		if parent.Kind != entity.ResolutionParent {
			fs = append(fs, domain.Error("parentNumber", "CROSS_FIELD",
				fmt.Sprintf("la resolución %s no es padre", parent.Number)))
		}
		if parent.State != entity.ResolutionInForce {
			fs = append(fs, domain.Error("parentNumber", "CROSS_FIELD",
				fmt.Sprintf("la resolución padre %s no está vigente (%s)", parent.Number, parent.State)))
		}
		if parent.CompanyID != company.ID {
			fs = append(fs, domain.Error("companyRuc", "CROSS_FIELD",
				"la hija debe pertenecer a la misma empresa que la padre"))
		}
		r.ParentID = parent.ID
		r.ValidityStart = parent.ValidityStart
		r.ValidityEnd = parent.ValidityEnd
	}

	fs = append(fs, validate.Resolution(r)...)
	if domain.HasErrors(fs) {
		return nil, fs, domain.NewValidationError(fs)
	}

	if r.Kind == entity.ResolutionParent {
		end, err := peru.FinVigencia(r.ValidityStart, r.ValidityYears)
		if err != nil {
			return nil, fs, domain.NewValidationError([]domain.Finding{
				domain.Error("validityYears", "RANGE", err.Error()),
			})
		}
		// el valor calculado siempre gana sobre el declarado
		r.ValidityEnd = end
	}

	if err := uc.resolutions.Create(ctx, r); err != nil {
		return nil, fs, err
	}

	if parent != nil {
		parent.ChildIDs = appendUnique(parent.ChildIDs, r.ID)
		parent.Touch(now)
		if err := uc.resolutions.Update(ctx, parent); err != nil {
			return nil, fs, fmt.Errorf("actualizar hijas de %s: %w", parent.Number, err)
		}
	}
	company.ResolutionIDs = appendUnique(company.ResolutionIDs, r.ID)
	company.Touch(now)
	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, fs, fmt.Errorf("actualizar resoluciones de la empresa: %w", err)
	}
	return r, domain.Warnings(fs), nil
}

// GetByID obtiene la resolución por id.
func (uc *ResolutionUseCase) GetByID(ctx context.Context, id string) (*entity.Resolution, error) {
	return uc.resolutions.GetByID(ctx, id)
}

// GetByNumber obtiene la resolución activa por número.
func (uc *ResolutionUseCase) GetByNumber(ctx context.Context, number string) (*entity.Resolution, error) {
	return uc.resolutions.GetByNumber(ctx, number)
}

// Update modifica los campos editables sin transición de estado.
func (uc *ResolutionUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateResolutionRequest) (*entity.Resolution, error) {
	r, err := uc.resolutions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Observations != nil {
		r.Observations = *in.Observations
	}
	if in.ExpedienteID != nil {
		r.ExpedienteID = *in.ExpedienteID
	}
	now := uc.now().UTC()
	r.Touch(now)
	r.History = append(r.History, historyEntry(now, userID, ActionUpdated, "", ""))
	if err := uc.resolutions.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Suspend transiciona IN_FORCE → SUSPENDED.
func (uc *ResolutionUseCase) Suspend(ctx context.Context, id, userID, reason string) (*entity.Resolution, error) {
	return uc.transition(ctx, id, userID, reason, entity.ResolutionSuspended)
}

// Reinstate transiciona SUSPENDED → IN_FORCE si la vigencia no venció.
func (uc *ResolutionUseCase) Reinstate(ctx context.Context, id, userID, reason string) (*entity.Resolution, error) {
	r, err := uc.resolutions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.State != entity.ResolutionSuspended {
		return nil, fmt.Errorf("la resolución %s no está suspendida (%s): %w", r.Number, r.State, domain.ErrConflict)
	}
	if uc.now().UTC().After(r.ValidityEnd.AddDate(0, 0, 1)) {
		return nil, fmt.Errorf("la vigencia de %s venció el %s: %w",
			r.Number, peru.FormatFecha(r.ValidityEnd), domain.ErrConflict)
	}
	return uc.apply(ctx, r, userID, reason, entity.ResolutionInForce)
}

// Annul transiciona a ANNULLED (terminal) desde cualquier estado no terminal.
func (uc *ResolutionUseCase) Annul(ctx context.Context, id, userID, reason string) (*entity.Resolution, error) {
	return uc.transition(ctx, id, userID, reason, entity.ResolutionAnnulled)
}

// Expire transiciona IN_FORCE → EXPIRED (terminal).
func (uc *ResolutionUseCase) Expire(ctx context.Context, id, userID, reason string) (*entity.Resolution, error) {
	return uc.transition(ctx, id, userID, reason, entity.ResolutionExpired)
}

// ExpireDue recorre las resoluciones vigentes o suspendidas cuya vigencia ya
// venció y las pasa a EXPIRED. Devuelve los números afectados.
func (uc *ResolutionUseCase) ExpireDue(ctx context.Context, userID string) ([]string, error) {
	now := uc.now().UTC()
	var expired []string
	// se recolecta primero y se muta después para no desplazar la paginación
	var due []*entity.Resolution
	for _, state := range []string{entity.ResolutionInForce, entity.ResolutionSuspended} {
		for skip := 0; ; skip += 100 {
			list, _, err := uc.resolutions.List(ctx,
				repository.ResolutionFilter{State: state},
				repository.Page{Skip: skip, Limit: 100})
			if err != nil {
				return nil, err
			}
			for _, r := range list {
				if !r.ValidityEnd.IsZero() && now.After(r.ValidityEnd.AddDate(0, 0, 1)) {
					due = append(due, r)
				}
			}
			if len(list) < 100 {
				break
			}
		}
	}
	for _, r := range due {
		if _, err := uc.apply(ctx, r, userID, "vigencia vencida", entity.ResolutionExpired); err != nil {
			return expired, err
		}
		expired = append(expired, r.Number)
	}
	return expired, nil
}

// resolutionSources estados de origen admitidos por cada transición
// administrativa. El barrido ExpireDue no pasa por aquí: también vence
// resoluciones suspendidas cuya ventana terminó.
var resolutionSources = map[string][]string{
	entity.ResolutionSuspended: {entity.ResolutionInForce},
	entity.ResolutionExpired:   {entity.ResolutionInForce},
	entity.ResolutionAnnulled:  {entity.ResolutionInForce, entity.ResolutionSuspended},
}

// transition aplica una transición de estado validando el origen contra la
// tabla de transiciones.
func (uc *ResolutionUseCase) transition(ctx context.Context, id, userID, reason, to string) (*entity.Resolution, error) {
	r, err := uc.resolutions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.State == to {
		return r, nil
	}
	allowed := false
	for _, from := range resolutionSources[to] {
		if r.State == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("la resolución %s no admite %s desde %s: %w",
			r.Number, to, r.State, domain.ErrConflict)
	}
	return uc.apply(ctx, r, userID, reason, to)
}

func (uc *ResolutionUseCase) apply(ctx context.Context, r *entity.Resolution, userID, reason, to string) (*entity.Resolution, error) {
	now := uc.now().UTC()
	r.State = to
	r.Touch(now)
	r.History = append(r.History, historyEntry(now, userID, ActionStateChanged, reason, ""))
	if err := uc.resolutions.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List lista resoluciones con filtros y total.
func (uc *ResolutionUseCase) List(ctx context.Context, in dto.ListResolutionsRequest) ([]*entity.Resolution, int64, error) {
	f := repository.ResolutionFilter{
		CompanyID:       in.CompanyID,
		Kind:            in.Kind,
		State:           in.State,
		ProcedureKind:   in.ProcedureKind,
		NumberPrefix:    in.NumberPrefix,
		IncludeInactive: in.IncludeInactive,
	}
	from, fs := parseOptionalFecha("issuedFrom", in.IssuedFrom)
	if domain.HasErrors(fs) {
		return nil, 0, domain.NewValidationError(fs)
	}
	to, fs := parseOptionalFecha("issuedTo", in.IssuedTo)
	if domain.HasErrors(fs) {
		return nil, 0, domain.NewValidationError(fs)
	}
	f.IssuedFrom, f.IssuedTo = from, to
	return uc.resolutions.List(ctx, f, repository.Page{Skip: in.Skip, Limit: in.Limit})
}

// ListChildren hijas activas de una resolución padre.
func (uc *ResolutionUseCase) ListChildren(ctx context.Context, parentID string) ([]*entity.Resolution, error) {
	return uc.resolutions.ListChildren(ctx, parentID)
}

// CountBy conteo de resoluciones activas por el campo dado (estado, tipo).
func (uc *ResolutionUseCase) CountBy(ctx context.Context, field string) ([]store.GroupCount, error) {
	return uc.resolutions.CountBy(ctx, field)
}
