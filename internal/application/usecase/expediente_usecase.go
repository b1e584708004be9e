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

// Transiciones admitidas del expediente. ARCHIVED es terminal; APPROVED y
// REJECTED solo admiten el archivo.
var expedienteTransitions = map[string][]string{
	entity.ExpedienteRegistered: {entity.ExpedienteInProcess, entity.ExpedienteArchived},
	entity.ExpedienteInProcess:  {entity.ExpedienteApproved, entity.ExpedienteRejected, entity.ExpedienteArchived},
	entity.ExpedienteApproved:   {entity.ExpedienteArchived},
	entity.ExpedienteRejected:   {entity.ExpedienteArchived},
}

// ExpedienteUseCase casos de uso de mesa de partes: apertura, derivación
// entre oficinas, transición de estado y seguimiento público por número.
type ExpedienteUseCase struct {
	expedientes repository.ExpedienteRepository
	companies   repository.CompanyRepository
	documents   repository.DocumentRepository
	now         func() time.Time
}

// NewExpedienteUseCase construye el caso de uso.
func NewExpedienteUseCase(
	expedientes repository.ExpedienteRepository,
	companies repository.CompanyRepository,
	documents repository.DocumentRepository,
) *ExpedienteUseCase {
	return &ExpedienteUseCase{
		expedientes: expedientes,
		companies:   companies,
		documents:   documents,
		now:         time.Now,
	}
}

// Create abre una carpeta de trámite en estado REGISTERED. Si el RUC del
// solicitante corresponde a una empresa registrada, se vincula.
func (uc *ExpedienteUseCase) Create(ctx context.Context, userID string, in dto.CreateExpedienteRequest) (*entity.Expediente, error) {
	now := uc.now().UTC()
	e := &entity.Expediente{
		Base:          entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		Number:        in.Number,
		Subject:       in.Subject,
		ApplicantRUC:  in.ApplicantRUC,
		ApplicantName: in.ApplicantName,
		CurrentOffice: in.Office,
		State:         entity.ExpedienteRegistered,
		History:       []entity.HistoryEntry{historyEntry(now, userID, ActionCreated, "", "")},
	}
	if fs := validate.Expediente(e); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	if in.ApplicantRUC != "" {
		company, err := uc.companies.GetByRUC(ctx, in.ApplicantRUC)
		switch {
		case err == nil:
			e.CompanyID = company.ID
			if e.ApplicantName == "" {
				e.ApplicantName = company.LegalName.Canonical
			}
		case errors.Is(err, domain.ErrNotFound):
			// solicitante aún no registrado como empresa
		default:
			return nil, err
		}
	}
	if err := uc.expedientes.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID obtiene el expediente por id.
func (uc *ExpedienteUseCase) GetByID(ctx context.Context, id string) (*entity.Expediente, error) {
	return uc.expedientes.GetByID(ctx, id)
}

// Derive mueve el expediente a otra oficina dejando el movimiento en el
// historial de derivaciones.
func (uc *ExpedienteUseCase) Derive(ctx context.Context, id, userID string, in dto.DeriveExpedienteRequest) (*entity.Expediente, error) {
	e, err := uc.expedientes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Terminal() {
		return nil, fmt.Errorf("el expediente %s está archivado: %w", e.Number, domain.ErrConflict)
	}
	now := uc.now().UTC()
	e.Derivations = append(e.Derivations, entity.Derivation{
		Timestamp:  now,
		FromOffice: e.CurrentOffice,
		ToOffice:   in.ToOffice,
		UserID:     userID,
		Note:       in.Note,
	})
	e.CurrentOffice = in.ToOffice
	if e.State == entity.ExpedienteRegistered {
		e.State = entity.ExpedienteInProcess
	}
	e.Touch(now)
	e.History = append(e.History, historyEntry(now, userID, ActionDerived, in.Note, ""))
	if err := uc.expedientes.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ChangeState transiciona el estado del expediente según la tabla de
// transiciones admitidas.
func (uc *ExpedienteUseCase) ChangeState(ctx context.Context, id, userID string, in dto.ChangeExpedienteStateRequest) (*entity.Expediente, error) {
	e, err := uc.expedientes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.State == in.State {
		return e, nil
	}
	if !allowedTransition(e.State, in.State) {
		return nil, fmt.Errorf("transición %s → %s no admitida para el expediente %s: %w",
			e.State, in.State, e.Number, domain.ErrConflict)
	}
	now := uc.now().UTC()
	e.State = in.State
	e.Touch(now)
	e.History = append(e.History, historyEntry(now, userID, ActionStateChanged, in.Reason, ""))
	if err := uc.expedientes.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func allowedTransition(from, to string) bool {
	for _, s := range expedienteTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Track consulta pública de estado por número de cargo. Devuelve solo la
// vista reducida, sin datos internos.
func (uc *ExpedienteUseCase) Track(ctx context.Context, number string) (*dto.TrackingResponse, error) {
	e, err := uc.expedientes.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	out := &dto.TrackingResponse{
		Number:        e.Number,
		Subject:       e.Subject,
		State:         e.State,
		CurrentOffice: e.CurrentOffice,
	}
	if e.UpdatedAt != nil {
		out.UpdatedAt = peru.FormatFecha(*e.UpdatedAt)
	}
	return out, nil
}

// AttachDocument registra los metadatos de un documento sustentatorio.
func (uc *ExpedienteUseCase) AttachDocument(ctx context.Context, expedienteID, userID string, d *entity.Document) (*entity.Document, error) {
	e, err := uc.expedientes.GetByID(ctx, expedienteID)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	d.Base = entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true}
	d.ExpedienteID = e.ID
	d.UploadedBy = userID
	if err := uc.documents.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListDocuments documentos activos del expediente.
func (uc *ExpedienteUseCase) ListDocuments(ctx context.Context, expedienteID string) ([]*entity.Document, error) {
	return uc.documents.ListByExpediente(ctx, expedienteID)
}

// List lista expedientes con filtros y total.
func (uc *ExpedienteUseCase) List(ctx context.Context, in dto.ListExpedientesRequest) ([]*entity.Expediente, int64, error) {
	f := repository.ExpedienteFilter{
		State:           in.State,
		Office:          in.Office,
		ApplicantRUC:    in.ApplicantRUC,
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
	return uc.expedientes.List(ctx, f, repository.Page{Skip: in.Skip, Limit: in.Limit})
}

// CountByState conteo de expedientes activos por estado.
func (uc *ExpedienteUseCase) CountByState(ctx context.Context) ([]store.GroupCount, error) {
	return uc.expedientes.CountByState(ctx)
}
