package repository

import (
	"context"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// ExpedienteFilter filtros del listado de expedientes.
type ExpedienteFilter struct {
	State           string
	Office          string
	ApplicantRUC    string
	Text            string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	IncludeInactive bool
}

// ExpedienteRepository puerto de persistencia para expedientes.
type ExpedienteRepository interface {
	Create(ctx context.Context, e *entity.Expediente) error
	GetByID(ctx context.Context, id string) (*entity.Expediente, error)
	// GetByNumber consulta por número de cargo (seguimiento público por QR).
	GetByNumber(ctx context.Context, number string) (*entity.Expediente, error)
	Update(ctx context.Context, e *entity.Expediente) error
	List(ctx context.Context, f ExpedienteFilter, p Page) ([]*entity.Expediente, int64, error)
	CountByState(ctx context.Context) ([]store.GroupCount, error)
}

// DocumentRepository puerto para documentos sustentatorios.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Document, error)
	Update(ctx context.Context, d *entity.Document) error
}
