package registry

import (
	"context"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

var (
	_ repository.ExpedienteRepository = (*ExpedienteRepo)(nil)
	_ repository.DocumentRepository   = (*DocumentRepo)(nil)
)

// ExpedienteRepo repositorio de expedientes sobre el DocumentStore.
type ExpedienteRepo struct {
	st store.DocumentStore
}

// NewExpedienteRepo construye el repositorio de expedientes.
func NewExpedienteRepo(st store.DocumentStore) *ExpedienteRepo {
	return &ExpedienteRepo{st: st}
}

// Create inserta un expediente; el número de cargo es único entre activos.
func (r *ExpedienteRepo) Create(ctx context.Context, e *entity.Expediente) error {
	if err := ensureUnique(ctx, r.st, store.ColExpedientes,
		store.Query{"number": e.Number}, "expediente "+e.Number); err != nil {
		return err
	}
	e.SearchText = peru.Fold(e.Number + " " + e.Subject + " " + e.ApplicantName)
	if err := r.st.Insert(ctx, store.ColExpedientes, e.ID, e); err != nil {
		return fmt.Errorf("crear expediente: %w", err)
	}
	return nil
}

// GetByID obtiene el expediente por id.
func (r *ExpedienteRepo) GetByID(ctx context.Context, id string) (*entity.Expediente, error) {
	return getByID[entity.Expediente](ctx, r.st, store.ColExpedientes, id)
}

// GetByNumber consulta por número de cargo (seguimiento público).
func (r *ExpedienteRepo) GetByNumber(ctx context.Context, number string) (*entity.Expediente, error) {
	return findOne[entity.Expediente](ctx, r.st, store.ColExpedientes,
		store.Query{"number": number, "isActive": true})
}

// Update reemplaza el documento completo del expediente.
func (r *ExpedienteRepo) Update(ctx context.Context, e *entity.Expediente) error {
	e.SearchText = peru.Fold(e.Number + " " + e.Subject + " " + e.ApplicantName)
	if err := r.st.Replace(ctx, store.ColExpedientes, e.ID, e); err != nil {
		return fmt.Errorf("actualizar expediente %s: %w", e.ID, err)
	}
	return nil
}

// List lista expedientes con filtros y total.
func (r *ExpedienteRepo) List(ctx context.Context, f repository.ExpedienteFilter, p repository.Page) ([]*entity.Expediente, int64, error) {
	p.Normalize()
	q := store.Query{}
	if !f.IncludeInactive {
		q["isActive"] = true
	}
	if f.State != "" {
		q["state"] = f.State
	}
	if f.Office != "" {
		q["currentOffice"] = f.Office
	}
	if f.ApplicantRUC != "" {
		q["applicantRuc"] = f.ApplicantRUC
	}
	if f.Text != "" {
		q["searchText"] = store.Contains(peru.Fold(f.Text))
	}
	switch {
	case f.CreatedFrom != nil && f.CreatedTo != nil:
		q["createdAt"] = store.Range(*f.CreatedFrom, *f.CreatedTo)
	case f.CreatedFrom != nil:
		q["createdAt"] = store.Gte(*f.CreatedFrom)
	case f.CreatedTo != nil:
		q["createdAt"] = store.Lte(*f.CreatedTo)
	}
	total, err := r.st.Count(ctx, store.ColExpedientes, q)
	if err != nil {
		return nil, 0, err
	}
	list, err := findMany[entity.Expediente](ctx, r.st, store.ColExpedientes, q,
		store.FindOptions{Skip: p.Skip, Limit: p.Limit, Sort: createdDesc})
	return list, total, err
}

// CountByState conteo de expedientes activos agrupado por estado.
func (r *ExpedienteRepo) CountByState(ctx context.Context) ([]store.GroupCount, error) {
	return r.st.Aggregate(ctx, store.ColExpedientes, store.Pipeline{
		Match:   store.Query{"isActive": true},
		GroupBy: "state",
	})
}

// DocumentRepo repositorio de documentos sustentatorios.
type DocumentRepo struct {
	st store.DocumentStore
}

// NewDocumentRepo construye el repositorio de documentos.
func NewDocumentRepo(st store.DocumentStore) *DocumentRepo {
	return &DocumentRepo{st: st}
}

// Create inserta los metadatos de un documento.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	if err := r.st.Insert(ctx, store.ColDocumentos, d.ID, d); err != nil {
		return fmt.Errorf("crear documento: %w", err)
	}
	return nil
}

// GetByID obtiene el documento por id.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return getByID[entity.Document](ctx, r.st, store.ColDocumentos, id)
}

// ListByExpediente documentos activos de un expediente.
func (r *DocumentRepo) ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Document, error) {
	return findMany[entity.Document](ctx, r.st, store.ColDocumentos,
		store.Query{"expedienteId": expedienteID, "isActive": true},
		store.FindOptions{Sort: createdDesc})
}

// Update reemplaza los metadatos del documento.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	if err := r.st.Replace(ctx, store.ColDocumentos, d.ID, d); err != nil {
		return fmt.Errorf("actualizar documento %s: %w", d.ID, err)
	}
	return nil
}
