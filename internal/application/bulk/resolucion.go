package bulk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// Columnas de la planilla de resoluciones. Una fila con RESOLUCION PADRE
// vacía es padre; con valor, hija de esa resolución.
const (
	colNroResolucion = "NRO RESOLUCION"
	colFechaEmision  = "FECHA EMISION"
	colInicioVig     = "INICIO VIGENCIA"
	colAnios         = "AÑOS"
	colFinVig        = "FIN VIGENCIA"
	colTipoResol     = "TIPO"
	colTipoTramite   = "TIPO TRAMITE"
	colResolPadre    = "RESOLUCION PADRE"
	colDescripcion   = "DESCRIPCION"
	colExpediente    = "EXPEDIENTE"
	colUsuarioEmisor = "USUARIO EMISOR"
	colObservaciones = "OBSERVACIONES"
)

type resolucionRow struct {
	numero        string
	ruc           string
	emision       time.Time
	inicio        time.Time
	anios         int
	fin           time.Time // calculado para padres; heredado para hijas
	tramite       string
	padreNumero   string
	descripcion   string
	kind          string
	expediente    string
	usuarioEmisor string
	estado        string
	observaciones string
}

type resolucionImporter struct {
	s      *Service
	parsed map[int]resolucionRow
	// creadas en esta corrida, por número: las hijas de la misma planilla
	// resuelven a su padre sin releer el almacén
	applied map[string]*entity.Resolution
}

func (imp *resolucionImporter) requiredHeaders() []string {
	return []string{colNroResolucion, colRUC, colFechaEmision, colTipoTramite}
}

func (imp *resolucionImporter) knownHeaders() []string {
	return []string{
		colResolPadre, colNroResolucion, colRUC, colFechaEmision,
		colInicioVig, colAnios, colFinVig, colTipoResol, colTipoTramite,
		colDescripcion, colExpediente, colUsuarioEmisor, colEstado,
		colObservaciones,
	}
}

// order procesa primero las filas padre para que las hijas de la misma
// planilla encuentren su resolución ya escrita.
func (imp *resolucionImporter) order(rows [][]string, idx map[string]int) []numberedRow {
	var parents, children []numberedRow
	for i, values := range rows {
		r := row{values: values}
		nr := numberedRow{n: i + 1, values: values}
		if r.get(idx, colResolPadre) == "" {
			parents = append(parents, nr)
		} else {
			children = append(children, nr)
		}
	}
	return append(parents, children...)
}

func (imp *resolucionImporter) parse(_ context.Context, idx map[string]int, r row, n int) (string, []domain.Finding) {
	var fs []domain.Finding
	rec := resolucionRow{
		numero:        r.get(idx, colNroResolucion),
		ruc:           r.get(idx, colRUC),
		tramite:       r.get(idx, colTipoTramite),
		padreNumero:   r.get(idx, colResolPadre),
		descripcion:   r.get(idx, colDescripcion),
		expediente:    r.get(idx, colExpediente),
		usuarioEmisor: r.get(idx, colUsuarioEmisor),
		estado:        r.get(idx, colEstado),
		observaciones: r.get(idx, colObservaciones),
	}
	if !entity.ResolutionNumberRx.MatchString(rec.numero) {
		fs = append(fs, domain.Error(colNroResolucion, "FORMAT",
			fmt.Sprintf("número %q no cumple la forma R-NNNN-YYYY", rec.numero)))
	}
	if err := peru.ValidateRUC(rec.ruc); err != nil {
		fs = append(fs, domain.Error(colRUC, "FORMAT", err.Error()))
	}
	if t, err := peru.ParseFecha(r.get(idx, colFechaEmision)); err != nil {
		fs = append(fs, domain.Error(colFechaEmision, "FORMAT", err.Error()))
	} else {
		rec.emision = t
	}

	if rec.padreNumero == "" {
		rec.kind = entity.ResolutionParent
		fs = append(fs, imp.parseVigencia(idx, r, &rec)...)
	} else {
		rec.kind = entity.ResolutionChild
		if !entity.ResolutionNumberRx.MatchString(rec.padreNumero) {
			fs = append(fs, domain.Error(colResolPadre, "FORMAT",
				fmt.Sprintf("número %q no cumple la forma R-NNNN-YYYY", rec.padreNumero)))
		}
	}

	if !containsString(entity.ProcedureKinds, rec.tramite) {
		fs = append(fs, domain.Error(colTipoTramite, "ENUM",
			fmt.Sprintf("tipo de trámite %q desconocido", rec.tramite)))
	}

	// el tipo declarado, si viene, debe coincidir con el derivado de la
	// columna RESOLUCION PADRE
	if declared := r.get(idx, colTipoResol); declared != "" && declared != rec.kind {
		fs = append(fs, domain.Error(colTipoResol, "CROSS_FIELD",
			fmt.Sprintf("tipo declarado %q no coincide con %q", declared, rec.kind)))
	}
	if rec.estado != "" && !containsString([]string{
		entity.ResolutionInForce, entity.ResolutionExpired,
		entity.ResolutionSuspended, entity.ResolutionAnnulled,
	}, rec.estado) {
		fs = append(fs, domain.Error(colEstado, "ENUM",
			fmt.Sprintf("estado %q desconocido", rec.estado)))
	}

	if !domain.HasErrors(fs) {
		if imp.parsed == nil {
			imp.parsed = map[int]resolucionRow{}
		}
		imp.parsed[n] = rec
	}
	return rec.numero, fs
}

// parseVigencia deriva el fin de vigencia de una padre y contrasta el fin
// declarado: coincidencia exacta pasa; ante cualquier diferencia gana el
// calculado y la fila queda con advertencia.
func (imp *resolucionImporter) parseVigencia(idx map[string]int, r row, rec *resolucionRow) []domain.Finding {
	var fs []domain.Finding
	inicio, err := peru.ParseFecha(r.get(idx, colInicioVig))
	if err != nil {
		return append(fs, domain.Error(colInicioVig, "FORMAT", err.Error()))
	}
	rec.inicio = inicio

	anios, err := strconv.Atoi(r.get(idx, colAnios))
	if err != nil || !peru.VigenciaValida(anios) {
		return append(fs, domain.Error(colAnios, "RANGE",
			fmt.Sprintf("vigencia %q no admitida (4 o 10 años)", r.get(idx, colAnios))))
	}
	rec.anios = anios

	want, err := peru.FinVigencia(inicio, anios)
	if err != nil {
		return append(fs, domain.Error(colAnios, "RANGE", err.Error()))
	}
	rec.fin = want

	declared := r.get(idx, colFinVig)
	if declared == "" {
		return fs
	}
	fin, err := peru.ParseFecha(declared)
	if err != nil {
		return append(fs, domain.Error(colFinVig, "FORMAT", err.Error()))
	}
	switch {
	case fin.Equal(want):
	case peru.FinDeclaradoCoincide(want, fin):
		fs = append(fs, domain.Warning(colFinVig, "VIGENCIA_ADJUSTED",
			fmt.Sprintf("fin declarado %s ajustado al calculado %s",
				peru.FormatFecha(fin), peru.FormatFecha(want))))
	default:
		fs = append(fs, domain.Warning(colFinVig, "VIGENCIA",
			fmt.Sprintf("fin declarado %s no coincide con el calculado %s; se usa el calculado",
				peru.FormatFecha(fin), peru.FormatFecha(want))))
	}
	return fs
}

func (imp *resolucionImporter) apply(ctx context.Context, n int, userID, sourceRef string) (outcome, error) {
	rec := imp.parsed[n]
	now := imp.s.now().UTC()

	company, err := imp.s.companies.GetByRUC(ctx, rec.ruc)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("empresa con RUC %s: %w", rec.ruc, err)
	}

	var parent *entity.Resolution
	if rec.kind == entity.ResolutionChild {
		parent, err = imp.lookupParent(ctx, rec.padreNumero)
		if err != nil {
			return outcomeSkipped, err
		}
		if parent.CompanyID != company.ID {
			return outcomeSkipped, fmt.Errorf("la padre %s pertenece a otra empresa: %w",
				parent.Number, domain.ErrConflict)
		}
		rec.inicio = parent.ValidityStart
		rec.fin = parent.ValidityEnd
	}

	existing, err := imp.s.resolutions.GetByNumberAnyState(ctx, rec.numero)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		estado := rec.estado
		if estado == "" {
			estado = entity.ResolutionInForce
		}
		r := &entity.Resolution{
			Base:          entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
			Number:        rec.numero,
			CompanyID:     company.ID,
			ExpedienteID:  rec.expediente,
			IssueDate:     rec.emision,
			ValidityStart: rec.inicio,
			ValidityEnd:   rec.fin,
			Kind:          rec.kind,
			ProcedureKind: rec.tramite,
			State:         estado,
			Description:   rec.descripcion,
			IssuingUser:   rec.usuarioEmisor,
			Observations:  rec.observaciones,
			History: []entity.HistoryEntry{
				historyEvent(now, userID, sourceRef, "alta por carga masiva"),
			},
		}
		if rec.kind == entity.ResolutionParent {
			r.ValidityYears = rec.anios
		} else {
			r.ParentID = parent.ID
		}
		if fs := validate.Resolution(r); domain.HasErrors(fs) {
			return outcomeSkipped, domain.NewValidationError(fs)
		}
		if err := imp.s.resolutions.Create(ctx, r); err != nil {
			return outcomeSkipped, err
		}
		if parent != nil {
			parent.ChildIDs = appendUniqueID(parent.ChildIDs, r.ID)
			parent.Touch(now)
			if err := imp.s.resolutions.Update(ctx, parent); err != nil {
				return outcomeSkipped, err
			}
		}
		company.ResolutionIDs = appendUniqueID(company.ResolutionIDs, r.ID)
		company.Touch(now)
		if err := imp.s.companies.Update(ctx, company); err != nil {
			return outcomeSkipped, err
		}
		imp.remember(r)
		return outcomeCreated, nil
	case err != nil:
		return outcomeSkipped, err
	}

	reactivated := !existing.IsActive
	changed := applyResolucionFields(existing, rec)
	imp.remember(existing)
	if !changed && !reactivated {
		return outcomeSkipped, nil
	}
	existing.IsActive = true
	existing.Touch(now)
	reason := "actualización por carga masiva"
	if reactivated {
		reason = "reactivación por carga masiva"
	}
	existing.History = append(existing.History, historyEvent(now, userID, sourceRef, reason))
	if err := imp.s.resolutions.Update(ctx, existing); err != nil {
		return outcomeSkipped, err
	}
	if reactivated {
		company.ResolutionIDs = appendUniqueID(company.ResolutionIDs, existing.ID)
		company.Touch(now)
		if err := imp.s.companies.Update(ctx, company); err != nil {
			return outcomeSkipped, err
		}
		return outcomeReactivated, nil
	}
	return outcomeUpdated, nil
}

func (imp *resolucionImporter) lookupParent(ctx context.Context, number string) (*entity.Resolution, error) {
	if p, ok := imp.applied[number]; ok {
		return p, nil
	}
	p, err := imp.s.resolutions.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("resolución padre %s: %w", number, err)
	}
	imp.remember(p)
	return p, nil
}

func (imp *resolucionImporter) remember(r *entity.Resolution) {
	if imp.applied == nil {
		imp.applied = map[string]*entity.Resolution{}
	}
	imp.applied[r.Number] = r
}

// applyResolucionFields aplica el diff de la fila sobre el registro.
func applyResolucionFields(r *entity.Resolution, rec resolucionRow) bool {
	changed := false
	if !rec.emision.IsZero() && !r.IssueDate.Equal(rec.emision) {
		r.IssueDate = rec.emision
		changed = true
	}
	if !rec.inicio.IsZero() && !r.ValidityStart.Equal(rec.inicio) {
		r.ValidityStart = rec.inicio
		changed = true
	}
	if !rec.fin.IsZero() && !r.ValidityEnd.Equal(rec.fin) {
		r.ValidityEnd = rec.fin
		changed = true
	}
	if rec.kind == entity.ResolutionParent && rec.anios != 0 && r.ValidityYears != rec.anios {
		r.ValidityYears = rec.anios
		changed = true
	}
	if rec.tramite != "" && r.ProcedureKind != rec.tramite {
		r.ProcedureKind = rec.tramite
		changed = true
	}
	if rec.descripcion != "" && r.Description != rec.descripcion {
		r.Description = rec.descripcion
		changed = true
	}
	if rec.expediente != "" && r.ExpedienteID != rec.expediente {
		r.ExpedienteID = rec.expediente
		changed = true
	}
	if rec.usuarioEmisor != "" && r.IssuingUser != rec.usuarioEmisor {
		r.IssuingUser = rec.usuarioEmisor
		changed = true
	}
	if rec.estado != "" && r.State != rec.estado {
		r.State = rec.estado
		changed = true
	}
	if rec.observaciones != "" && r.Observations != rec.observaciones {
		r.Observations = rec.observaciones
		changed = true
	}
	return changed
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func appendUniqueID(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}
