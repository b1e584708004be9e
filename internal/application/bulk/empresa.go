package bulk

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// Columnas de la planilla de empresas.
const (
	colRUC          = "RUC"
	colRazonSocial  = "RAZON SOCIAL"
	colNombreCorto  = "NOMBRE CORTO"
	colDireccion    = "DIRECCION"
	colTelefono     = "TELEFONO"
	colEmail        = "EMAIL"
	colTipoServicio = "TIPO SERVICIO"
	colEstado       = "ESTADO"
	colDNIRep       = "DNI REPRESENTANTE"
	colNombreRep    = "REPRESENTANTE"
)

type empresaRow struct {
	ruc         string
	razonSocial string
	nombreCorto string
	direccion   string
	telefono    string
	email       string
	servicio    string
	estado      string
	dniRep      string
	nombreRep   string
}

type empresaImporter struct {
	s      *Service
	parsed map[int]empresaRow
}

func (imp *empresaImporter) requiredHeaders() []string {
	return []string{colRUC, colRazonSocial}
}

func (imp *empresaImporter) knownHeaders() []string {
	return []string{
		colRUC, colRazonSocial, colNombreCorto, colDireccion, colTelefono,
		colEmail, colTipoServicio, colEstado, colDNIRep, colNombreRep,
	}
}

func (imp *empresaImporter) order(rows [][]string, _ map[string]int) []numberedRow {
	return identityOrder(rows)
}

func (imp *empresaImporter) parse(_ context.Context, idx map[string]int, r row, n int) (string, []domain.Finding) {
	var fs []domain.Finding
	rec := empresaRow{
		ruc:         r.get(idx, colRUC),
		razonSocial: r.get(idx, colRazonSocial),
		nombreCorto: r.get(idx, colNombreCorto),
		direccion:   r.get(idx, colDireccion),
		email:       r.get(idx, colEmail),
		servicio:    r.get(idx, colTipoServicio),
		estado:      r.get(idx, colEstado),
		dniRep:      r.get(idx, colDNIRep),
		nombreRep:   r.get(idx, colNombreRep),
	}
	if err := peru.ValidateRUC(rec.ruc); err != nil {
		fs = append(fs, domain.Error(colRUC, "FORMAT", err.Error()))
	}
	if rec.razonSocial == "" {
		fs = append(fs, domain.Error(colRazonSocial, "REQUIRED", "la razón social es obligatoria"))
	}
	tel, err := peru.NormalizeTelefonos(r.get(idx, colTelefono))
	if err != nil {
		fs = append(fs, domain.Error(colTelefono, "FORMAT", err.Error()))
	}
	rec.telefono = tel
	if rec.estado != "" && !imp.s.cats.Allowed(entity.CatalogCompanyStates, rec.estado) {
		fs = append(fs, domain.Error(colEstado, "ENUM",
			fmt.Sprintf("estado %q fuera del catálogo COMPANY_STATES", rec.estado)))
	}
	if rec.servicio != "" && !imp.s.cats.Allowed(entity.CatalogServiceKinds, rec.servicio) {
		fs = append(fs, domain.Error(colTipoServicio, "ENUM",
			fmt.Sprintf("tipo de servicio %q fuera del catálogo SERVICE_KINDS", rec.servicio)))
	}
	if rec.dniRep != "" {
		if err := peru.ValidateDNI(rec.dniRep); err != nil {
			fs = append(fs, domain.Error(colDNIRep, "FORMAT", err.Error()))
		}
	}
	if !domain.HasErrors(fs) {
		if imp.parsed == nil {
			imp.parsed = map[int]empresaRow{}
		}
		imp.parsed[n] = rec
	}
	return rec.ruc, fs
}

func (imp *empresaImporter) apply(ctx context.Context, n int, userID, sourceRef string) (outcome, error) {
	rec := imp.parsed[n]
	now := imp.s.now().UTC()

	existing, err := imp.s.companies.GetByRUCAnyState(ctx, rec.ruc)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// mismo estado inicial que el alta individual
		if rec.estado == "" {
			rec.estado = entity.CompanyInProcess
		}
		c := &entity.Company{
			Base: entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
			RUC:  rec.ruc,
			LegalName: entity.LegalName{
				Canonical: rec.razonSocial,
				Short:     rec.nombreCorto,
			},
			FiscalAddress: rec.direccion,
			LegalRepresentative: entity.LegalRepresentative{
				DNI:        rec.dniRep,
				GivenNames: rec.nombreRep,
			},
			ServiceKind: rec.servicio,
			State:       rec.estado,
			Phone:       rec.telefono,
			Email:       rec.email,
			History: []entity.HistoryEntry{
				historyEvent(now, userID, sourceRef, "alta por carga masiva"),
			},
		}
		if fs := validate.Company(c, imp.s.cats); domain.HasErrors(fs) {
			return outcomeSkipped, domain.NewValidationError(fs)
		}
		if err := imp.s.companies.Create(ctx, c); err != nil {
			return outcomeSkipped, err
		}
		return outcomeCreated, nil
	case err != nil:
		return outcomeSkipped, err
	}

	reactivated := !existing.IsActive
	changed := applyEmpresaFields(existing, rec)
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
	if fs := validate.Company(existing, imp.s.cats); domain.HasErrors(fs) {
		return outcomeSkipped, domain.NewValidationError(fs)
	}
	if err := imp.s.companies.Update(ctx, existing); err != nil {
		return outcomeSkipped, err
	}
	if reactivated {
		return outcomeReactivated, nil
	}
	return outcomeUpdated, nil
}

// applyEmpresaFields aplica solo los campos que la planilla trae con valor;
// una celda vacía no borra el dato existente.
func applyEmpresaFields(c *entity.Company, rec empresaRow) bool {
	changed := false
	set := func(dst *string, v string) {
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}
	set(&c.LegalName.Canonical, rec.razonSocial)
	set(&c.LegalName.Short, rec.nombreCorto)
	set(&c.FiscalAddress, rec.direccion)
	set(&c.Phone, rec.telefono)
	set(&c.Email, rec.email)
	set(&c.ServiceKind, rec.servicio)
	set(&c.State, rec.estado)
	set(&c.LegalRepresentative.DNI, rec.dniRep)
	set(&c.LegalRepresentative.GivenNames, rec.nombreRep)
	return changed
}
