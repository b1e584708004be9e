package validate

import (
	"fmt"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// Códigos de hallazgo. La capa HTTP y el reporte de carga masiva los exponen
// tal cual para que el cliente pueda tratarlos programáticamente.
const (
	CodeRequired      = "REQUIRED"
	CodeFormat        = "FORMAT"
	CodeEnum          = "ENUM"
	CodeRange         = "RANGE"
	CodeCrossField    = "CROSS_FIELD"
	CodeVigencia      = "VIGENCIA"
	CodeVigenciaAjust = "VIGENCIA_ADJUSTED"
)

// Company valida la empresa contra forma, formato y catálogos. Acumula todos
// los hallazgos; nunca corta en el primero.
func Company(c *entity.Company, cats *Catalogs) []domain.Finding {
	var fs []domain.Finding
	if err := peru.ValidateRUC(c.RUC); err != nil {
		fs = append(fs, domain.Error("ruc", CodeFormat, err.Error()))
	}
	if c.LegalName.Canonical == "" {
		fs = append(fs, domain.Error("legalName.canonical", CodeRequired, "la razón social es obligatoria"))
	}
	if c.State == "" {
		fs = append(fs, domain.Error("state", CodeRequired, "el estado es obligatorio"))
	} else if !cats.Allowed(entity.CatalogCompanyStates, c.State) {
		fs = append(fs, domain.Error("state", CodeEnum,
			fmt.Sprintf("estado %q fuera del catálogo COMPANY_STATES", c.State)))
	}
	if c.ServiceKind != "" && !cats.Allowed(entity.CatalogServiceKinds, c.ServiceKind) {
		fs = append(fs, domain.Error("serviceKind", CodeEnum,
			fmt.Sprintf("tipo de servicio %q fuera del catálogo SERVICE_KINDS", c.ServiceKind)))
	}
	if c.LegalRepresentative.DNI != "" {
		if err := peru.ValidateDNI(c.LegalRepresentative.DNI); err != nil {
			fs = append(fs, domain.Error("legalRepresentative.dni", CodeFormat, err.Error()))
		}
	}
	return fs
}

// Resolution valida la resolución: forma del número, tipo, trámite y la
// aritmética de vigencia. Las reglas cruzadas con la padre (misma empresa,
// padre vigente) las aplica el caso de uso porque requieren lecturas.
func Resolution(r *entity.Resolution) []domain.Finding {
	var fs []domain.Finding
	if r.Number == "" {
		fs = append(fs, domain.Error("number", CodeRequired, "el número de resolución es obligatorio"))
	} else if !entity.ResolutionNumberRx.MatchString(r.Number) {
		fs = append(fs, domain.Error("number", CodeFormat,
			fmt.Sprintf("número %q no cumple la forma R-NNNN-YYYY", r.Number)))
	}
	if r.CompanyID == "" {
		fs = append(fs, domain.Error("companyId", CodeRequired, "la empresa es obligatoria"))
	}
	switch r.Kind {
	case entity.ResolutionParent:
		fs = append(fs, parentVigencia(r)...)
		if r.ParentID != "" {
			fs = append(fs, domain.Error("parentId", CodeCrossField,
				"una resolución padre no referencia a otra padre"))
		}
	case entity.ResolutionChild:
		if r.ParentID == "" {
			fs = append(fs, domain.Error("parentId", CodeRequired,
				"una resolución hija requiere la padre que modifica"))
		}
		if r.ValidityYears != 0 {
			fs = append(fs, domain.Error("validityYears", CodeCrossField,
				"la vigencia en años solo aplica a resoluciones padre"))
		}
	default:
		fs = append(fs, domain.Error("kind", CodeEnum,
			fmt.Sprintf("tipo %q desconocido (PARENT o CHILD)", r.Kind)))
	}
	if !validProcedure(r.ProcedureKind) {
		fs = append(fs, domain.Error("procedureKind", CodeEnum,
			fmt.Sprintf("tipo de trámite %q desconocido", r.ProcedureKind)))
	}
	if !validResolutionState(r.State) {
		fs = append(fs, domain.Error("state", CodeEnum,
			fmt.Sprintf("estado %q desconocido", r.State)))
	}
	return fs
}

// parentVigencia aplica la aritmética de vigencia de una padre: años en
// {4,10} y fin = inicio + años − 1 día. Un fin declarado que difiere del
// calculado genera WARNING y siempre gana el valor calculado; la tolerancia
// de ±2 días solo distingue el ajuste menor de la discrepancia franca.
func parentVigencia(r *entity.Resolution) []domain.Finding {
	var fs []domain.Finding
	if !peru.VigenciaValida(r.ValidityYears) {
		fs = append(fs, domain.Error("validityYears", CodeRange,
			fmt.Sprintf("vigencia de %d años no admitida (4 o 10)", r.ValidityYears)))
		return fs
	}
	if r.ValidityStart.IsZero() {
		fs = append(fs, domain.Error("validityStart", CodeRequired,
			"el inicio de vigencia es obligatorio"))
		return fs
	}
	want, err := peru.FinVigencia(r.ValidityStart, r.ValidityYears)
	if err != nil {
		fs = append(fs, domain.Error("validityYears", CodeRange, err.Error()))
		return fs
	}
	switch {
	case r.ValidityEnd.IsZero():
		// se deriva; nada que objetar
	case r.ValidityEnd.Equal(want):
	case peru.FinDeclaradoCoincide(want, r.ValidityEnd):
		fs = append(fs, domain.Warning("validityEnd", CodeVigenciaAjust,
			fmt.Sprintf("fin declarado %s ajustado al calculado %s",
				peru.FormatFecha(r.ValidityEnd), peru.FormatFecha(want))))
	default:
		fs = append(fs, domain.Warning("validityEnd", CodeVigencia,
			fmt.Sprintf("fin declarado %s no coincide con el calculado %s; se usa el calculado",
				peru.FormatFecha(r.ValidityEnd), peru.FormatFecha(want))))
	}
	return fs
}

// Route valida la ruta: código, extremos distintos e itinerario coherente.
func Route(rt *entity.Route) []domain.Finding {
	var fs []domain.Finding
	if rt.Code == "" {
		fs = append(fs, domain.Error("code", CodeRequired, "el código de ruta es obligatorio"))
	}
	if rt.ResolutionID == "" {
		fs = append(fs, domain.Error("resolutionId", CodeRequired, "la resolución es obligatoria"))
	}
	if rt.Origin.LocalityID == "" {
		fs = append(fs, domain.Error("origin.localityId", CodeRequired, "el origen es obligatorio"))
	}
	if rt.Destination.LocalityID == "" {
		fs = append(fs, domain.Error("destination.localityId", CodeRequired, "el destino es obligatorio"))
	}
	if rt.Origin.LocalityID != "" && rt.Origin.LocalityID == rt.Destination.LocalityID {
		fs = append(fs, domain.Error("destination.localityId", CodeCrossField,
			"origen y destino no pueden ser la misma localidad"))
	}
	seenOrder := map[int]bool{}
	seenLoc := map[string]bool{}
	for i, stop := range rt.Itinerary {
		field := fmt.Sprintf("itinerary[%d]", i)
		if stop.LocalityID == "" {
			fs = append(fs, domain.Error(field+".localityId", CodeRequired, "la escala requiere localidad"))
			continue
		}
		if seenOrder[stop.Order] {
			fs = append(fs, domain.Error(field+".order", CodeCrossField,
				fmt.Sprintf("orden %d repetido en el itinerario", stop.Order)))
		}
		if seenLoc[stop.LocalityID] {
			fs = append(fs, domain.Error(field+".localityId", CodeCrossField,
				"localidad repetida en el itinerario"))
		}
		seenOrder[stop.Order] = true
		seenLoc[stop.LocalityID] = true
	}
	if rt.DistanceKm.IsNegative() {
		fs = append(fs, domain.Error("distanceKm", CodeRange, "la distancia no puede ser negativa"))
	}
	if rt.Fare.IsNegative() {
		fs = append(fs, domain.Error("fare", CodeRange, "la tarifa no puede ser negativa"))
	}
	return fs
}

// Vehicle valida el vehículo contra formato de placa, catálogos y pesos.
func Vehicle(v *entity.Vehicle, cats *Catalogs) []domain.Finding {
	var fs []domain.Finding
	if _, err := peru.NormalizePlaca(v.Plate); err != nil {
		fs = append(fs, domain.Error("plate", CodeFormat, err.Error()))
	}
	if v.CurrentCompanyID == "" {
		fs = append(fs, domain.Error("currentCompanyId", CodeRequired, "la empresa es obligatoria"))
	}
	if v.Category != "" && !cats.Allowed(entity.CatalogVehicleCategories, v.Category) {
		fs = append(fs, domain.Error("category", CodeEnum,
			fmt.Sprintf("categoría %q fuera del catálogo VEHICLE_CATEGORIES", v.Category)))
	}
	if v.TechnicalData.Fuel != "" && !cats.Allowed(entity.CatalogFuelKinds, v.TechnicalData.Fuel) {
		fs = append(fs, domain.Error("technicalData.fuel", CodeEnum,
			fmt.Sprintf("combustible %q fuera del catálogo FUEL_KINDS", v.TechnicalData.Fuel)))
	}
	td := v.TechnicalData
	if td.GrossWeight != 0 && td.NetWeight != 0 && td.GrossWeight < td.NetWeight {
		fs = append(fs, domain.Error("technicalData.grossWeight", CodeCrossField,
			"el peso bruto no puede ser menor que el peso neto"))
	}
	if v.ManufactureYear != 0 {
		year := time.Now().Year()
		if v.ManufactureYear < 1950 || v.ManufactureYear > year+1 {
			fs = append(fs, domain.Error("manufactureYear", CodeRange,
				fmt.Sprintf("año de fabricación %d fuera de rango", v.ManufactureYear)))
		}
	}
	return fs
}

// Driver valida el conductor: DNI, licencia y vencimiento.
func Driver(d *entity.Driver) []domain.Finding {
	var fs []domain.Finding
	if err := peru.ValidateDNI(d.DNI); err != nil {
		fs = append(fs, domain.Error("dni", CodeFormat, err.Error()))
	}
	if d.Surnames == "" {
		fs = append(fs, domain.Error("surnames", CodeRequired, "los apellidos son obligatorios"))
	}
	if d.GivenNames == "" {
		fs = append(fs, domain.Error("givenNames", CodeRequired, "los nombres son obligatorios"))
	}
	if d.LicenseExpiry != nil && d.LicenseExpiry.Before(time.Now()) {
		fs = append(fs, domain.Warning("licenseExpiry", CodeRange,
			"la licencia de conducir está vencida"))
	}
	return fs
}

// Locality valida la localidad: ubigeo de 6 dígitos y nivel conocido.
func Locality(l *entity.Locality) []domain.Finding {
	var fs []domain.Finding
	if !entity.UbigeoRx.MatchString(l.Ubigeo) {
		fs = append(fs, domain.Error("ubigeo", CodeFormat,
			fmt.Sprintf("ubigeo %q no es un código INEI de 6 dígitos", l.Ubigeo)))
	}
	if l.Name == "" {
		fs = append(fs, domain.Error("name", CodeRequired, "el nombre es obligatorio"))
	}
	if !contains(entity.LocalityLevels, l.Level) {
		fs = append(fs, domain.Error("level", CodeEnum,
			fmt.Sprintf("nivel %q desconocido", l.Level)))
	}
	return fs
}

// Expediente valida la carpeta de trámite.
func Expediente(e *entity.Expediente) []domain.Finding {
	var fs []domain.Finding
	if e.Number == "" {
		fs = append(fs, domain.Error("number", CodeRequired, "el número de cargo es obligatorio"))
	} else if !entity.ExpedienteNumberRx.MatchString(e.Number) {
		fs = append(fs, domain.Error("number", CodeFormat,
			fmt.Sprintf("número %q no cumple la forma E-NNNN-YYYY", e.Number)))
	}
	if e.Subject == "" {
		fs = append(fs, domain.Error("subject", CodeRequired, "el asunto es obligatorio"))
	}
	if e.ApplicantRUC != "" {
		if err := peru.ValidateRUC(e.ApplicantRUC); err != nil {
			fs = append(fs, domain.Error("applicantRuc", CodeFormat, err.Error()))
		}
	}
	if !validExpedienteState(e.State) {
		fs = append(fs, domain.Error("state", CodeEnum,
			fmt.Sprintf("estado %q desconocido", e.State)))
	}
	return fs
}

func validProcedure(kind string) bool { return contains(entity.ProcedureKinds, kind) }

func validResolutionState(s string) bool {
	switch s {
	case entity.ResolutionInForce, entity.ResolutionExpired,
		entity.ResolutionSuspended, entity.ResolutionAnnulled:
		return true
	}
	return false
}

func validExpedienteState(s string) bool {
	switch s {
	case entity.ExpedienteRegistered, entity.ExpedienteInProcess,
		entity.ExpedienteApproved, entity.ExpedienteRejected, entity.ExpedienteArchived:
		return true
	}
	return false
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
