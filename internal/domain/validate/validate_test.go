package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func findingFor(fs []domain.Finding, field string) *domain.Finding {
	for i := range fs {
		if fs[i].Field == field {
			return &fs[i]
		}
	}
	return nil
}

func TestCompanyAcumulaHallazgos(t *testing.T) {
	cats := NewCatalogs()
	c := &entity.Company{
		RUC:         "123", // corto
		State:       "INVENTADO",
		ServiceKind: "PASAJEROS",
	}
	fs := Company(c, cats)
	assert.True(t, domain.HasErrors(fs))
	assert.NotNil(t, findingFor(fs, "ruc"))
	assert.NotNil(t, findingFor(fs, "legalName.canonical"))
	assert.NotNil(t, findingFor(fs, "state"))
	assert.Nil(t, findingFor(fs, "serviceKind"))
}

func TestCompanyValida(t *testing.T) {
	cats := NewCatalogs()
	c := &entity.Company{
		RUC:       "20448394834",
		LegalName: entity.LegalName{Canonical: "TRANSPORTES TITICACA S.A.C."},
		State:     entity.CompanyAuthorized,
	}
	assert.Empty(t, Company(c, cats))
}

func TestCatalogoRedefinido(t *testing.T) {
	cats := NewCatalogs()
	cats.Replace(entity.CatalogServiceKinds, []string{"PASAJEROS"})
	c := &entity.Company{
		RUC:         "20448394834",
		LegalName:   entity.LegalName{Canonical: "X"},
		State:       entity.CompanyAuthorized,
		ServiceKind: "TURISTICO",
	}
	fs := Company(c, cats)
	require.NotNil(t, findingFor(fs, "serviceKind"))
	assert.Equal(t, CodeEnum, findingFor(fs, "serviceKind").Code)
}

func TestResolutionPadreVigencia(t *testing.T) {
	base := entity.Resolution{
		Number:        "R-0123-2024",
		CompanyID:     "emp-1",
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureNewAuthorization,
		State:         entity.ResolutionInForce,
		ValidityStart: date(2024, 3, 20),
		ValidityYears: 10,
	}

	t.Run("fin exacto", func(t *testing.T) {
		r := base
		r.ValidityEnd = date(2034, 3, 19)
		assert.Empty(t, Resolution(&r))
	})

	t.Run("fin dentro de tolerancia genera warning", func(t *testing.T) {
		r := base
		r.ValidityEnd = date(2034, 3, 20)
		fs := Resolution(&r)
		assert.False(t, domain.HasErrors(fs))
		f := findingFor(fs, "validityEnd")
		require.NotNil(t, f)
		assert.Equal(t, domain.SeverityWarning, f.Severity)
		assert.Equal(t, CodeVigenciaAjust, f.Code)
	})

	t.Run("fin fuera de tolerancia advierte y gana el calculado", func(t *testing.T) {
		r := base
		r.ValidityEnd = date(2034, 3, 25)
		fs := Resolution(&r)
		assert.False(t, domain.HasErrors(fs))
		f := findingFor(fs, "validityEnd")
		require.NotNil(t, f)
		assert.Equal(t, domain.SeverityWarning, f.Severity)
		assert.Equal(t, CodeVigencia, f.Code)
	})

	t.Run("años no admitidos", func(t *testing.T) {
		r := base
		r.ValidityYears = 7
		fs := Resolution(&r)
		assert.Equal(t, CodeRange, findingFor(fs, "validityYears").Code)
	})
}

func TestResolutionHija(t *testing.T) {
	r := entity.Resolution{
		Number:        "R-0456-2025",
		CompanyID:     "emp-1",
		Kind:          entity.ResolutionChild,
		ProcedureKind: entity.ProcedureRenewal,
		State:         entity.ResolutionInForce,
	}
	fs := Resolution(&r)
	require.NotNil(t, findingFor(fs, "parentId"))

	r.ParentID = "res-padre"
	r.ValidityYears = 4 // no aplica en hijas
	fs = Resolution(&r)
	assert.Nil(t, findingFor(fs, "parentId"))
	require.NotNil(t, findingFor(fs, "validityYears"))
	assert.Equal(t, CodeCrossField, findingFor(fs, "validityYears").Code)
}

func TestResolutionNumeroMalformado(t *testing.T) {
	r := entity.Resolution{
		Number:        "RES-12-2024",
		CompanyID:     "emp-1",
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureNewAuthorization,
		State:         entity.ResolutionInForce,
		ValidityStart: date(2024, 1, 1),
		ValidityYears: 4,
	}
	fs := Resolution(&r)
	assert.Equal(t, CodeFormat, findingFor(fs, "number").Code)
}

func TestRouteExtremosEItinerario(t *testing.T) {
	rt := &entity.Route{
		Code:         "RT-01",
		ResolutionID: "res-1",
		Origin:       entity.RoutePoint{LocalityID: "loc-a", Name: "Puno"},
		Destination:  entity.RoutePoint{LocalityID: "loc-a", Name: "Puno"},
		Itinerary: []entity.ItineraryStop{
			{LocalityID: "loc-b", Name: "Juliaca", Order: 1},
			{LocalityID: "loc-b", Name: "Juliaca", Order: 1},
		},
	}
	fs := Route(rt)
	assert.True(t, domain.HasErrors(fs))
	assert.NotNil(t, findingFor(fs, "destination.localityId"))
	assert.NotNil(t, findingFor(fs, "itinerary[1].order"))
	assert.NotNil(t, findingFor(fs, "itinerary[1].localityId"))
}

func TestVehiclePesos(t *testing.T) {
	cats := NewCatalogs()
	v := &entity.Vehicle{
		Plate:            "V5G-889",
		CurrentCompanyID: "emp-1",
		Category:         "M3",
		TechnicalData:    entity.TechnicalData{NetWeight: 12.5, GrossWeight: 9.0, Fuel: "DIESEL"},
	}
	fs := Vehicle(v, cats)
	require.NotNil(t, findingFor(fs, "technicalData.grossWeight"))

	v.TechnicalData.GrossWeight = 18.0
	assert.Empty(t, Vehicle(v, cats))
}

func TestDriverLicenciaVencida(t *testing.T) {
	past := date(2020, 1, 1)
	d := &entity.Driver{
		DNI:           "40123456",
		GivenNames:    "JUAN",
		Surnames:      "QUISPE MAMANI",
		LicenseExpiry: &past,
	}
	fs := Driver(d)
	assert.False(t, domain.HasErrors(fs))
	f := findingFor(fs, "licenseExpiry")
	require.NotNil(t, f)
	assert.Equal(t, domain.SeverityWarning, f.Severity)
}

func TestLocalityUbigeo(t *testing.T) {
	l := &entity.Locality{Ubigeo: "21010", Name: "Puno", Level: "DISTRICT"}
	fs := Locality(l)
	assert.NotNil(t, findingFor(fs, "ubigeo"))

	l.Ubigeo = "210101"
	assert.Empty(t, Locality(l))
}

func TestExpedienteNumero(t *testing.T) {
	e := &entity.Expediente{
		Number:  "E-0042-2025",
		Subject: "Renovación de autorización",
		State:   entity.ExpedienteRegistered,
	}
	assert.Empty(t, Expediente(e))

	e.Number = "EXP-42"
	fs := Expediente(e)
	assert.Equal(t, CodeFormat, findingFor(fs, "number").Code)
}
