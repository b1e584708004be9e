package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// Columnas de la planilla de rutas. Origen, destino e itinerario vienen como
// códigos de ubigeo; el itinerario separa escalas con ";" en orden.
const (
	colCodigoRuta   = "CODIGO"
	colNombreRuta   = "NOMBRE"
	colOrigenUbigeo = "ORIGEN UBIGEO"
	colDestUbigeo   = "DESTINO UBIGEO"
	colItinerario   = "ITINERARIO"
	colFrecuencia   = "FRECUENCIA"
	colDistanciaKm  = "DISTANCIA KM"
	colTarifa       = "TARIFA"
)

type rutaRow struct {
	resolucion string
	ruc        string // opcional, contraste contra la empresa de la resolución
	codigo     string
	nombre     string
	origen     string
	destino    string
	itinerario []string
	frecuencia string
	distancia  decimal.Decimal
	tarifa     decimal.Decimal
}

type rutaImporter struct {
	s      *Service
	parsed map[int]rutaRow
}

func (imp *rutaImporter) requiredHeaders() []string {
	return []string{colNroResolucion, colCodigoRuta, colOrigenUbigeo, colDestUbigeo}
}

func (imp *rutaImporter) knownHeaders() []string {
	return []string{
		colRUC, colNroResolucion, colCodigoRuta, colNombreRuta,
		colOrigenUbigeo, colDestUbigeo, colItinerario, colFrecuencia,
		colDistanciaKm, colTarifa,
	}
}

func (imp *rutaImporter) order(rows [][]string, _ map[string]int) []numberedRow {
	return identityOrder(rows)
}

func (imp *rutaImporter) parse(_ context.Context, idx map[string]int, r row, n int) (string, []domain.Finding) {
	var fs []domain.Finding
	rec := rutaRow{
		resolucion: r.get(idx, colNroResolucion),
		ruc:        r.get(idx, colRUC),
		codigo:     r.get(idx, colCodigoRuta),
		nombre:     r.get(idx, colNombreRuta),
		origen:     r.get(idx, colOrigenUbigeo),
		destino:    r.get(idx, colDestUbigeo),
		frecuencia: r.get(idx, colFrecuencia),
	}
	key := rec.resolucion + "/" + rec.codigo

	if !entity.ResolutionNumberRx.MatchString(rec.resolucion) {
		fs = append(fs, domain.Error(colNroResolucion, "FORMAT",
			fmt.Sprintf("número %q no cumple la forma R-NNNN-YYYY", rec.resolucion)))
	}
	if rec.codigo == "" {
		fs = append(fs, domain.Error(colCodigoRuta, "REQUIRED", "el código de ruta es obligatorio"))
	}
	if rec.ruc != "" {
		if err := peru.ValidateRUC(rec.ruc); err != nil {
			fs = append(fs, domain.Error(colRUC, "FORMAT", err.Error()))
		}
	}
	for _, pair := range []struct{ col, v string }{
		{colOrigenUbigeo, rec.origen}, {colDestUbigeo, rec.destino},
	} {
		if !entity.UbigeoRx.MatchString(pair.v) {
			fs = append(fs, domain.Error(pair.col, "FORMAT",
				fmt.Sprintf("ubigeo %q no es un código INEI de 6 dígitos", pair.v)))
		}
	}
	if rec.origen != "" && rec.origen == rec.destino {
		fs = append(fs, domain.Error(colDestUbigeo, "CROSS_FIELD",
			"origen y destino no pueden ser la misma localidad"))
	}
	if s := r.get(idx, colItinerario); s != "" {
		for _, u := range strings.Split(s, ";") {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			if !entity.UbigeoRx.MatchString(u) {
				fs = append(fs, domain.Error(colItinerario, "FORMAT",
					fmt.Sprintf("escala %q no es un ubigeo de 6 dígitos", u)))
				continue
			}
			rec.itinerario = append(rec.itinerario, u)
		}
	}
	if s := r.get(idx, colDistanciaKm); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			fs = append(fs, domain.Error(colDistanciaKm, "FORMAT",
				fmt.Sprintf("distancia %q inválida", s)))
		} else {
			rec.distancia = d
		}
	}
	if s := r.get(idx, colTarifa); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			fs = append(fs, domain.Error(colTarifa, "FORMAT",
				fmt.Sprintf("tarifa %q inválida", s)))
		} else {
			rec.tarifa = d
		}
	}

	if !domain.HasErrors(fs) {
		if imp.parsed == nil {
			imp.parsed = map[int]rutaRow{}
		}
		imp.parsed[n] = rec
	}
	return key, fs
}

func (imp *rutaImporter) apply(ctx context.Context, n int, userID, sourceRef string) (outcome, error) {
	rec := imp.parsed[n]
	now := imp.s.now().UTC()

	res, err := imp.s.resolutions.GetByNumber(ctx, rec.resolucion)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("resolución %s: %w", rec.resolucion, err)
	}
	company, err := imp.s.companies.GetByID(ctx, res.CompanyID)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("empresa de la resolución %s: %w", res.Number, err)
	}
	if rec.ruc != "" && company.RUC != rec.ruc {
		return outcomeSkipped, fmt.Errorf("el RUC %s no corresponde a la empresa de la resolución %s (%s)",
			rec.ruc, res.Number, company.RUC)
	}
	origin, err := imp.routePoint(ctx, rec.origen)
	if err != nil {
		return outcomeSkipped, err
	}
	dest, err := imp.routePoint(ctx, rec.destino)
	if err != nil {
		return outcomeSkipped, err
	}
	itinerary := make([]entity.ItineraryStop, 0, len(rec.itinerario))
	for i, u := range rec.itinerario {
		loc, err := imp.s.localities.GetByUbigeo(ctx, u)
		if err != nil {
			return outcomeSkipped, fmt.Errorf("escala con ubigeo %s: %w", u, err)
		}
		itinerary = append(itinerary, entity.ItineraryStop{
			LocalityID: loc.ID, Name: loc.Name, Order: i + 1,
		})
	}

	existing, err := imp.s.routes.GetByCodeAnyState(ctx, res.ID, rec.codigo)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		rt := &entity.Route{
			Base:         entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
			Code:         rec.codigo,
			Name:         rec.nombre,
			ResolutionID: res.ID,
			Origin:       origin,
			Destination:  dest,
			Itinerary:    itinerary,
			Company:      company.Ref(),
			Resolution:   res.Ref(),
			Frequency:    entity.Frequency{Description: rec.frecuencia},
			DistanceKm:   rec.distancia,
			Fare:         rec.tarifa,
			State:        entity.RouteActive,
			History: []entity.HistoryEntry{
				historyEvent(now, userID, sourceRef, "alta por carga masiva"),
			},
		}
		if rt.Name == "" {
			rt.Name = origin.Name + " - " + dest.Name
		}
		if fs := validate.Route(rt); domain.HasErrors(fs) {
			return outcomeSkipped, domain.NewValidationError(fs)
		}
		if err := imp.s.routes.Create(ctx, rt); err != nil {
			return outcomeSkipped, err
		}
		company.RouteIDs = appendUniqueID(company.RouteIDs, rt.ID)
		company.Touch(now)
		if err := imp.s.companies.Update(ctx, company); err != nil {
			return outcomeSkipped, err
		}
		return outcomeCreated, nil
	case err != nil:
		return outcomeSkipped, err
	}

	reactivated := !existing.IsActive
	changed := applyRutaFields(existing, rec, origin, dest, itinerary)
	// los snapshots se refrescan en toda escritura
	if existing.Company != company.Ref() || existing.Resolution != res.Ref() {
		existing.Company = company.Ref()
		existing.Resolution = res.Ref()
		changed = true
	}
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
	if err := imp.s.routes.Update(ctx, existing); err != nil {
		return outcomeSkipped, err
	}
	if reactivated {
		company.RouteIDs = appendUniqueID(company.RouteIDs, existing.ID)
		company.Touch(now)
		if err := imp.s.companies.Update(ctx, company); err != nil {
			return outcomeSkipped, err
		}
		return outcomeReactivated, nil
	}
	return outcomeUpdated, nil
}

func (imp *rutaImporter) routePoint(ctx context.Context, ubigeo string) (entity.RoutePoint, error) {
	loc, err := imp.s.localities.GetByUbigeo(ctx, ubigeo)
	if err != nil {
		return entity.RoutePoint{}, fmt.Errorf("localidad con ubigeo %s: %w", ubigeo, err)
	}
	return entity.RoutePoint{LocalityID: loc.ID, Name: loc.Name}, nil
}

func applyRutaFields(rt *entity.Route, rec rutaRow, origin, dest entity.RoutePoint, itinerary []entity.ItineraryStop) bool {
	changed := false
	if rec.nombre != "" && rt.Name != rec.nombre {
		rt.Name = rec.nombre
		changed = true
	}
	if rt.Origin != origin {
		rt.Origin = origin
		changed = true
	}
	if rt.Destination != dest {
		rt.Destination = dest
		changed = true
	}
	if len(itinerary) > 0 && !sameItinerary(rt.Itinerary, itinerary) {
		rt.Itinerary = itinerary
		changed = true
	}
	if rec.frecuencia != "" && rt.Frequency.Description != rec.frecuencia {
		rt.Frequency = entity.Frequency{Description: rec.frecuencia}
		changed = true
	}
	if !rec.distancia.IsZero() && !rt.DistanceKm.Equal(rec.distancia) {
		rt.DistanceKm = rec.distancia
		changed = true
	}
	if !rec.tarifa.IsZero() && !rt.Fare.Equal(rec.tarifa) {
		rt.Fare = rec.tarifa
		changed = true
	}
	return changed
}

func sameItinerary(a, b []entity.ItineraryStop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
