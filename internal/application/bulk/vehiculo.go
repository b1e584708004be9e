package bulk

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// Columnas de la planilla de vehículos.
const (
	colPlaca       = "PLACA"
	colCategoria   = "CATEGORIA"
	colMarca       = "MARCA"
	colModelo      = "MODELO"
	colAnioFab     = "AÑO FABRICACION"
	colAsientos    = "ASIENTOS"
	colPesoNeto    = "PESO NETO"
	colPesoBruto   = "PESO BRUTO"
	colCombustible = "COMBUSTIBLE"
)

type vehiculoRow struct {
	placa       string
	ruc         string
	categoria   string
	marca       string
	modelo      string
	anio        int
	asientos    int
	pesoNeto    float64
	pesoBruto   float64
	combustible string
}

type vehiculoImporter struct {
	s      *Service
	parsed map[int]vehiculoRow
}

func (imp *vehiculoImporter) requiredHeaders() []string {
	return []string{colPlaca, colRUC}
}

func (imp *vehiculoImporter) knownHeaders() []string {
	return []string{
		colPlaca, colRUC, colCategoria, colMarca, colModelo, colAnioFab,
		colAsientos, colPesoNeto, colPesoBruto, colCombustible,
	}
}

func (imp *vehiculoImporter) order(rows [][]string, _ map[string]int) []numberedRow {
	return identityOrder(rows)
}

func (imp *vehiculoImporter) parse(_ context.Context, idx map[string]int, r row, n int) (string, []domain.Finding) {
	var fs []domain.Finding
	rec := vehiculoRow{
		ruc:         r.get(idx, colRUC),
		categoria:   r.get(idx, colCategoria),
		marca:       r.get(idx, colMarca),
		modelo:      r.get(idx, colModelo),
		combustible: r.get(idx, colCombustible),
	}

	placa, err := peru.NormalizePlaca(r.get(idx, colPlaca))
	if err != nil {
		fs = append(fs, domain.Error(colPlaca, "FORMAT", err.Error()))
	}
	rec.placa = placa

	if err := peru.ValidateRUC(rec.ruc); err != nil {
		fs = append(fs, domain.Error(colRUC, "FORMAT", err.Error()))
	}
	if rec.categoria != "" && !imp.s.cats.Allowed(entity.CatalogVehicleCategories, rec.categoria) {
		fs = append(fs, domain.Error(colCategoria, "ENUM",
			fmt.Sprintf("categoría %q fuera del catálogo VEHICLE_CATEGORIES", rec.categoria)))
	}
	if rec.combustible != "" && !imp.s.cats.Allowed(entity.CatalogFuelKinds, rec.combustible) {
		fs = append(fs, domain.Error(colCombustible, "ENUM",
			fmt.Sprintf("combustible %q fuera del catálogo FUEL_KINDS", rec.combustible)))
	}

	rec.anio = parseIntCol(idx, r, colAnioFab, &fs)
	rec.asientos = parseIntCol(idx, r, colAsientos, &fs)
	rec.pesoNeto = parseFloatCol(idx, r, colPesoNeto, &fs)
	rec.pesoBruto = parseFloatCol(idx, r, colPesoBruto, &fs)
	if rec.pesoNeto > 0 && rec.pesoBruto > 0 && rec.pesoBruto < rec.pesoNeto {
		fs = append(fs, domain.Error(colPesoBruto, "CROSS_FIELD",
			"el peso bruto no puede ser menor que el peso neto"))
	}

	if !domain.HasErrors(fs) {
		if imp.parsed == nil {
			imp.parsed = map[int]vehiculoRow{}
		}
		imp.parsed[n] = rec
	}
	return rec.placa, fs
}

func parseIntCol(idx map[string]int, r row, col string, fs *[]domain.Finding) int {
	s := r.get(idx, col)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		*fs = append(*fs, domain.Error(col, "FORMAT", fmt.Sprintf("valor %q inválido", s)))
		return 0
	}
	return v
}

func parseFloatCol(idx map[string]int, r row, col string, fs *[]domain.Finding) float64 {
	s := r.get(idx, col)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		*fs = append(*fs, domain.Error(col, "FORMAT", fmt.Sprintf("valor %q inválido", s)))
		return 0
	}
	return v
}

func (imp *vehiculoImporter) apply(ctx context.Context, n int, userID, sourceRef string) (outcome, error) {
	rec := imp.parsed[n]
	now := imp.s.now().UTC()

	company, err := imp.s.companies.GetByRUC(ctx, rec.ruc)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("empresa con RUC %s: %w", rec.ruc, err)
	}

	existing, err := imp.s.vehicles.GetByPlateAnyState(ctx, rec.placa)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		td := entity.TechnicalData{
			Seats:       rec.asientos,
			NetWeight:   rec.pesoNeto,
			GrossWeight: rec.pesoBruto,
			Fuel:        rec.combustible,
		}
		v := &entity.Vehicle{
			Base:             entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
			Plate:            rec.placa,
			CurrentCompanyID: company.ID,
			Category:         rec.categoria,
			Brand:            rec.marca,
			Model:            rec.modelo,
			ManufactureYear:  rec.anio,
			TechnicalData:    td,
			State:            entity.VehicleActive,
			History: []entity.HistoryEntry{
				historyEvent(now, userID, sourceRef, "alta por carga masiva"),
			},
		}
		if fs := validate.Vehicle(v, imp.s.cats); domain.HasErrors(fs) {
			return outcomeSkipped, domain.NewValidationError(fs)
		}
		vd, err := imp.s.vehicleData.GetByPlate(ctx, rec.placa)
		switch {
		case err == nil:
			v.VehicleDataID = vd.ID
		case errors.Is(err, domain.ErrNotFound):
			vd = &entity.VehicleData{
				Base:            entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
				Plate:           rec.placa,
				Brand:           rec.marca,
				Model:           rec.modelo,
				ManufactureYear: rec.anio,
				TechnicalData:   td,
			}
			if err := imp.s.vehicleData.Create(ctx, vd); err != nil {
				return outcomeSkipped, err
			}
			v.VehicleDataID = vd.ID
		default:
			return outcomeSkipped, err
		}
		if err := imp.s.vehicles.Create(ctx, v); err != nil {
			return outcomeSkipped, err
		}
		company.VehicleIDs = appendUniqueID(company.VehicleIDs, v.ID)
		company.Touch(now)
		if err := imp.s.companies.Update(ctx, company); err != nil {
			return outcomeSkipped, err
		}
		return outcomeCreated, nil
	case err != nil:
		return outcomeSkipped, err
	}

	reactivated := !existing.IsActive
	changed := applyVehiculoFields(existing, rec, company.ID)
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
	if fs := validate.Vehicle(existing, imp.s.cats); domain.HasErrors(fs) {
		return outcomeSkipped, domain.NewValidationError(fs)
	}
	if err := imp.s.vehicles.Update(ctx, existing); err != nil {
		return outcomeSkipped, err
	}
	if reactivated {
		company.VehicleIDs = appendUniqueID(company.VehicleIDs, existing.ID)
		company.Touch(now)
		if err := imp.s.companies.Update(ctx, company); err != nil {
			return outcomeSkipped, err
		}
		return outcomeReactivated, nil
	}
	return outcomeUpdated, nil
}

func applyVehiculoFields(v *entity.Vehicle, rec vehiculoRow, companyID string) bool {
	changed := false
	if v.CurrentCompanyID != companyID {
		v.CurrentCompanyID = companyID
		v.AssignedRouteIDs = nil
		changed = true
	}
	set := func(dst *string, val string) {
		if val != "" && *dst != val {
			*dst = val
			changed = true
		}
	}
	set(&v.Category, rec.categoria)
	set(&v.Brand, rec.marca)
	set(&v.Model, rec.modelo)
	set(&v.TechnicalData.Fuel, rec.combustible)
	if rec.anio != 0 && v.ManufactureYear != rec.anio {
		v.ManufactureYear = rec.anio
		changed = true
	}
	if rec.asientos != 0 && v.TechnicalData.Seats != rec.asientos {
		v.TechnicalData.Seats = rec.asientos
		changed = true
	}
	if rec.pesoNeto != 0 && v.TechnicalData.NetWeight != rec.pesoNeto {
		v.TechnicalData.NetWeight = rec.pesoNeto
		changed = true
	}
	if rec.pesoBruto != 0 && v.TechnicalData.GrossWeight != rec.pesoBruto {
		v.TechnicalData.GrossWeight = rec.pesoBruto
		changed = true
	}
	return changed
}
