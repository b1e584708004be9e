package bulk_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/bulk"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/docstore"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/registry"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

const testUser = "funcionario-1"

type env struct {
	ctx         context.Context
	svc         *bulk.Service
	companies   *registry.CompanyRepo
	resolutions *registry.ResolutionRepo
	routes      *registry.RouteRepo
	vehicles    *registry.VehicleRepo
	localities  *registry.LocalityRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := docstore.NewMemory()
	cats := validate.NewCatalogs()
	log := logger.New(logger.Config{Level: "error"})

	companies := registry.NewCompanyRepo(st)
	resolutions := registry.NewResolutionRepo(st)
	routes := registry.NewRouteRepo(st)
	vehicles := registry.NewVehicleRepo(st)
	vehicleData := registry.NewVehicleDataRepo(st)
	localities := registry.NewLocalityRepo(st)

	return &env{
		ctx:         context.Background(),
		svc:         bulk.NewService(companies, resolutions, routes, vehicles, vehicleData, localities, cats, log),
		companies:   companies,
		resolutions: resolutions,
		routes:      routes,
		vehicles:    vehicles,
		localities:  localities,
	}
}

func mustLocality(t *testing.T, e *env, ubigeo, name string) *entity.Locality {
	t.Helper()
	l := &entity.Locality{
		Base:   entity.Base{ID: uuid.New().String(), CreatedAt: time.Now().UTC(), IsActive: true},
		Ubigeo: ubigeo,
		Name:   name,
		Level:  entity.LevelDistrict,
	}
	require.NoError(t, e.localities.Create(e.ctx, l))
	return l
}

func empresasTable(rows [][]string) bulk.Table {
	return bulk.Table{
		Name:    "EMPRESAS",
		Headers: []string{"RUC", "RAZON SOCIAL", "TELEFONO", "ESTADO"},
		Rows:    rows,
	}
}

func TestEmpresasValidate_NoEscribe(t *testing.T) {
	e := newEnv(t)

	table := empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "051-123456", "AUTHORIZED"},
		{"123", "RUC Malo S.A.C.", "", ""},
	})

	report, err := e.svc.Validate(e.ctx, bulk.DatasetEmpresas, table)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 2, report.Errors[0].Row)
	assert.Zero(t, report.Created)

	// la validación no toca el almacén
	_, err = e.companies.GetByRUC(e.ctx, "20123456789")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmpresasApply_EsIdempotente(t *testing.T) {
	e := newEnv(t)

	table := empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "051-123456", ""},
	})

	report, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, table, testUser, "padron_2024.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	c, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	// sin estado declarado el alta masiva arranca en trámite, igual que el
	// alta individual
	assert.Equal(t, entity.CompanyInProcess, c.State)
	assert.Equal(t, "051-123456", c.Phone)
	require.Len(t, c.History, 1)
	assert.Equal(t, "padron_2024.xlsx", c.History[0].SourceDocumentRef)

	// la misma planilla otra vez no crea ni modifica
	again, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, table, testUser, "padron_2024.xlsx")
	require.NoError(t, err)
	assert.Zero(t, again.Created)
	assert.Zero(t, again.Updated)
	assert.Equal(t, 1, again.Skipped)
}

func TestEmpresasApply_ReactivaDadaDeBaja(t *testing.T) {
	e := newEnv(t)

	table := empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "", ""},
	})
	_, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, table, testUser, "padron_2024.xlsx")
	require.NoError(t, err)

	c, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	c.IsActive = false
	require.NoError(t, e.companies.Update(e.ctx, c))

	report, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, table, testUser, "padron_2025.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Reactivated)

	got, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	// la reactivación conserva el id original
	assert.Equal(t, c.ID, got.ID)
}

func TestEmpresasValidate_ColumnaFaltante(t *testing.T) {
	e := newEnv(t)

	table := bulk.Table{
		Headers: []string{"RUC"},
		Rows:    [][]string{{"20123456789"}},
	}
	report, err := e.svc.Validate(e.ctx, bulk.DatasetEmpresas, table)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "MISSING_COLUMN", report.Errors[0].Findings[0].Code)
}

func TestEmpresasValidate_ColumnaDesconocidaAdvierte(t *testing.T) {
	e := newEnv(t)

	table := bulk.Table{
		Headers: []string{"RUC", "RAZON SOCIAL", "GERENTE GENERAL"},
		Rows:    [][]string{{"20123456789", "Transportes Altiplano S.A.C.", "J. Quispe"}},
	}
	report, err := e.svc.Validate(e.ctx, bulk.DatasetEmpresas, table)
	require.NoError(t, err)

	// la columna extraña no frena la carga, solo queda advertida
	assert.Equal(t, 1, report.Processed)
	assert.Zero(t, report.Failed)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, 0, report.Warnings[0].Row)
	assert.Equal(t, "UNKNOWN_COLUMN", report.Warnings[0].Findings[0].Code)
}

func TestDatasetDesconocido(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Validate(e.ctx, "terminales", bulk.Table{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func resolucionesTable(rows [][]string) bulk.Table {
	return bulk.Table{
		Name: "RESOLUCIONES",
		Headers: []string{
			"NRO RESOLUCION", "RUC", "FECHA EMISION", "INICIO VIGENCIA",
			"AÑOS", "FIN VIGENCIA", "TIPO TRAMITE", "RESOLUCION PADRE",
		},
		Rows: rows,
	}
}

func TestResolucionesApply_HijaAntesQueLaPadre(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "", ""},
	}), testUser, "padron.xlsx")
	require.NoError(t, err)

	// la hija aparece primero en la planilla; el orden de carga la posterga
	table := resolucionesTable([][]string{
		{"R-0201-2024", "20123456789", "10/06/2024", "", "", "", "FLEET_INCREASE", "R-0200-2024"},
		{"R-0200-2024", "20123456789", "20/03/2024", "20/03/2024", "10", "", "NEW_AUTHORIZATION", ""},
	})
	report, err := e.svc.Apply(e.ctx, bulk.DatasetResoluciones, table, testUser, "resoluciones.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Zero(t, report.Failed)

	parent, err := e.resolutions.GetByNumber(e.ctx, "R-0200-2024")
	require.NoError(t, err)
	child, err := e.resolutions.GetByNumber(e.ctx, "R-0201-2024")
	require.NoError(t, err)

	assert.Equal(t, parent.ID, child.ParentID)
	assert.Equal(t, parent.ValidityStart, child.ValidityStart)
	assert.Equal(t, parent.ValidityEnd, child.ValidityEnd)
	assert.Contains(t, parent.ChildIDs, child.ID)
}

func TestResolucionesApply_TipoDeclaradoYEstado(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "", ""},
	}), testUser, "padron.xlsx")
	require.NoError(t, err)

	table := bulk.Table{
		Name: "RESOLUCIONES",
		Headers: []string{
			"NRO RESOLUCION", "RUC", "FECHA EMISION", "INICIO VIGENCIA",
			"AÑOS", "TIPO", "TIPO TRAMITE", "RESOLUCION PADRE", "ESTADO",
		},
		Rows: [][]string{
			// TIPO declarado CHILD sin padre: contradice la columna RESOLUCION PADRE
			{"R-0500-2024", "20123456789", "20/03/2024", "20/03/2024", "10", "CHILD", "NEW_AUTHORIZATION", "", ""},
			// el estado declarado se respeta al crear
			{"R-0501-2014", "20123456789", "20/03/2014", "20/03/2014", "4", "PARENT", "NEW_AUTHORIZATION", "", "EXPIRED"},
		},
	}
	report, err := e.svc.Apply(e.ctx, bulk.DatasetResoluciones, table, testUser, "resoluciones.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Failed)
	require.NotEmpty(t, report.Errors)
	assert.Equal(t, "CROSS_FIELD", report.Errors[0].Findings[0].Code)

	r, err := e.resolutions.GetByNumber(e.ctx, "R-0501-2014")
	require.NoError(t, err)
	assert.Equal(t, entity.ResolutionExpired, r.State)
}

func TestResolucionesApply_FinDeclarado(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "", ""},
	}), testUser, "padron.xlsx")
	require.NoError(t, err)

	table := resolucionesTable([][]string{
		// fin corrido un día: pasa con advertencia y gana el calculado
		{"R-0300-2024", "20123456789", "20/03/2024", "20/03/2024", "10", "20/03/2034", "NEW_AUTHORIZATION", ""},
		// fin fuera de tolerancia: también entra, con advertencia y el calculado
		{"R-0301-2024", "20123456789", "20/03/2024", "20/03/2024", "10", "25/03/2034", "NEW_AUTHORIZATION", ""},
	})
	report, err := e.svc.Apply(e.ctx, bulk.DatasetResoluciones, table, testUser, "resoluciones.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.Zero(t, report.Failed)
	require.Len(t, report.Warnings, 2)
	codes := []string{
		report.Warnings[0].Findings[0].Code,
		report.Warnings[1].Findings[0].Code,
	}
	assert.Contains(t, codes, "VIGENCIA_ADJUSTED")
	assert.Contains(t, codes, "VIGENCIA")

	want := time.Date(2034, time.March, 19, 0, 0, 0, 0, time.UTC)
	for _, numero := range []string{"R-0300-2024", "R-0301-2024"} {
		r, err := e.resolutions.GetByNumber(e.ctx, numero)
		require.NoError(t, err)
		assert.Equal(t, want, r.ValidityEnd)
	}
}

func TestRutasApply_CreaConItinerario(t *testing.T) {
	e := newEnv(t)
	mustLocality(t, e, "210101", "Puno")
	mustLocality(t, e, "211101", "Juliaca")
	mustLocality(t, e, "210401", "Ilave")

	_, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "", ""},
	}), testUser, "padron.xlsx")
	require.NoError(t, err)
	_, err = e.svc.Apply(e.ctx, bulk.DatasetResoluciones, resolucionesTable([][]string{
		{"R-0400-2024", "20123456789", "20/03/2024", "20/03/2024", "10", "", "NEW_AUTHORIZATION", ""},
	}), testUser, "resoluciones.xlsx")
	require.NoError(t, err)

	table := bulk.Table{
		Name: "RUTAS",
		Headers: []string{
			"NRO RESOLUCION", "CODIGO", "NOMBRE", "ORIGEN UBIGEO",
			"DESTINO UBIGEO", "ITINERARIO", "DISTANCIA KM", "TARIFA",
		},
		Rows: [][]string{
			{"R-0400-2024", "RT-01", "", "210101", "211101", "210401", "44.5", "6.50"},
		},
	}
	report, err := e.svc.Apply(e.ctx, bulk.DatasetRutas, table, testUser, "rutas.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	res, err := e.resolutions.GetByNumber(e.ctx, "R-0400-2024")
	require.NoError(t, err)
	routes, err := e.routes.ListByResolution(e.ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, routes, 1)

	rt := routes[0]
	assert.Equal(t, "Puno - Juliaca", rt.Name)
	require.Len(t, rt.Itinerary, 1)
	assert.Equal(t, "Ilave", rt.Itinerary[0].Name)
	assert.Equal(t, "44.5", rt.DistanceKm.String())
	assert.Equal(t, "20123456789", rt.Company.RUC)

	// re-aplicar la misma planilla no duplica la ruta
	again, err := e.svc.Apply(e.ctx, bulk.DatasetRutas, table, testUser, "rutas.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Skipped)
}

func TestVehiculosApply_CreaYOmiteRepetidos(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Apply(e.ctx, bulk.DatasetEmpresas, empresasTable([][]string{
		{"20123456789", "Transportes Altiplano S.A.C.", "", ""},
	}), testUser, "padron.xlsx")
	require.NoError(t, err)

	table := bulk.Table{
		Name:    "VEHICULOS",
		Headers: []string{"PLACA", "RUC", "CATEGORIA", "MARCA", "ASIENTOS"},
		Rows: [][]string{
			{"z4h-958", "20123456789", "M3", "Mercedes Benz", "50"},
		},
	}
	report, err := e.svc.Apply(e.ctx, bulk.DatasetVehiculos, table, testUser, "flota.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	v, err := e.vehicles.GetByPlate(e.ctx, "Z4H-958")
	require.NoError(t, err)
	assert.Equal(t, "M3", v.Category)
	assert.NotEmpty(t, v.VehicleDataID)

	c, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	assert.Contains(t, c.VehicleIDs, v.ID)

	again, err := e.svc.Apply(e.ctx, bulk.DatasetVehiculos, table, testUser, "flota.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Skipped)
}
