package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func TestDriverCreate_YConsultaPorDNI(t *testing.T) {
	e := newEnv(t)
	company := mustCompany(t, e, "20123456789")

	d, err := e.drivers.Create(e.ctx, testUser, dto.CreateDriverRequest{
		DNI:             "43215678",
		GivenNames:      "Juan Carlos",
		Surnames:        "Mamani Quispe",
		LicenseNumber:   "Q43215678",
		LicenseCategory: "A-IIIb",
		LicenseExpiry:   "15/08/2027",
		CompanyRUC:      "20123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DriverActive, d.State)
	assert.Equal(t, company.ID, d.CompanyID)
	require.NotNil(t, d.LicenseExpiry)

	got, err := e.drivers.GetByDNI(e.ctx, "43215678")
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}

func TestDriverCreate_DNIInvalidoFalla(t *testing.T) {
	e := newEnv(t)

	_, err := e.drivers.Create(e.ctx, testUser, dto.CreateDriverRequest{
		DNI:        "1234",
		GivenNames: "Juan",
		Surnames:   "Mamani",
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestDriverCreate_DNIDuplicadoConflicto(t *testing.T) {
	e := newEnv(t)

	_, err := e.drivers.Create(e.ctx, testUser, dto.CreateDriverRequest{
		DNI: "43215678", GivenNames: "Juan", Surnames: "Mamani",
	})
	require.NoError(t, err)

	_, err = e.drivers.Create(e.ctx, testUser, dto.CreateDriverRequest{
		DNI: "43215678", GivenNames: "Pedro", Surnames: "Condori",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestDriverChangeState_EstadoDesconocidoFalla(t *testing.T) {
	e := newEnv(t)

	d, err := e.drivers.Create(e.ctx, testUser, dto.CreateDriverRequest{
		DNI: "43215678", GivenNames: "Juan", Surnames: "Mamani",
	})
	require.NoError(t, err)

	got, err := e.drivers.ChangeState(e.ctx, d.ID, testUser, entity.DriverSuspended, "papeleta firme")
	require.NoError(t, err)
	assert.Equal(t, entity.DriverSuspended, got.State)

	_, err = e.drivers.ChangeState(e.ctx, d.ID, testUser, "INVENTADO", "")
	require.Error(t, err)
}

func TestDriverDeactivate_SaleDeLaConsultaPorDNI(t *testing.T) {
	e := newEnv(t)

	d, err := e.drivers.Create(e.ctx, testUser, dto.CreateDriverRequest{
		DNI: "43215678", GivenNames: "Juan", Surnames: "Mamani",
	})
	require.NoError(t, err)

	require.NoError(t, e.drivers.Deactivate(e.ctx, d.ID, testUser, "retiro voluntario"))
	_, err = e.drivers.GetByDNI(e.ctx, "43215678")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatsCompanySummary(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-4000-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	_, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20123456789", Category: "M3",
	})
	require.NoError(t, err)
	_, err = e.drivers.Create(e.ctx, testUser, dto.CreateDriverRequest{
		DNI: "43215678", GivenNames: "Juan", Surnames: "Mamani",
		CompanyRUC: "20123456789",
	})
	require.NoError(t, err)

	summary, err := e.stats.CompanySummary(e.ctx, "20123456789")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalResolutions)
	assert.Equal(t, 1, summary.InForce)
	assert.Equal(t, 1, summary.TotalVehicles)
	assert.Equal(t, 1, summary.TotalRoutes)
	assert.Equal(t, 1, summary.TotalDrivers)
}

func TestStatsDashboard_AgrupaPorEstado(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	mustCompany(t, e, "20987654321")
	mustParent(t, e, "R-4100-2024", "20123456789", "20/03/2024")

	stats, err := e.stats.Dashboard(e.ctx)
	require.NoError(t, err)

	var inProcess int64
	for _, g := range stats.CompaniesByState {
		if g.Key == entity.CompanyInProcess {
			inProcess = g.Count
		}
	}
	assert.EqualValues(t, 2, inProcess)

	var inForce int64
	for _, g := range stats.ResolutionsByState {
		if g.Key == entity.ResolutionInForce {
			inForce = g.Count
		}
	}
	assert.EqualValues(t, 1, inForce)
}
