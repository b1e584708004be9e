package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
)

func TestVehicleCreate_NormalizaPlacaYCreaFichaTecnica(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	v, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate:      " z4h-958 ",
		CompanyRUC: "20123456789",
		Category:   "M3",
		Brand:      "Mercedes Benz",
		TechnicalData: dto.TechnicalDataInput{
			Seats: 50, NetWeight: 9500, GrossWeight: 16000,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Z4H-958", v.Plate)
	assert.NotEmpty(t, v.VehicleDataID)

	// la consulta por placa también normaliza
	got, err := e.vehicles.GetByPlate(e.ctx, "z4h-958")
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	company, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	assert.Contains(t, company.VehicleIDs, v.ID)
}

func TestVehicleCreate_PlacaDuplicadaConflicto(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	_, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20123456789",
	})
	require.NoError(t, err)

	_, err = e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20123456789",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestVehicleCreate_PesoBrutoMenorQueNetoFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	_, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate:      "Z4H-958",
		CompanyRUC: "20123456789",
		TechnicalData: dto.TechnicalDataInput{
			NetWeight: 16000, GrossWeight: 9500,
		},
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestVehicleTransfer_MueveIndicesYLimpiaRutas(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	mustAuthorizedCompany(t, e, "20987654321")
	res := mustParent(t, e, "R-2000-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	route := mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	v, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20123456789",
	})
	require.NoError(t, err)

	_, err = e.vehicles.AssignRoutes(e.ctx, v.ID, testUser, dto.AssignRoutesRequest{
		RouteIDs: []string{route.ID},
	})
	require.NoError(t, err)

	moved, err := e.vehicles.Transfer(e.ctx, v.ID, testUser, dto.TransferVehicleRequest{
		ToCompanyRUC: "20987654321",
		Reason:       "venta del vehículo",
	})
	require.NoError(t, err)

	// las rutas autorizadas no siguen al vehículo entre empresas
	assert.Empty(t, moved.AssignedRouteIDs)

	origin, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	assert.NotContains(t, origin.VehicleIDs, v.ID)

	target, err := e.companies.GetByRUC(e.ctx, "20987654321")
	require.NoError(t, err)
	assert.Contains(t, target.VehicleIDs, v.ID)
	assert.Equal(t, target.ID, moved.CurrentCompanyID)
}

func TestVehicleTransfer_EmpresaNoAutorizadaFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	mustCompany(t, e, "20987654321") // queda IN_PROCESS

	v, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20123456789",
	})
	require.NoError(t, err)

	_, err = e.vehicles.Transfer(e.ctx, v.ID, testUser, dto.TransferVehicleRequest{
		ToCompanyRUC: "20987654321",
		Reason:       "venta del vehículo",
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestVehicleTransfer_MismaEmpresaConflicto(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	v, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20123456789",
	})
	require.NoError(t, err)

	_, err = e.vehicles.Transfer(e.ctx, v.ID, testUser, dto.TransferVehicleRequest{
		ToCompanyRUC: "20123456789",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestVehicleAssignRoutes_DeOtraEmpresaFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	mustCompany(t, e, "20987654321")
	res := mustParent(t, e, "R-2100-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	route := mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	v, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20987654321",
	})
	require.NoError(t, err)

	_, err = e.vehicles.AssignRoutes(e.ctx, v.ID, testUser, dto.AssignRoutesRequest{
		RouteIDs: []string{route.ID},
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestVehicleCreate_ReutilizaFichaTecnicaPorPlaca(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	mustCompany(t, e, "20987654321")

	v1, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20123456789",
	})
	require.NoError(t, err)
	require.NoError(t, e.vehicles.Deactivate(e.ctx, v1.ID, testUser, "baja del padrón"))

	// una nueva habilitación de la misma placa comparte la ficha técnica
	v2, err := e.vehicles.Create(e.ctx, testUser, dto.CreateVehicleRequest{
		Plate: "Z4H-958", CompanyRUC: "20987654321",
	})
	require.NoError(t, err)
	assert.Equal(t, v1.VehicleDataID, v2.VehicleDataID)
}
