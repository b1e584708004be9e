package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func TestRouteCreate_BajoResolucionVigente(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-1000-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")

	r, err := e.routes.Create(e.ctx, testUser, dto.CreateRouteRequest{
		Code:                "RT-01",
		ResolutionNumber:    res.Number,
		OriginLocalityID:    puno.ID,
		DestinationLocality: juliaca.ID,
	})
	require.NoError(t, err)

	// sin nombre declarado se arma "Origen - Destino"
	assert.Equal(t, "Puno - Juliaca", r.Name)
	assert.Equal(t, res.ID, r.ResolutionID)
	assert.Equal(t, "20123456789", r.Company.RUC)

	company, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	assert.Contains(t, company.RouteIDs, r.ID)
}

func TestRouteCreate_ResolucionNoVigenteFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-1100-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")

	_, err := e.resolutions.Suspend(e.ctx, res.ID, testUser, "")
	require.NoError(t, err)

	_, err = e.routes.Create(e.ctx, testUser, dto.CreateRouteRequest{
		Code:                "RT-01",
		ResolutionNumber:    res.Number,
		OriginLocalityID:    puno.ID,
		DestinationLocality: juliaca.ID,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRouteCreate_CodigoDuplicadoEnResolucionConflicto(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-1200-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	ilave := mustLocality(t, e, "210401", "Ilave")

	mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	_, err := e.routes.Create(e.ctx, testUser, dto.CreateRouteRequest{
		Code:                "RT-01",
		ResolutionNumber:    res.Number,
		OriginLocalityID:    puno.ID,
		DestinationLocality: ilave.ID,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRouteCreate_OrigenIgualDestinoFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-1300-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")

	_, err := e.routes.Create(e.ctx, testUser, dto.CreateRouteRequest{
		Code:                "RT-01",
		ResolutionNumber:    res.Number,
		OriginLocalityID:    puno.ID,
		DestinationLocality: puno.ID,
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestRouteDeactivate_SaleDelIndiceDeLaEmpresa(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-1400-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	r := mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	require.NoError(t, e.routes.Deactivate(e.ctx, r.ID, testUser, "recorte del servicio"))

	company, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	assert.NotContains(t, company.RouteIDs, r.ID)

	_, err = e.routes.GetByID(e.ctx, r.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalityDelete_ConRutasEnUsoFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-1500-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	err := e.localities.Delete(e.ctx, puno.ID)
	require.ErrorIs(t, err, domain.ErrReferenceInUse)
	// el error nombra las rutas que la usan
	assert.Contains(t, err.Error(), "RT-01")
}

func TestLocalityDelete_SinRutasProcede(t *testing.T) {
	e := newEnv(t)
	ilave := mustLocality(t, e, "210401", "Ilave")

	require.NoError(t, e.localities.Delete(e.ctx, ilave.ID))
	_, err := e.localities.GetByUbigeo(e.ctx, "210401")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocality_UbigeoInvalidoFalla(t *testing.T) {
	e := newEnv(t)

	_, err := e.localities.Create(e.ctx, dto.CreateLocalityRequest{
		Ubigeo: "21A101",
		Name:   "Puno",
		Level:  entity.LevelDistrict,
	})
	require.Error(t, err)
}
