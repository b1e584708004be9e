package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func TestCompanyCreate_EstadoInicialEnTramite(t *testing.T) {
	e := newEnv(t)

	c, err := e.companies.Create(e.ctx, testUser, dto.CreateCompanyRequest{
		RUC:       "20123456789",
		LegalName: "Expreso Titicaca S.R.L.",
		Phone:     "051-123456 951111222",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CompanyInProcess, c.State)
	assert.True(t, c.IsActive)
	assert.Equal(t, "051-123456, 951111222", c.Phone)
	require.Len(t, c.History, 1)
	assert.Equal(t, testUser, c.History[0].UserID)
}

func TestCompanyCreate_RUCInvalidoFalla(t *testing.T) {
	e := newEnv(t)

	_, err := e.companies.Create(e.ctx, testUser, dto.CreateCompanyRequest{
		RUC:       "123",
		LegalName: "Expreso Titicaca S.R.L.",
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestCompanyCreate_RUCDuplicadoConflicto(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	_, err := e.companies.Create(e.ctx, testUser, dto.CreateCompanyRequest{
		RUC:       "20123456789",
		LegalName: "Otra Empresa S.A.C.",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompanyChangeState(t *testing.T) {
	e := newEnv(t)
	c := mustCompany(t, e, "20123456789")

	got, err := e.companies.ChangeState(e.ctx, c.ID, testUser, dto.ChangeCompanyStateRequest{
		State:  entity.CompanyAuthorized,
		Reason: "resolución de autorización emitida",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyAuthorized, got.State)

	// el catálogo COMPANY_STATES rechaza estados desconocidos
	_, err = e.companies.ChangeState(e.ctx, c.ID, testUser, dto.ChangeCompanyStateRequest{
		State: "INVENTADO",
	})
	require.Error(t, err)
}

func TestCompanyBajaYReactivacion(t *testing.T) {
	e := newEnv(t)
	c := mustCompany(t, e, "20123456789")

	require.NoError(t, e.companies.Deactivate(e.ctx, c.ID, testUser, "cese de operaciones"))

	// la baja lógica la saca de la consulta por RUC
	_, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := e.companies.Reactivate(e.ctx, c.ID, testUser)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestCompanyReactivacion_RUCTomadoPorOtraActivaFalla(t *testing.T) {
	e := newEnv(t)
	first := mustCompany(t, e, "20123456789")
	require.NoError(t, e.companies.Deactivate(e.ctx, first.ID, testUser, ""))

	// otra empresa activa toma el mismo RUC
	mustCompany(t, e, "20123456789")

	_, err := e.companies.Reactivate(e.ctx, first.ID, testUser)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompanyList_FiltraPorEstado(t *testing.T) {
	e := newEnv(t)
	a := mustCompany(t, e, "20123456789")
	mustCompany(t, e, "20987654321")

	_, err := e.companies.ChangeState(e.ctx, a.ID, testUser, dto.ChangeCompanyStateRequest{
		State: entity.CompanyAuthorized,
	})
	require.NoError(t, err)

	items, total, err := e.companies.List(e.ctx, dto.ListCompaniesRequest{
		PageRequest: dto.PageRequest{Limit: 10},
		State:       entity.CompanyAuthorized,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
}
