package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func TestResolutionCreate_PadreCalculaFinDeVigencia(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	r, warnings, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0100-2024",
		CompanyRUC:    "20123456789",
		IssueDate:     "20/03/2024",
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureNewAuthorization,
		ValidityStart: "20/03/2024",
		ValidityYears: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// diez años desde el 20/03/2024 terminan el día anterior al aniversario
	want := time.Date(2034, time.March, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, r.ValidityEnd)
	assert.Equal(t, entity.ResolutionInForce, r.State)

	company, err := e.companies.GetByRUC(e.ctx, "20123456789")
	require.NoError(t, err)
	assert.Contains(t, company.ResolutionIDs, r.ID)
}

func TestResolutionCreate_FinDeclaradoDentroDeToleranciaSeAjusta(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	r, warnings, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0101-2024",
		CompanyRUC:    "20123456789",
		IssueDate:     "20/03/2024",
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureNewAuthorization,
		ValidityStart: "20/03/2024",
		ValidityYears: 10,
		ValidityEnd:   "20/03/2034", // un día corrido respecto del calculado
	})
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "VIGENCIA_ADJUSTED", warnings[0].Code)

	// el valor calculado gana sobre el declarado
	want := time.Date(2034, time.March, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, r.ValidityEnd)
}

func TestResolutionCreate_FinDeclaradoFueraDeToleranciaAdvierte(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	r, warnings, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0102-2024",
		CompanyRUC:    "20123456789",
		IssueDate:     "20/03/2024",
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureNewAuthorization,
		ValidityStart: "20/03/2024",
		ValidityYears: 10,
		ValidityEnd:   "25/03/2034", // seis días corridos respecto del calculado
	})
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "VIGENCIA", warnings[0].Code)

	// la discrepancia se reporta pero el valor calculado gana
	want := time.Date(2034, time.March, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, r.ValidityEnd)
}

func TestResolutionCreate_HijaHeredaVigenciaDeLaPadre(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	parent := mustParent(t, e, "R-0200-2024", "20123456789", "20/03/2024")

	child, warnings, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0201-2024",
		CompanyRUC:    "20123456789",
		IssueDate:     "10/06/2024",
		Kind:          entity.ResolutionChild,
		ProcedureKind: entity.ProcedureFleetIncrease,
		ParentNumber:  parent.Number,
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, parent.ID, child.ParentID)
	assert.Equal(t, parent.ValidityStart, child.ValidityStart)
	assert.Equal(t, parent.ValidityEnd, child.ValidityEnd)

	got, err := e.resolutions.GetByID(e.ctx, parent.ID)
	require.NoError(t, err)
	assert.Contains(t, got.ChildIDs, child.ID)

	children, err := e.resolutions.ListChildren(e.ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)
}

func TestResolutionCreate_HijaBajoPadreSuspendidaFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	parent := mustParent(t, e, "R-0300-2024", "20123456789", "20/03/2024")

	_, err := e.resolutions.Suspend(e.ctx, parent.ID, testUser, "fiscalización en curso")
	require.NoError(t, err)

	_, _, err = e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0301-2024",
		CompanyRUC:    "20123456789",
		IssueDate:     "10/06/2024",
		Kind:          entity.ResolutionChild,
		ProcedureKind: entity.ProcedureFleetIncrease,
		ParentNumber:  parent.Number,
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestResolutionCreate_HijaDeOtraEmpresaFalla(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	mustCompany(t, e, "20987654321")
	parent := mustParent(t, e, "R-0400-2024", "20123456789", "20/03/2024")

	_, _, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0401-2024",
		CompanyRUC:    "20987654321",
		IssueDate:     "10/06/2024",
		Kind:          entity.ResolutionChild,
		ProcedureKind: entity.ProcedureFleetIncrease,
		ParentNumber:  parent.Number,
	})
	require.Error(t, err)
}

func TestResolutionCreate_NumeroDuplicadoConflicto(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	mustParent(t, e, "R-0500-2024", "20123456789", "20/03/2024")

	_, _, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0500-2024",
		CompanyRUC:    "20123456789",
		IssueDate:     "21/03/2024",
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureRenewal,
		ValidityStart: "21/03/2024",
		ValidityYears: 4,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestResolutionSuspenderYReactivar(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	r := mustParent(t, e, "R-0600-2024", "20123456789", "20/03/2024")

	suspended, err := e.resolutions.Suspend(e.ctx, r.ID, testUser, "sanción firme")
	require.NoError(t, err)
	assert.Equal(t, entity.ResolutionSuspended, suspended.State)

	reinstated, err := e.resolutions.Reinstate(e.ctx, r.ID, testUser, "sanción cumplida")
	require.NoError(t, err)
	assert.Equal(t, entity.ResolutionInForce, reinstated.State)
}

func TestResolutionAnulada_NoAdmiteTransiciones(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	r := mustParent(t, e, "R-0700-2024", "20123456789", "20/03/2024")

	annulled, err := e.resolutions.Annul(e.ctx, r.ID, testUser, "vicio de forma")
	require.NoError(t, err)
	assert.Equal(t, entity.ResolutionAnnulled, annulled.State)

	_, err = e.resolutions.Suspend(e.ctx, r.ID, testUser, "")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestResolutionExpirar_SoloDesdeVigente(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	r := mustParent(t, e, "R-0900-2024", "20123456789", "20/03/2024")

	_, err := e.resolutions.Suspend(e.ctx, r.ID, testUser, "fiscalización en curso")
	require.NoError(t, err)

	// la expiración administrativa solo parte de IN_FORCE
	_, err = e.resolutions.Expire(e.ctx, r.ID, testUser, "")
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.resolutions.Reinstate(e.ctx, r.ID, testUser, "sanción cumplida")
	require.NoError(t, err)
	expired, err := e.resolutions.Expire(e.ctx, r.ID, testUser, "revisión de oficio")
	require.NoError(t, err)
	assert.Equal(t, entity.ResolutionExpired, expired.State)
}

func TestResolutionExpireDue_VenceLasCumplidas(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")

	// vigencia 2010-2013, ya cumplida respecto del reloj real
	vencida, _, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-0800-2010",
		CompanyRUC:    "20123456789",
		IssueDate:     "15/01/2010",
		Kind:          entity.ResolutionParent,
		ProcedureKind: entity.ProcedureNewAuthorization,
		ValidityStart: "15/01/2010",
		ValidityYears: 4,
	})
	require.NoError(t, err)
	vigente := mustParent(t, e, "R-0801-2024", "20123456789", "20/03/2024")

	expired, err := e.resolutions.ExpireDue(e.ctx, testUser)
	require.NoError(t, err)
	assert.Contains(t, expired, vencida.Number)
	assert.NotContains(t, expired, vigente.Number)

	got, err := e.resolutions.GetByID(e.ctx, vencida.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResolutionExpired, got.State)

	// una resolución vencida no se reactiva
	_, err = e.resolutions.Reinstate(e.ctx, vencida.ID, testUser, "")
	require.Error(t, err)
}
