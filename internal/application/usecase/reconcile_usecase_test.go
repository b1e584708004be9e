package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func TestReconcileRun_SinDivergenciasNoRepara(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-3000-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	report, err := e.reconcile.Run(e.ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, report.CompaniesChecked)
	assert.Zero(t, report.CompaniesRepaired)
	assert.Zero(t, report.ChildSetsRepaired)
	assert.Empty(t, report.RepairedIDs)
}

func TestReconcileRun_ReparaIndicesDeLaEmpresa(t *testing.T) {
	e := newEnv(t)
	company := mustCompany(t, e, "20123456789")
	res := mustParent(t, e, "R-3100-2024", "20123456789", "20/03/2024")
	puno := mustLocality(t, e, "210101", "Puno")
	juliaca := mustLocality(t, e, "211101", "Juliaca")
	route := mustRoute(t, e, "RT-01", res.Number, puno, juliaca)

	// se corrompe el índice directamente en el repositorio
	corrupted, err := e.companyRepo.GetByID(e.ctx, company.ID)
	require.NoError(t, err)
	corrupted.ResolutionIDs = nil
	corrupted.RouteIDs = []string{"ruta-fantasma"}
	require.NoError(t, e.companyRepo.Update(e.ctx, corrupted))

	report, err := e.reconcile.Run(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.CompaniesRepaired)
	assert.Contains(t, report.RepairedIDs, company.ID)

	got, err := e.companyRepo.GetByID(e.ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{res.ID}, got.ResolutionIDs)
	assert.Equal(t, []string{route.ID}, got.RouteIDs)
}

func TestReconcileRun_ReparaHijasDeLaPadre(t *testing.T) {
	e := newEnv(t)
	mustCompany(t, e, "20123456789")
	parent := mustParent(t, e, "R-3200-2024", "20123456789", "20/03/2024")

	child, _, err := e.resolutions.Create(e.ctx, testUser, dto.CreateResolutionRequest{
		Number:        "R-3201-2024",
		CompanyRUC:    "20123456789",
		IssueDate:     "10/06/2024",
		Kind:          entity.ResolutionChild,
		ProcedureKind: entity.ProcedureFleetIncrease,
		ParentNumber:  parent.Number,
	})
	require.NoError(t, err)

	corrupted, err := e.resolutionRepo.GetByID(e.ctx, parent.ID)
	require.NoError(t, err)
	corrupted.ChildIDs = nil
	require.NoError(t, e.resolutionRepo.Update(e.ctx, corrupted))

	report, err := e.reconcile.Run(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ChildSetsRepaired)
	assert.Contains(t, report.RepairedIDs, parent.ID)

	got, err := e.resolutionRepo.GetByID(e.ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{child.ID}, got.ChildIDs)
}
