package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func mustExpediente(t *testing.T, e *env, number string) *entity.Expediente {
	t.Helper()
	exp, err := e.expedientes.Create(e.ctx, testUser, dto.CreateExpedienteRequest{
		Number:  number,
		Subject: "renovación de autorización de ruta",
		Office:  "MESA_DE_PARTES",
	})
	require.NoError(t, err)
	return exp
}

func TestExpedienteCreate_Registrado(t *testing.T) {
	e := newEnv(t)

	exp := mustExpediente(t, e, "E-0001-2024")
	assert.Equal(t, entity.ExpedienteRegistered, exp.State)
	assert.Equal(t, "MESA_DE_PARTES", exp.CurrentOffice)
}

func TestExpedienteCreate_NumeroMalFormadoFalla(t *testing.T) {
	e := newEnv(t)

	_, err := e.expedientes.Create(e.ctx, testUser, dto.CreateExpedienteRequest{
		Number:  "EXP/2024/001",
		Subject: "renovación",
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestExpedienteCreate_VinculaEmpresaPorRUC(t *testing.T) {
	e := newEnv(t)
	company := mustCompany(t, e, "20123456789")

	exp, err := e.expedientes.Create(e.ctx, testUser, dto.CreateExpedienteRequest{
		Number:       "E-0002-2024",
		Subject:      "incremento de flota",
		ApplicantRUC: "20123456789",
	})
	require.NoError(t, err)

	assert.Equal(t, company.ID, exp.CompanyID)
	// sin nombre declarado se toma la razón social registrada
	assert.Equal(t, company.LegalName.Canonical, exp.ApplicantName)
}

func TestExpedienteDerive_PromueveATramite(t *testing.T) {
	e := newEnv(t)
	exp := mustExpediente(t, e, "E-0003-2024")

	got, err := e.expedientes.Derive(e.ctx, exp.ID, testUser, dto.DeriveExpedienteRequest{
		ToOffice: "DIRECCION_DE_TRANSPORTES",
		Note:     "para evaluación técnica",
	})
	require.NoError(t, err)

	assert.Equal(t, "DIRECCION_DE_TRANSPORTES", got.CurrentOffice)
	assert.Equal(t, entity.ExpedienteInProcess, got.State)
	require.Len(t, got.Derivations, 1)
	assert.Equal(t, "MESA_DE_PARTES", got.Derivations[0].FromOffice)
	assert.Equal(t, "DIRECCION_DE_TRANSPORTES", got.Derivations[0].ToOffice)
}

func TestExpedienteChangeState_Transiciones(t *testing.T) {
	e := newEnv(t)
	exp := mustExpediente(t, e, "E-0004-2024")

	// REGISTERED no pasa directo a APPROVED
	_, err := e.expedientes.ChangeState(e.ctx, exp.ID, testUser, dto.ChangeExpedienteStateRequest{
		State: entity.ExpedienteApproved,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := e.expedientes.ChangeState(e.ctx, exp.ID, testUser, dto.ChangeExpedienteStateRequest{
		State: entity.ExpedienteInProcess,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpedienteInProcess, got.State)

	got, err = e.expedientes.ChangeState(e.ctx, exp.ID, testUser, dto.ChangeExpedienteStateRequest{
		State:  entity.ExpedienteApproved,
		Reason: "cumple requisitos",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpedienteApproved, got.State)

	got, err = e.expedientes.ChangeState(e.ctx, exp.ID, testUser, dto.ChangeExpedienteStateRequest{
		State: entity.ExpedienteArchived,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpedienteArchived, got.State)

	// archivado es terminal, tampoco se deriva
	_, err = e.expedientes.Derive(e.ctx, exp.ID, testUser, dto.DeriveExpedienteRequest{
		ToOffice: "ARCHIVO_CENTRAL",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestExpedienteTrack_VistaPublica(t *testing.T) {
	e := newEnv(t)
	exp := mustExpediente(t, e, "E-0005-2024")

	_, err := e.expedientes.Derive(e.ctx, exp.ID, testUser, dto.DeriveExpedienteRequest{
		ToOffice: "DIRECCION_DE_TRANSPORTES",
	})
	require.NoError(t, err)

	view, err := e.expedientes.Track(e.ctx, "E-0005-2024")
	require.NoError(t, err)
	assert.Equal(t, "E-0005-2024", view.Number)
	assert.Equal(t, entity.ExpedienteInProcess, view.State)
	assert.Equal(t, "DIRECCION_DE_TRANSPORTES", view.CurrentOffice)
	assert.NotEmpty(t, view.UpdatedAt)

	_, err = e.expedientes.Track(e.ctx, "E-9999-2024")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpedienteDocumentos_AdjuntarYListar(t *testing.T) {
	e := newEnv(t)
	exp := mustExpediente(t, e, "E-0006-2024")

	doc, err := e.expedientes.AttachDocument(e.ctx, exp.ID, testUser, &entity.Document{
		Kind:        "SOLICITUD",
		FileName:    "solicitud_renovacion.pdf",
		ContentType: "application/pdf",
		SizeBytes:   124_512,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, exp.ID, doc.ExpedienteID)
	assert.Equal(t, testUser, doc.UploadedBy)

	docs, err := e.expedientes.ListDocuments(e.ctx, exp.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "solicitud_renovacion.pdf", docs[0].FileName)
}
