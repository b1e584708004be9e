package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/bulk"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/excel"
)

func TestWriteTemplate_SeVuelveALeer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excel.WriteTemplate(&buf, bulk.DatasetEmpresas))

	table, err := excel.ReadTable(&buf)
	require.NoError(t, err)

	assert.Contains(t, table.Headers, "RUC")
	assert.Contains(t, table.Headers, "RAZON SOCIAL")
	assert.Empty(t, table.Rows)
}

func TestWriteTemplate_DatasetDesconocido(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, excel.WriteTemplate(&buf, "terminales"))
}

func TestReadTable_DescartaFilasVacias(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excel.WriteTemplate(&buf, bulk.DatasetVehiculos))

	// sin filas de datos la tabla queda solo con encabezados
	table, err := excel.ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, len(table.Rows))
}

func TestReadTable_ArchivoInvalido(t *testing.T) {
	_, err := excel.ReadTable(bytes.NewReader([]byte("no es un xlsx")))
	require.Error(t, err)
}

func TestWriteReport_IncluyeHallazgos(t *testing.T) {
	report := &bulk.Report{
		Dataset:   bulk.DatasetEmpresas,
		TotalRows: 2,
		Processed: 1,
		Failed:    1,
		Errors: []bulk.RowFindings{{
			Row: 2, Key: "123",
			Findings: []domain.Finding{domain.Error("RUC", "FORMAT", "RUC inválido")},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, excel.WriteReport(&buf, report))
	assert.NotZero(t, buf.Len())
}
