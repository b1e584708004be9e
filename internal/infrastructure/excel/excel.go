// Package excel adapta planillas XLSX al formato tabular del pipeline de
// carga masiva y genera las plantillas descargables por dataset.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/drtc-puno/sirret-api/internal/application/bulk"
)

// templateHeaders columnas de la plantilla por dataset, en el orden del
// archivo descargable.
var templateHeaders = map[string][]string{
	bulk.DatasetEmpresas: {
		"RUC", "RAZON SOCIAL", "NOMBRE CORTO", "DIRECCION", "TELEFONO",
		"EMAIL", "TIPO SERVICIO", "ESTADO", "DNI REPRESENTANTE", "REPRESENTANTE",
	},
	bulk.DatasetResoluciones: {
		"RESOLUCION PADRE", "NRO RESOLUCION", "RUC", "FECHA EMISION",
		"INICIO VIGENCIA", "AÑOS", "FIN VIGENCIA", "TIPO", "TIPO TRAMITE",
		"DESCRIPCION", "EXPEDIENTE", "USUARIO EMISOR", "ESTADO", "OBSERVACIONES",
	},
	bulk.DatasetRutas: {
		"RUC", "NRO RESOLUCION", "CODIGO", "NOMBRE", "ORIGEN UBIGEO", "DESTINO UBIGEO",
		"ITINERARIO", "FRECUENCIA", "DISTANCIA KM", "TARIFA",
	},
	bulk.DatasetVehiculos: {
		"PLACA", "RUC", "CATEGORIA", "MARCA", "MODELO", "AÑO FABRICACION",
		"ASIENTOS", "PESO NETO", "PESO BRUTO", "COMBUSTIBLE",
	},
}

// ReadTable lee la primera hoja del XLSX como tabla: primera fila encabezado,
// el resto datos. Las filas totalmente vacías se descartan.
func ReadTable(r io.Reader) (bulk.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return bulk.Table{}, fmt.Errorf("excel: abrir archivo: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return bulk.Table{}, fmt.Errorf("excel: el archivo no tiene hojas")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return bulk.Table{}, fmt.Errorf("excel: leer hoja %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return bulk.Table{}, fmt.Errorf("excel: la hoja %q está vacía", sheet)
	}

	t := bulk.Table{Name: sheet, Headers: rows[0]}
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// WriteTemplate genera la plantilla XLSX del dataset con la fila de
// encabezados congelada.
func WriteTemplate(w io.Writer, dataset string) error {
	headers, ok := templateHeaders[dataset]
	if !ok {
		return fmt.Errorf("excel: dataset %q sin plantilla", dataset)
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteReport vuelca el reporte de carga a un XLSX con una hoja de resumen y
// otra de hallazgos por fila.
func WriteReport(w io.Writer, report *bulk.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Dataset", report.Dataset},
		{"Filas", report.TotalRows},
		{"Procesadas", report.Processed},
		{"Creadas", report.Created},
		{"Actualizadas", report.Updated},
		{"Reactivadas", report.Reactivated},
		{"Omitidas", report.Skipped},
		{"Fallidas", report.Failed},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}

	if len(report.Errors) > 0 || len(report.Warnings) > 0 {
		const sheet = "Hallazgos"
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := []interface{}{"Fila", "Clave", "Severidad", "Campo", "Código", "Mensaje"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		n := 2
		for _, group := range [][]bulk.RowFindings{report.Errors, report.Warnings} {
			for _, rf := range group {
				for _, finding := range rf.Findings {
					row := []interface{}{
						rf.Row, rf.Key, string(finding.Severity),
						finding.Field, finding.Code, finding.Message,
					}
					cell, _ := excelize.CoordinatesToCellName(1, n)
					if err := f.SetSheetRow(sheet, cell, &row); err != nil {
						return err
					}
					n++
				}
			}
		}
	}
	return f.Write(w)
}
