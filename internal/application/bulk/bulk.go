// Package bulk implementa la carga masiva desde planillas. El flujo tiene
// dos fases con el mismo recorrido de filas: Validate reporta hallazgos sin
// escribir; Apply ejecuta el upsert idempotente por clave natural (RUC,
// número de resolución, placa, resolución+código de ruta).
//
// Idempotencia: re-aplicar la misma planilla no crea ni modifica nada, solo
// incrementa los omitidos. Una fila cuyo registro existe dado de baja lo
// reactiva conservando el id.
package bulk

import (
	"fmt"
	"strings"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// Datasets de planilla admitidos.
const (
	DatasetEmpresas     = "empresas"
	DatasetResoluciones = "resoluciones"
	DatasetRutas        = "rutas"
	DatasetVehiculos    = "vehiculos"
)

// Datasets lista los datasets admitidos en orden de carga recomendado
// (las rutas referencian resoluciones; los vehículos, empresas).
var Datasets = []string{DatasetEmpresas, DatasetResoluciones, DatasetRutas, DatasetVehiculos}

// Table planilla tabular ya extraída del archivo: encabezados y filas de
// datos. El adaptador de Excel la produce; el pipeline no conoce el formato
// de origen.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// RowFindings hallazgos de una fila. Row es 1-based sobre las filas de
// datos (la fila 1 es la primera bajo el encabezado).
type RowFindings struct {
	Row      int              `json:"row"`
	Key      string           `json:"key,omitempty"` // clave natural de la fila
	Findings []domain.Finding `json:"findings"`
}

// Report resultado de una pasada de validación o aplicación.
type Report struct {
	Dataset     string        `json:"dataset"`
	TotalRows   int           `json:"totalRows"`
	Processed   int           `json:"processed"`
	Created     int           `json:"created"`
	Updated     int           `json:"updated"`
	Reactivated int           `json:"reactivated"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Errors      []RowFindings `json:"errors,omitempty"`
	Warnings    []RowFindings `json:"warnings,omitempty"`
	DryRun      bool          `json:"dryRun"`
}

func (r *Report) addFindings(row int, key string, fs []domain.Finding) {
	if errs := onlyErrors(fs); len(errs) > 0 {
		r.Errors = append(r.Errors, RowFindings{Row: row, Key: key, Findings: errs})
	}
	if warns := domain.Warnings(fs); len(warns) > 0 {
		r.Warnings = append(r.Warnings, RowFindings{Row: row, Key: key, Findings: warns})
	}
}

func onlyErrors(fs []domain.Finding) []domain.Finding {
	var out []domain.Finding
	for _, f := range fs {
		if f.Severity == domain.SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// row acceso por nombre de columna, insensible a mayúsculas y tildes leves
// en los encabezados declarados.
type row struct {
	index  map[string]int
	values []string
}

// headerIndex arma el índice de columnas, verifica que estén todas las
// requeridas y advierte las columnas que el dataset no conoce (se aceptan
// pero se ignoran).
func headerIndex(t Table, required, known []string) (map[string]int, []domain.Finding) {
	idx := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		idx[normalizeHeader(h)] = i
	}
	var fs []domain.Finding
	for _, want := range required {
		if _, ok := idx[normalizeHeader(want)]; !ok {
			fs = append(fs, domain.Error("headers", "MISSING_COLUMN",
				fmt.Sprintf("falta la columna %q", want)))
		}
	}
	recognized := make(map[string]bool, len(known))
	for _, h := range known {
		recognized[normalizeHeader(h)] = true
	}
	for _, h := range t.Headers {
		if !recognized[normalizeHeader(h)] {
			fs = append(fs, domain.Warning("headers", "UNKNOWN_COLUMN",
				fmt.Sprintf("columna %q desconocida, se ignora", h)))
		}
	}
	return idx, fs
}

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.Join(strings.Fields(h), " "))
}

// historyEvent evento de historial de una escritura por carga masiva.
func historyEvent(now time.Time, userID, sourceRef, reason string) entity.HistoryEntry {
	return entity.HistoryEntry{
		Timestamp:         now,
		UserID:            userID,
		Action:            "BULK_UPSERT",
		Reason:            reason,
		SourceDocumentRef: sourceRef,
	}
}

func (r row) get(idx map[string]int, name string) string {
	i, ok := idx[normalizeHeader(name)]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}
