package bulk

import (
	"context"
	"fmt"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

// Service orquesta la carga masiva sobre los puertos de repositorio.
type Service struct {
	companies   repository.CompanyRepository
	resolutions repository.ResolutionRepository
	routes      repository.RouteRepository
	vehicles    repository.VehicleRepository
	vehicleData repository.VehicleDataRepository
	localities  repository.LocalityRepository
	cats        *validate.Catalogs
	log         *logger.Logger
	now         func() time.Time
}

// NewService construye el servicio de carga masiva.
func NewService(
	companies repository.CompanyRepository,
	resolutions repository.ResolutionRepository,
	routes repository.RouteRepository,
	vehicles repository.VehicleRepository,
	vehicleData repository.VehicleDataRepository,
	localities repository.LocalityRepository,
	cats *validate.Catalogs,
	log *logger.Logger,
) *Service {
	return &Service{
		companies:   companies,
		resolutions: resolutions,
		routes:      routes,
		vehicles:    vehicles,
		vehicleData: vehicleData,
		localities:  localities,
		cats:        cats,
		log:         log,
		now:         time.Now,
	}
}

// Validate recorre la planilla sin escribir y devuelve el reporte de
// hallazgos por fila.
func (s *Service) Validate(ctx context.Context, dataset string, t Table) (*Report, error) {
	return s.run(ctx, dataset, t, "", "", true)
}

// Apply ejecuta el upsert idempotente. sourceRef identifica el archivo de
// origen y queda en el historial de cada registro tocado.
func (s *Service) Apply(ctx context.Context, dataset string, t Table, userID, sourceRef string) (*Report, error) {
	report, err := s.run(ctx, dataset, t, userID, sourceRef, false)
	if err != nil {
		return report, err
	}
	s.log.Info().
		Str("dataset", dataset).
		Str("source", sourceRef).
		Int("rows", report.TotalRows).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("reactivated", report.Reactivated).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("carga masiva aplicada")
	return report, nil
}

func (s *Service) run(ctx context.Context, dataset string, t Table, userID, sourceRef string, dryRun bool) (*Report, error) {
	report := &Report{Dataset: dataset, TotalRows: len(t.Rows), DryRun: dryRun}
	var imp importer
	switch dataset {
	case DatasetEmpresas:
		imp = &empresaImporter{s: s}
	case DatasetResoluciones:
		imp = &resolucionImporter{s: s}
	case DatasetRutas:
		imp = &rutaImporter{s: s}
	case DatasetVehiculos:
		imp = &vehiculoImporter{s: s}
	default:
		return nil, fmt.Errorf("dataset %q desconocido: %w", dataset, domain.ErrNotFound)
	}

	idx, fs := headerIndex(t, imp.requiredHeaders(), imp.knownHeaders())
	report.addFindings(0, "", fs)
	if domain.HasErrors(fs) {
		report.Failed = len(t.Rows)
		return report, nil
	}

	rows := imp.order(t.Rows, idx)
	for _, item := range rows {
		r := row{values: item.values}
		key, fs := imp.parse(ctx, idx, r, item.n)
		report.addFindings(item.n, key, fs)
		if domain.HasErrors(fs) {
			report.Failed++
			continue
		}
		report.Processed++
		if dryRun {
			continue
		}
		outcome, err := imp.apply(ctx, item.n, userID, sourceRef)
		if err != nil {
			report.Processed--
			report.Failed++
			report.addFindings(item.n, key, []domain.Finding{
				domain.Error("row", "APPLY", err.Error()),
			})
			continue
		}
		switch outcome {
		case outcomeCreated:
			report.Created++
		case outcomeUpdated:
			report.Updated++
		case outcomeReactivated:
			report.Reactivated++
		case outcomeSkipped:
			report.Skipped++
		}
	}
	return report, nil
}

// outcome de aplicar una fila.
type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCreated
	outcomeUpdated
	outcomeReactivated
)

// numberedRow fila con su número 1-based original en la planilla.
type numberedRow struct {
	n      int
	values []string
}

// importer contrato de cada dataset. parse valida y retiene la fila tipada
// por número; apply la ejecuta después (mismo recorrido en ambas fases).
type importer interface {
	requiredHeaders() []string
	// knownHeaders lista todas las columnas que el dataset interpreta; las
	// demás se aceptan con advertencia y se ignoran.
	knownHeaders() []string
	// order reordena las filas cuando el dataset lo exige (las resoluciones
	// padre se procesan antes que las hijas).
	order(rows [][]string, idx map[string]int) []numberedRow
	parse(ctx context.Context, idx map[string]int, r row, n int) (key string, fs []domain.Finding)
	apply(ctx context.Context, n int, userID, sourceRef string) (outcome, error)
}

// identityOrder conserva el orden de la planilla.
func identityOrder(rows [][]string) []numberedRow {
	out := make([]numberedRow, 0, len(rows))
	for i, r := range rows {
		out = append(out, numberedRow{n: i + 1, values: r})
	}
	return out
}
