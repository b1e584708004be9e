package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/pdf"
)

// ReportHandler expone el tablero de indicadores, la reconciliación de
// índices y la constancia de autorización en PDF.
type ReportHandler struct {
	stats       *usecase.StatsUseCase
	reconcile   *usecase.ReconcileUseCase
	companies   *usecase.CompanyUseCase
	resolutions *usecase.ResolutionUseCase
	routes      *usecase.RouteUseCase
	vehicles    *usecase.VehicleUseCase
	constancia  *pdf.ConstanciaGenerator
	publicURL   string
}

// NewReportHandler construye el handler. publicURL es la base de la consulta
// pública que codifica el QR de la constancia.
func NewReportHandler(
	stats *usecase.StatsUseCase,
	reconcile *usecase.ReconcileUseCase,
	companies *usecase.CompanyUseCase,
	resolutions *usecase.ResolutionUseCase,
	routes *usecase.RouteUseCase,
	vehicles *usecase.VehicleUseCase,
	constancia *pdf.ConstanciaGenerator,
	publicURL string,
) *ReportHandler {
	return &ReportHandler{
		stats:       stats,
		reconcile:   reconcile,
		companies:   companies,
		resolutions: resolutions,
		routes:      routes,
		vehicles:    vehicles,
		constancia:  constancia,
		publicURL:   publicURL,
	}
}

// Dashboard godoc
// @Summary      Indicadores agregados del registro
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  usecase.DashboardStats
// @Router       /api/reportes/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.stats.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CompanySummary godoc
// @Summary      Resumen consolidado de una empresa
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        ruc  path  string  true  "RUC de 11 dígitos"
// @Success      200  {object}  usecase.CompanySummary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/empresas/{ruc} [get]
func (h *ReportHandler) CompanySummary(c *fiber.Ctx) error {
	out, err := h.stats.CompanySummary(c.UserContext(), c.Params("ruc"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar los índices denormalizados (solo admin)
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  usecase.ReconcileReport
// @Router       /api/reportes/reconciliar [post]
func (h *ReportHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconcile.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Constancia godoc
// @Summary      Constancia de autorización en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        numero  path  string  true  "Número de resolución R-NNNN-YYYY"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/constancia/{numero} [get]
func (h *ReportHandler) Constancia(c *fiber.Ctx) error {
	ctx := c.UserContext()
	res, err := h.resolutions.GetByNumber(ctx, c.Params("numero"))
	if err != nil {
		return writeError(c, err)
	}
	company, err := h.companies.GetByID(ctx, res.CompanyID)
	if err != nil {
		return writeError(c, err)
	}
	routes, err := h.routes.ListByResolution(ctx, res.ID)
	if err != nil {
		return writeError(c, err)
	}
	fleet, _, err := h.vehicles.List(ctx, dto.ListVehiclesRequest{
		PageRequest: dto.PageRequest{Limit: 100},
		CompanyID:   company.ID,
		State:       entity.VehicleActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	verifyURL := ""
	if h.publicURL != "" {
		verifyURL = fmt.Sprintf("%s/api/public/resoluciones/%s", h.publicURL, res.Number)
	}
	doc, err := h.constancia.Generate(pdf.ConstanciaInput{
		Company:    company,
		Resolution: res,
		Routes:     routes,
		Vehicles:   fleet,
		VerifyURL:  verifyURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="constancia_%s.pdf"`, res.Number))
	return c.Send(doc)
}
