package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// ResolutionHandler maneja las peticiones HTTP de resoluciones. PublicVerify
// es la única operación sin autenticación.
type ResolutionHandler struct {
	uc        *usecase.ResolutionUseCase
	companies *usecase.CompanyUseCase
}

// NewResolutionHandler construye el handler.
func NewResolutionHandler(uc *usecase.ResolutionUseCase, companies *usecase.CompanyUseCase) *ResolutionHandler {
	return &ResolutionHandler{uc: uc, companies: companies}
}

// resolutionCreated respuesta de creación: la resolución más las advertencias
// no bloqueantes (por ejemplo el ajuste de fin de vigencia).
type resolutionCreated struct {
	Resolution *entity.Resolution `json:"resolution"`
	Warnings   []domain.Finding   `json:"warnings,omitempty"`
}

// Create godoc
// @Summary      Registrar resolución (padre o hija)
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateResolutionRequest  true  "Datos de la resolución"
// @Success      201   {object}  entity.Resolution
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resoluciones [post]
func (h *ResolutionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResolutionRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, warnings, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resolutionCreated{
		Resolution: out, Warnings: warnings,
	})
}

// GetByID godoc
// @Summary      Obtener resolución por ID
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la resolución"
// @Success      200  {object}  entity.Resolution
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resoluciones/{id} [get]
func (h *ResolutionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByNumber godoc
// @Summary      Obtener resolución por número
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Param        numero  path  string  true  "Número R-NNNN-YYYY"
// @Success      200  {object}  entity.Resolution
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resoluciones/numero/{numero} [get]
func (h *ResolutionHandler) GetByNumber(c *fiber.Ctx) error {
	out, err := h.uc.GetByNumber(c.UserContext(), c.Params("numero"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar campos descriptivos de la resolución
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la resolución"
// @Param        body  body  dto.UpdateResolutionRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Resolution
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/resoluciones/{id} [put]
func (h *ResolutionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateResolutionRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary      Suspender resolución vigente
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la resolución"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      200   {object}  entity.Resolution
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resoluciones/{id}/suspender [post]
func (h *ResolutionHandler) Suspend(c *fiber.Ctx) error {
	return h.stateChange(c, h.uc.Suspend)
}

// Reinstate godoc
// @Summary      Levantar la suspensión de una resolución
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la resolución"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      200   {object}  entity.Resolution
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resoluciones/{id}/reactivar [post]
func (h *ResolutionHandler) Reinstate(c *fiber.Ctx) error {
	return h.stateChange(c, h.uc.Reinstate)
}

// Annul godoc
// @Summary      Anular resolución
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la resolución"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      200   {object}  entity.Resolution
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resoluciones/{id}/anular [post]
func (h *ResolutionHandler) Annul(c *fiber.Ctx) error {
	return h.stateChange(c, h.uc.Annul)
}

// Expire godoc
// @Summary      Marcar resolución como vencida
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la resolución"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      200   {object}  entity.Resolution
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resoluciones/{id}/expirar [post]
func (h *ResolutionHandler) Expire(c *fiber.Ctx) error {
	return h.stateChange(c, h.uc.Expire)
}

func (h *ResolutionHandler) stateChange(c *fiber.Ctx,
	fn func(ctx context.Context, id, userID, reason string) (*entity.Resolution, error)) error {
	var in dto.StateChangeRequest
	_ = c.BodyParser(&in)
	out, err := fn(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExpireDue godoc
// @Summary      Vencer en lote las resoluciones con vigencia cumplida
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/resoluciones/expirar-vencidas [post]
func (h *ResolutionHandler) ExpireDue(c *fiber.Ctx) error {
	expired, err := h.uc.ExpireDue(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"expired": expired})
}

// ListChildren godoc
// @Summary      Listar resoluciones hijas de una padre
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la resolución padre"
// @Success      200  {array}  entity.Resolution
// @Router       /api/resoluciones/{id}/hijas [get]
func (h *ResolutionHandler) ListChildren(c *fiber.Ctx) error {
	out, err := h.uc.ListChildren(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// resolutionPublicView vista redactada para la verificación pública; expone
// lo que figura en la constancia y nada más.
type resolutionPublicView struct {
	Number        string `json:"number"`
	CompanyName   string `json:"companyName"`
	CompanyRUC    string `json:"companyRuc"`
	Kind          string `json:"kind"`
	State         string `json:"state"`
	ValidityStart string `json:"validityStart"`
	ValidityEnd   string `json:"validityEnd"`
}

// PublicVerify godoc
// @Summary      Verificación pública de una resolución
// @Tags         publico
// @Produce      json
// @Param        numero  path  string  true  "Número R-NNNN-YYYY"
// @Success      200  {object}  resolutionPublicView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/resoluciones/{numero} [get]
func (h *ResolutionHandler) PublicVerify(c *fiber.Ctx) error {
	r, err := h.uc.GetByNumber(c.UserContext(), c.Params("numero"))
	if err != nil {
		return writeError(c, err)
	}
	view := resolutionPublicView{
		Number:        r.Number,
		Kind:          r.Kind,
		State:         r.State,
		ValidityStart: peru.FormatFecha(r.ValidityStart),
		ValidityEnd:   peru.FormatFecha(r.ValidityEnd),
	}
	if company, err := h.companies.GetByID(c.UserContext(), r.CompanyID); err == nil {
		view.CompanyName = company.LegalName.Canonical
		view.CompanyRUC = company.RUC
	}
	return c.JSON(view)
}

// List godoc
// @Summary      Listar resoluciones
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Param        companyId  query  string  false  "ID de la empresa"
// @Param        kind       query  string  false  "PARENT o CHILD"
// @Param        state      query  string  false  "Estado"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        skip       query  int     false  "Salto"   default(0)
// @Success      200  {object}  dto.ListResponse[entity.Resolution]
// @Router       /api/resoluciones [get]
func (h *ResolutionHandler) List(c *fiber.Ctx) error {
	var in dto.ListResolutionsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos",
		})
	}
	in.DefaultPage()
	items, total, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[*entity.Resolution]{
		Items: items, Total: total, Limit: in.Limit, Skip: in.Skip,
	})
}
