package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// RouteHandler maneja las peticiones HTTP de rutas autorizadas (protegido).
type RouteHandler struct {
	uc *usecase.RouteUseCase
}

// NewRouteHandler construye el handler.
func NewRouteHandler(uc *usecase.RouteUseCase) *RouteHandler {
	return &RouteHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ruta bajo una resolución vigente
// @Tags         rutas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRouteRequest  true  "Datos de la ruta"
// @Success      201   {object}  entity.Route
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rutas [post]
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRouteRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ruta por ID
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ruta"
// @Success      200  {object}  entity.Route
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rutas/{id} [get]
func (h *RouteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ruta
// @Tags         rutas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ruta"
// @Param        body  body  dto.UpdateRouteRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Route
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rutas/{id} [put]
func (h *RouteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRouteRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeState godoc
// @Summary      Cambiar estado operativo de la ruta
// @Tags         rutas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ruta"
// @Param        body  body  dto.SetStateRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Route
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rutas/{id}/estado [patch]
func (h *RouteHandler) ChangeState(c *fiber.Ctx) error {
	var in dto.SetStateRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ChangeState(c.UserContext(), c.Params("id"), GetUserID(c), in.State, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Dar de baja lógica a la ruta
// @Tags         rutas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la ruta"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rutas/{id} [delete]
func (h *RouteHandler) Deactivate(c *fiber.Ctx) error {
	var in dto.StateChangeRequest
	_ = c.BodyParser(&in)
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByResolution godoc
// @Summary      Listar rutas de una resolución
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la resolución"
// @Success      200  {array}  entity.Route
// @Router       /api/resoluciones/{id}/rutas [get]
func (h *RouteHandler) ListByResolution(c *fiber.Ctx) error {
	out, err := h.uc.ListByResolution(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar rutas
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        companyId     query  string  false  "ID de la empresa"
// @Param        resolutionId  query  string  false  "ID de la resolución"
// @Param        state         query  string  false  "Estado"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        skip          query  int     false  "Salto"   default(0)
// @Success      200  {object}  dto.ListResponse[entity.Route]
// @Router       /api/rutas [get]
func (h *RouteHandler) List(c *fiber.Ctx) error {
	var in dto.ListRoutesRequest
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
	return c.JSON(dto.ListResponse[*entity.Route]{
		Items: items, Total: total, Limit: in.Limit, Skip: in.Skip,
	})
}
