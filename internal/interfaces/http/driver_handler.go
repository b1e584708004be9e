package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// DriverHandler maneja las peticiones HTTP de conductores (protegido).
type DriverHandler struct {
	uc *usecase.DriverUseCase
}

// NewDriverHandler construye el handler.
func NewDriverHandler(uc *usecase.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar conductor
// @Tags         conductores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "Datos del conductor"
// @Success      201   {object}  entity.Driver
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/conductores [post]
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
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
// @Summary      Obtener conductor por ID
// @Tags         conductores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del conductor"
// @Success      200  {object}  entity.Driver
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conductores/{id} [get]
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByDNI godoc
// @Summary      Obtener conductor por DNI
// @Tags         conductores
// @Security     Bearer
// @Produce      json
// @Param        dni  path  string  true  "DNI de 8 dígitos"
// @Success      200  {object}  entity.Driver
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conductores/dni/{dni} [get]
func (h *DriverHandler) GetByDNI(c *fiber.Ctx) error {
	out, err := h.uc.GetByDNI(c.UserContext(), c.Params("dni"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar conductor
// @Tags         conductores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conductor"
// @Param        body  body  dto.UpdateDriverRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Driver
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/conductores/{id} [put]
func (h *DriverHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDriverRequest
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
// @Summary      Cambiar estado del conductor
// @Tags         conductores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conductor"
// @Param        body  body  dto.SetStateRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Driver
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/conductores/{id}/estado [patch]
func (h *DriverHandler) ChangeState(c *fiber.Ctx) error {
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
// @Summary      Dar de baja lógica al conductor
// @Tags         conductores
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del conductor"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conductores/{id} [delete]
func (h *DriverHandler) Deactivate(c *fiber.Ctx) error {
	var in dto.StateChangeRequest
	_ = c.BodyParser(&in)
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar conductores
// @Tags         conductores
// @Security     Bearer
// @Produce      json
// @Param        companyId  query  string  false  "ID de la empresa"
// @Param        state      query  string  false  "Estado"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        skip       query  int     false  "Salto"   default(0)
// @Success      200  {object}  dto.ListResponse[entity.Driver]
// @Router       /api/conductores [get]
func (h *DriverHandler) List(c *fiber.Ctx) error {
	var in dto.ListDriversRequest
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
	return c.JSON(dto.ListResponse[*entity.Driver]{
		Items: items, Total: total, Limit: in.Limit, Skip: in.Skip,
	})
}
