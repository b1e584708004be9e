package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// LocalityHandler maneja las peticiones HTTP de localidades (protegido).
type LocalityHandler struct {
	uc *usecase.LocalityUseCase
}

// NewLocalityHandler construye el handler.
func NewLocalityHandler(uc *usecase.LocalityUseCase) *LocalityHandler {
	return &LocalityHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar localidad
// @Tags         localidades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocalityRequest  true  "Datos de la localidad"
// @Success      201   {object}  entity.Locality
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/localidades [post]
func (h *LocalityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocalityRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener localidad por ID
// @Tags         localidades
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la localidad"
// @Success      200  {object}  entity.Locality
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/localidades/{id} [get]
func (h *LocalityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByUbigeo godoc
// @Summary      Obtener localidad por ubigeo
// @Tags         localidades
// @Security     Bearer
// @Produce      json
// @Param        ubigeo  path  string  true  "Código INEI de 6 dígitos"
// @Success      200  {object}  entity.Locality
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/localidades/ubigeo/{ubigeo} [get]
func (h *LocalityHandler) GetByUbigeo(c *fiber.Ctx) error {
	out, err := h.uc.GetByUbigeo(c.UserContext(), c.Params("ubigeo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar localidad
// @Tags         localidades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la localidad"
// @Param        body  body  dto.UpdateLocalityRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Locality
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/localidades/{id} [put]
func (h *LocalityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocalityRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar localidad sin rutas que la referencien
// @Tags         localidades
// @Security     Bearer
// @Param        id  path  string  true  "ID de la localidad"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/localidades/{id} [delete]
func (h *LocalityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate godoc
// @Summary      Dar de baja lógica a la localidad
// @Tags         localidades
// @Security     Bearer
// @Param        id  path  string  true  "ID de la localidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/localidades/{id}/desactivar [post]
func (h *LocalityHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar localidades
// @Tags         localidades
// @Security     Bearer
// @Produce      json
// @Param        level   query  string  false  "Nivel (DEPARTAMENTO, PROVINCIA, DISTRITO, CENTRO_POBLADO)"
// @Param        q       query  string  false  "Búsqueda por texto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        skip    query  int     false  "Salto"   default(0)
// @Success      200  {object}  dto.ListResponse[entity.Locality]
// @Router       /api/localidades [get]
func (h *LocalityHandler) List(c *fiber.Ctx) error {
	var in dto.ListLocalitiesRequest
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
	return c.JSON(dto.ListResponse[*entity.Locality]{
		Items: items, Total: total, Limit: in.Limit, Skip: in.Skip,
	})
}
