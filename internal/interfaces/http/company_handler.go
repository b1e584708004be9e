package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// CompanyHandler maneja las peticiones HTTP de empresas (protegido).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  entity.Company
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empresas [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
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
// @Summary      Obtener empresa por ID
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  entity.Company
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByRUC godoc
// @Summary      Obtener empresa por RUC
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        ruc  path  string  true  "RUC de 11 dígitos"
// @Success      200  {object}  entity.Company
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/ruc/{ruc} [get]
func (h *CompanyHandler) GetByRUC(c *fiber.Ctx) error {
	out, err := h.uc.GetByRUC(c.UserContext(), c.Params("ruc"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Company
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
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
// @Summary      Cambiar estado administrativo de la empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.ChangeCompanyStateRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Company
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/estado [patch]
func (h *CompanyHandler) ChangeState(c *fiber.Ctx) error {
	var in dto.ChangeCompanyStateRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ChangeState(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Dar de baja lógica a la empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [delete]
func (h *CompanyHandler) Deactivate(c *fiber.Ctx) error {
	var in dto.StateChangeRequest
	_ = c.BodyParser(&in)
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reactivate godoc
// @Summary      Reactivar una empresa dada de baja
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  entity.Company
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/reactivar [post]
func (h *CompanyHandler) Reactivate(c *fiber.Ctx) error {
	out, err := h.uc.Reactivate(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        state  query  string  false  "Estado administrativo"
// @Param        q      query  string  false  "Búsqueda por texto"
// @Param        limit  query  int     false  "Límite"  default(20)
// @Param        skip   query  int     false  "Salto"   default(0)
// @Success      200  {object}  dto.ListResponse[entity.Company]
// @Router       /api/empresas [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var in dto.ListCompaniesRequest
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
	return c.JSON(dto.ListResponse[*entity.Company]{
		Items: items, Total: total, Limit: in.Limit, Skip: in.Skip,
	})
}
