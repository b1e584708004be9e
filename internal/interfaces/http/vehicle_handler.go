package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// VehicleHandler maneja las peticiones HTTP de la flota (protegido).
type VehicleHandler struct {
	uc *usecase.VehicleUseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar vehículo en la flota de una empresa
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehicleRequest  true  "Datos del vehículo"
// @Success      201   {object}  entity.Vehicle
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehiculos [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
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
// @Summary      Obtener vehículo por ID
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vehículo"
// @Success      200  {object}  entity.Vehicle
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByPlate godoc
// @Summary      Obtener vehículo por placa
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        placa  path  string  true  "Placa de rodaje"
// @Success      200  {object}  entity.Vehicle
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/placa/{placa} [get]
func (h *VehicleHandler) GetByPlate(c *fiber.Ctx) error {
	out, err := h.uc.GetByPlate(c.UserContext(), c.Params("placa"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vehículo"
// @Param        body  body  dto.UpdateVehicleRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Vehicle
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVehicleRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir vehículo a otra empresa
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vehículo"
// @Param        body  body  dto.TransferVehicleRequest  true  "Empresa destino"
// @Success      200   {object}  entity.Vehicle
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id}/transferir [post]
func (h *VehicleHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferVehicleRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Transfer(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignRoutes godoc
// @Summary      Asignar rutas autorizadas al vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vehículo"
// @Param        body  body  dto.AssignRoutesRequest  true  "Rutas a asignar"
// @Success      200   {object}  entity.Vehicle
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id}/rutas [put]
func (h *VehicleHandler) AssignRoutes(c *fiber.Ctx) error {
	var in dto.AssignRoutesRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AssignRoutes(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeState godoc
// @Summary      Cambiar estado operativo del vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vehículo"
// @Param        body  body  dto.SetStateRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Vehicle
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id}/estado [patch]
func (h *VehicleHandler) ChangeState(c *fiber.Ctx) error {
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
// @Summary      Dar de baja lógica al vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del vehículo"
// @Param        body  body  dto.StateChangeRequest  false  "Motivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [delete]
func (h *VehicleHandler) Deactivate(c *fiber.Ctx) error {
	var in dto.StateChangeRequest
	_ = c.BodyParser(&in)
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar vehículos
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        companyId  query  string  false  "ID de la empresa"
// @Param        state      query  string  false  "Estado"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        skip       query  int     false  "Salto"   default(0)
// @Success      200  {object}  dto.ListResponse[entity.Vehicle]
// @Router       /api/vehiculos [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	var in dto.ListVehiclesRequest
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
	return c.JSON(dto.ListResponse[*entity.Vehicle]{
		Items: items, Total: total, Limit: in.Limit, Skip: in.Skip,
	})
}
