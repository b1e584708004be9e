package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/auth"
	"github.com/drtc-puno/sirret-api/internal/application/dto"
)

// AuthHandler maneja login y gestión de funcionarios.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar funcionario (solo admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUserRequest  true  "Datos del funcionario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterUserRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Datos del funcionario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
