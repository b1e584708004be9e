package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/pkg/jwt"
)

// Claves de Locals pobladas por el middleware de autenticación.
const (
	LocalUserID  = "user_id"
	LocalRole    = "role"
	LocalOficina = "oficina"
)

// AuthMiddleware valida el token Bearer y deja la identidad en Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "falta el encabezado Authorization",
			})
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "se espera un token Bearer",
			})
		}
		claims, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "token inválido o expirado",
			})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalOficina, claims.Oficina)
		return c.Next()
	}
}

// RequireRole corta con 403 cuando el rol autenticado no está en la lista.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[GetRole(c)]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "el rol no tiene acceso a esta operación",
			})
		}
		return c.Next()
	}
}

// GetUserID devuelve el ID del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalUserID).(string); ok {
		return v
	}
	return ""
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalRole).(string); ok {
		return v
	}
	return ""
}

// GetOficina devuelve la oficina del usuario autenticado.
func GetOficina(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalOficina).(string); ok {
		return v
	}
	return ""
}
