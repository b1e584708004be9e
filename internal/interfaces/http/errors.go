package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
)

// validate instancia compartida del validador de DTOs.
var validate = validator.New()

// bindBody parsea y valida el cuerpo JSON contra las etiquetas del DTO.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	if err := validate.Struct(out); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			details := make([]domain.Finding, 0, len(ve))
			for _, fe := range ve {
				details = append(details, domain.Error(fe.Field(), "VALIDATION",
					"no cumple la regla "+fe.Tag()))
			}
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "cuerpo inválido", Details: details,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	}
	return nil
}

// writeError traduce errores de dominio a códigos HTTP en un solo lugar:
// hallazgos de validación 400, no encontrado 404, conflicto y referencias en
// uso 409, credenciales 401, acceso 403, fallos del almacén 500.
func writeError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "la entidad no pasa las validaciones",
			Details: ve.Findings,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrReferenceInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "REFERENCE_IN_USE", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONFLICT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "credenciales inválidas",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "acceso denegado",
		})
	case errors.Is(err, domain.ErrStore):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "STORE", Message: "fallo del almacén de documentos",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
