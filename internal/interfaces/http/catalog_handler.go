package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// CatalogHandler administra los catálogos de valores (solo admin).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// upsertCatalogRequest valores completos del catálogo; reemplazan a los
// existentes bajo la misma clave.
type upsertCatalogRequest struct {
	Values []entity.CatalogValue `json:"values" validate:"required,min=1,dive"`
}

// List godoc
// @Summary      Listar catálogos
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Catalog
// @Router       /api/catalogos [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener catálogo por clave
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave del catálogo"
// @Success      200  {object}  entity.Catalog
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogos/{key} [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o reemplazar catálogo (solo admin)
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Clave del catálogo"
// @Param        body  body  upsertCatalogRequest  true  "Valores"
// @Success      200   {object}  entity.Catalog
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalogos/{key} [put]
func (h *CatalogHandler) Upsert(c *fiber.Ctx) error {
	var in upsertCatalogRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Upsert(c.UserContext(), c.Params("key"), in.Values)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reload godoc
// @Summary      Recargar los catálogos en memoria (solo admin)
// @Tags         catalogos
// @Security     Bearer
// @Success      204
// @Router       /api/catalogos/reload [post]
func (h *CatalogHandler) Reload(c *fiber.Ctx) error {
	if err := h.uc.Reload(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
