package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/usecase"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// ExpedienteHandler maneja las peticiones HTTP de expedientes de trámite.
// Track es la única operación pública; el resto va autenticado.
type ExpedienteHandler struct {
	uc *usecase.ExpedienteUseCase
}

// NewExpedienteHandler construye el handler.
func NewExpedienteHandler(uc *usecase.ExpedienteUseCase) *ExpedienteHandler {
	return &ExpedienteHandler{uc: uc}
}

// attachDocumentRequest metadatos del documento anexado; el binario vive en
// el almacenamiento externo referenciado por storageKey.
type attachDocumentRequest struct {
	Kind        string `json:"kind" validate:"omitempty,max=50"`
	FileName    string `json:"fileName" validate:"required,max=250"`
	ContentType string `json:"contentType" validate:"omitempty,max=120"`
	SizeBytes   int64  `json:"sizeBytes" validate:"omitempty,min=0"`
	StorageKey  string `json:"storageKey" validate:"omitempty,max=500"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// Create godoc
// @Summary      Registrar expediente
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpedienteRequest  true  "Datos del expediente"
// @Success      201   {object}  entity.Expediente
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expedientes [post]
func (h *ExpedienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpedienteRequest
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
// @Summary      Obtener expediente por ID
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {object}  entity.Expediente
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id} [get]
func (h *ExpedienteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Derive godoc
// @Summary      Derivar expediente a otra oficina
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del expediente"
// @Param        body  body  dto.DeriveExpedienteRequest  true  "Oficina destino"
// @Success      200   {object}  entity.Expediente
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id}/derivar [post]
func (h *ExpedienteHandler) Derive(c *fiber.Ctx) error {
	var in dto.DeriveExpedienteRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Derive(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeState godoc
// @Summary      Cambiar estado del expediente
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del expediente"
// @Param        body  body  dto.ChangeExpedienteStateRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Expediente
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id}/estado [patch]
func (h *ExpedienteHandler) ChangeState(c *fiber.Ctx) error {
	var in dto.ChangeExpedienteStateRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ChangeState(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Track godoc
// @Summary      Consulta pública del estado de un expediente
// @Tags         publico
// @Produce      json
// @Param        numero  path  string  true  "Número E-NNNN-YYYY"
// @Success      200  {object}  dto.TrackingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/tracking/{numero} [get]
func (h *ExpedienteHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.Track(c.UserContext(), c.Params("numero"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AttachDocument godoc
// @Summary      Anexar documento al expediente
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del expediente"
// @Param        body  body  attachDocumentRequest  true  "Metadatos del documento"
// @Success      201   {object}  entity.Document
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id}/documentos [post]
func (h *ExpedienteHandler) AttachDocument(c *fiber.Ctx) error {
	var in attachDocumentRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	doc := &entity.Document{
		Kind:        in.Kind,
		FileName:    in.FileName,
		ContentType: in.ContentType,
		SizeBytes:   in.SizeBytes,
		StorageKey:  in.StorageKey,
		Description: in.Description,
	}
	out, err := h.uc.AttachDocument(c.UserContext(), c.Params("id"), GetUserID(c), doc)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDocuments godoc
// @Summary      Listar documentos del expediente
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {array}  entity.Document
// @Router       /api/expedientes/{id}/documentos [get]
func (h *ExpedienteHandler) ListDocuments(c *fiber.Ctx) error {
	out, err := h.uc.ListDocuments(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar expedientes
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        state   query  string  false  "Estado"
// @Param        office  query  string  false  "Oficina actual"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        skip    query  int     false  "Salto"   default(0)
// @Success      200  {object}  dto.ListResponse[entity.Expediente]
// @Router       /api/expedientes [get]
func (h *ExpedienteHandler) List(c *fiber.Ctx) error {
	var in dto.ListExpedientesRequest
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
	return c.JSON(dto.ListResponse[*entity.Expediente]{
		Items: items, Total: total, Limit: in.Limit, Skip: in.Skip,
	})
}
