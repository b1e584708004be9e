package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/bulk"
	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/excel"
)

// BulkHandler maneja la carga masiva por planilla XLSX: descarga de
// plantillas, validación en seco y aplicación idempotente. Cada colección
// monta sus rutas /bulk/* con el dataset ya fijado.
type BulkHandler struct {
	svc *bulk.Service
}

// NewBulkHandler construye el handler.
func NewBulkHandler(svc *bulk.Service) *BulkHandler {
	return &BulkHandler{svc: svc}
}

// Template godoc
// @Summary      Descargar plantilla XLSX de la colección
// @Tags         carga
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/empresas/bulk/plantilla [get]
func (h *BulkHandler) Template(dataset string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := excel.WriteTemplate(&buf, dataset); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "UNKNOWN_DATASET", Message: err.Error(),
			})
		}
		c.Set(fiber.HeaderContentType,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="plantilla_%s.xlsx"`, dataset))
		return c.Send(buf.Bytes())
	}
}

// Validate godoc
// @Summary      Validar planilla sin aplicar cambios
// @Tags         carga
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla XLSX"
// @Success      200  {object}  bulk.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/empresas/bulk/validate [post]
func (h *BulkHandler) Validate(dataset string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := readUpload(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_FILE", Message: err.Error(),
			})
		}
		report, err := h.svc.Validate(c.UserContext(), dataset, table)
		if err != nil {
			return writeError(c, err)
		}
		return h.sendReport(c, report)
	}
}

// Apply godoc
// @Summary      Aplicar planilla con upsert idempotente
// @Tags         carga
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "Planilla XLSX"
// @Param        ref   query     string  false  "Referencia del documento fuente"
// @Success      200  {object}  bulk.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/empresas/bulk/apply [post]
func (h *BulkHandler) Apply(dataset string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := readUpload(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_FILE", Message: err.Error(),
			})
		}
		report, err := h.svc.Apply(c.UserContext(), dataset, table,
			GetUserID(c), c.Query("ref"))
		if err != nil {
			return writeError(c, err)
		}
		return h.sendReport(c, report)
	}
}

// readUpload extrae la planilla del campo multipart "file".
func readUpload(c *fiber.Ctx) (bulk.Table, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return bulk.Table{}, fmt.Errorf("se espera la planilla en el campo multipart %q", "file")
	}
	f, err := fh.Open()
	if err != nil {
		return bulk.Table{}, fmt.Errorf("no se pudo abrir el archivo subido")
	}
	defer f.Close()
	return excel.ReadTable(f)
}

// sendReport responde el reporte en JSON o, con ?format=xlsx, como planilla
// descargable de hallazgos.
func (h *BulkHandler) sendReport(c *fiber.Ctx, report *bulk.Report) error {
	if c.Query("format") != "xlsx" {
		return c.JSON(report)
	}
	var buf bytes.Buffer
	if err := excel.WriteReport(&buf, report); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_carga.xlsx"`)
	return c.Send(buf.Bytes())
}
