package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/importer"
)

// UploadField nombre del campo multipart con el archivo a importar.
const UploadField = "arquivo"

// ImportHandler staging, conciliación e historial de importaciones.
type ImportHandler struct {
	uc *importer.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

const stagedNotFound = "fila de importación no encontrada"

// Upload godoc
// @Summary      Importar archivo al staging
// @Description  Acepta .json o .zip (con dados_exportados.json). Un ítem inválido aborta toda la importación.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        arquivo  formData  file  true  "Archivo .json o .zip"
// @Success      201  {object}  dto.StageResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/imports/upload [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: fmt.Sprintf("campo %q requerido", UploadField)})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err, "")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, err, "")
	}
	out, err := h.uc.StageFile(c.Context(), fh.Filename, content)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FromURL godoc
// @Summary      Importar desde URL al staging
// @Tags         imports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportURLRequest  true  "url terminada en .json o .zip"
// @Success      201   {object}  dto.StageResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/imports/url [post]
func (h *ImportHandler) FromURL(c *fiber.Ctx) error {
	var in dto.ImportURLRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url es requerida"})
	}
	out, err := h.uc.StageURL(c.Context(), in.URL)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FromPayload godoc
// @Summary      Importar documento JSON del cuerpo al staging
// @Tags         imports
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.StageResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/imports/payload [post]
func (h *ImportHandler) FromPayload(c *fiber.Ctx) error {
	out, err := h.uc.StagePayload(c.Context(), c.Body())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStaged godoc
// @Summary      Listar filas del staging
// @Tags         imports
// @Produce      json
// @Success      200  {array}  dto.StagedImportResponse
// @Router       /api/imports/staged [get]
func (h *ImportHandler) ListStaged(c *fiber.Ctx) error {
	out, err := h.uc.ListStaged(c.Context())
	if err != nil {
		return writeError(c, err, stagedNotFound)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar filas del staging
// @Tags         imports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDsRequest  true  "ids"
// @Success      200   {object}  dto.DiscardResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/imports/staged/discard [post]
func (h *ImportHandler) Discard(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Discard(c.Context(), in.IDs)
	if err != nil {
		return writeError(c, err, stagedNotFound)
	}
	return c.JSON(out)
}

// ExportStaged godoc
// @Summary      Exportar staging como ZIP
// @Tags         imports
// @Produce      application/zip
// @Success      200  {file}  file
// @Router       /api/imports/staged/export [get]
func (h *ImportHandler) ExportStaged(c *fiber.Ctx) error {
	data, err := h.uc.ExportStaged(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return sendAttachment(c, importer.StagedZipName, "application/zip", data)
}

// Reconcile godoc
// @Summary      Conciliar filas seleccionadas con el stock
// @Description  Procesa los ids en orden en una sola transacción. Ids inexistentes se informan en ignorados.
// @Tags         imports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDsRequest  true  "ids"
// @Success      200   {object}  dto.ReconcileResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/imports/reconcile [post]
func (h *ImportHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Reconcile(c.Context(), in.IDs)
	if err != nil {
		return writeError(c, err, stagedNotFound)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de importaciones
// @Tags         imports
// @Produce      json
// @Success      200  {array}  dto.ImportLogResponse
// @Router       /api/imports/history [get]
func (h *ImportHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ExportLog godoc
// @Summary      Exportar historial como texto
// @Tags         imports
// @Produce      plain
// @Success      200  {string}  string
// @Router       /api/imports/history/export [get]
func (h *ImportHandler) ExportLog(c *fiber.Ctx) error {
	text, err := h.uc.ExportLog(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return sendAttachment(c, importer.LogFileName, "text/plain; charset=utf-8", []byte(text))
}

func sendAttachment(c *fiber.Ctx, filename, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
