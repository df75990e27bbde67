package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/internal/application/importer"
)

// ExportHandler descargas del catálogo.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Catalog godoc
// @Summary      Exportar catálogo completo como ZIP
// @Description  dados_exportados.zip con dados_exportados.json; el archivo puede reimportarse.
// @Tags         export
// @Produce      application/zip
// @Success      200  {file}  file
// @Router       /api/export/catalog [get]
func (h *ExportHandler) Catalog(c *fiber.Ctx) error {
	data, err := h.uc.CatalogZip(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return sendAttachment(c, importer.CatalogZipName, "application/zip", data)
}

// Workbook godoc
// @Summary      Exportar catálogo como XLSX
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/export/xlsx [get]
func (h *ExportHandler) Workbook(c *fiber.Ctx) error {
	data, err := h.uc.Workbook(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	name := fmt.Sprintf("estoque_%s.xlsx", time.Now().Format("20060102"))
	return sendAttachment(c, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// StockReport godoc
// @Summary      Reporte de stock en PDF
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/export/stock-report [get]
func (h *ExportHandler) StockReport(c *fiber.Ctx) error {
	data, err := h.uc.StockReport(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	name := fmt.Sprintf("estoque_%s.pdf", time.Now().Format("20060102"))
	return sendAttachment(c, name, "application/pdf", data)
}
