package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints de gráficos: ventas mensuales y stock por categoría.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Sales devuelve los datos de referencia de ventas mensuales.
// GET /api/sales
//
// Respuesta: [{mes, valor}] en el orden de carga.
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.Sales(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// StockByCategory devuelve el total de unidades agrupado por nombre de categoría.
// GET /api/dashboard/stock-by-category
//
// Los productos sin categoría se agrupan con categoria "".
func (h *DashboardHandler) StockByCategory(c *fiber.Ctx) error {
	out, err := h.uc.StockByCategory(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
