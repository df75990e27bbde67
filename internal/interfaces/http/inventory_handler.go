package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock.
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Entrada suma stock; Saída resta solo si hay cantidad suficiente ("Saida" se acepta como alias).
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "tipo, produto_id, quantidade"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Del más reciente al más antiguo; produto_id filtra por producto.
// @Tags         movements
// @Produce      json
// @Param        produto_id  query  string  false  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("produto_id"))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}
