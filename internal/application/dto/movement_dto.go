package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	Type      string `json:"tipo" validate:"required,oneof=Entrada Saída"`
	ProductID string `json:"produto_id" validate:"required"`
	Quantity  int    `json:"quantidade" validate:"required,gt=0"`
}

// MovementResponse salida de un movimiento con el nombre del producto.
type MovementResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"tipo"`
	ProductID   string    `json:"produto_id"`
	ProductName string    `json:"produto"`
	Quantity    int       `json:"quantidade"`
	Price       int64     `json:"preco"`
	Date        time.Time `json:"data"`
	CreatedBy   string    `json:"criado_por,omitempty"`
}

// RegisterMovementResponse movimiento registrado y cantidad resultante del producto.
type RegisterMovementResponse struct {
	Movement        MovementResponse `json:"movimentacao"`
	ProductQuantity int              `json:"quantidade_atual"`
}
