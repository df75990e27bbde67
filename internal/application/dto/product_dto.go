package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// Preco es el texto digitado ("12,50" o "12.50"); se guarda en centavos.
type CreateProductRequest struct {
	Name        string `json:"nome" validate:"required,min=1,max=255"`
	Description string `json:"descricao"`
	Quantity    int    `json:"quantidade" validate:"min=0"`
	Price       string `json:"preco"`
	CategoryID  string `json:"categoria_id"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no se modifican;
// categoria_id "" quita la categoría.
type UpdateProductRequest struct {
	Name        *string `json:"nome"`
	Description *string `json:"descricao"`
	Quantity    *int    `json:"quantidade"`
	Price       *string `json:"preco"`
	CategoryID  *string `json:"categoria_id"`
}

// ProductResponse salida de un producto con la categoría resuelta.
type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"nome"`
	Description    string    `json:"descricao"`
	Quantity       int       `json:"quantidade"`
	Price          int64     `json:"preco"`           // centavos
	PriceFormatted string    `json:"preco_formatado"` // "12,50"
	CategoryID     string    `json:"categoria_id,omitempty"`
	CategoryName   string    `json:"categoria,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
