package dto

import "time"

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"nome" validate:"required,min=1,max=255"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
