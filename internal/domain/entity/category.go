package entity

import "time"

// Category representa una categoría de productos. Durante la importación se busca por nombre exacto.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryStock total de unidades en stock agrupado por categoría.
type CategoryStock struct {
	Category string // vacío para productos sin categoría
	Quantity int
}
