package entity

import "time"

// ImportedProductDescription descripción fija de los productos creados por la conciliación.
const ImportedProductDescription = "Importado de dados externos"

// Product representa un producto del inventario.
// Price se guarda en unidades menores (centavos); Quantity cambia vía movimientos e importaciones.
type Product struct {
	ID           string
	Name         string
	Description  string
	Quantity     int
	Price        int64
	CategoryID   string // vacío si no tiene categoría
	CategoryName string // solo lectura, resuelto por join
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
