package entity

import "time"

// Tipos de decisión registrados por la conciliación.
const (
	ImportLogKindNew     = "new"
	ImportLogKindUpdated = "updated"
)

// Detalles fijos de cada decisión.
const (
	ImportLogDetailNew     = "Novo produto criado no estoque."
	ImportLogDetailUpdated = "Quantidade somada ao produto existente."
)

// ImportLog entrada append-only del historial de importaciones.
type ImportLog struct {
	ID            string
	Date          time.Time
	Kind          string
	ProductName   string
	CategoryLabel string
	Quantity      int
	Price         int64
	Detail        string
}
