package entity

import "time"

// StagedImport fila importada desde una fuente externa, pendiente de conciliación.
// Se elimina al conciliarla o descartarla.
type StagedImport struct {
	ID            string
	Name          string
	CategoryLabel string // texto libre; vacío = sin categoría
	Quantity      int
	Price         int64
	CreatedAt     time.Time
}
