package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "Entrada" // suma stock
	MovementTypeSaida   = "Saída"   // resta stock
)

// Movement registro append-only de una entrada o salida de stock.
type Movement struct {
	ID          string
	Type        string
	ProductID   string
	ProductName string // solo lectura
	Quantity    int
	Price       int64 // precio del producto al momento del movimiento
	Date        time.Time
	CreatedBy   string // UserID, vacío si la sesión es anónima
}

// NormalizeMovementType acepta "Saida" sin tilde como alias. Devuelve "" si el tipo no existe.
func NormalizeMovementType(t string) string {
	switch t {
	case MovementTypeEntrada:
		return MovementTypeEntrada
	case MovementTypeSaida, "Saida":
		return MovementTypeSaida
	}
	return ""
}
