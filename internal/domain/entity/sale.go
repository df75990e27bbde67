package entity

import "github.com/shopspring/decimal"

// Sale dato de referencia de ventas mensuales (solo lectura en la API).
type Sale struct {
	ID     string
	Month  string
	Amount decimal.Decimal
}
