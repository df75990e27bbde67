package dto

import "github.com/shopspring/decimal"

// SaleResponse venta mensual de referencia (GET /api/sales).
type SaleResponse struct {
	Month  string          `json:"mes"`
	Amount decimal.Decimal `json:"valor"`
}

// CategoryStockResponse total en stock por categoría (GET /api/dashboard/stock-by-category).
type CategoryStockResponse struct {
	Category string `json:"categoria"`
	Quantity int    `json:"quantidade"`
}
