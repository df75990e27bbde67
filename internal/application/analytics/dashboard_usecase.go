// Package analytics contiene las consultas de solo lectura para el dashboard:
// ventas mensuales de referencia y stock agrupado por categoría.
package analytics

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// DashboardUseCase agrega datos del catálogo y de ventas.
type DashboardUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, sales repository.SaleRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, sales: sales}
}

// StockByCategory total de unidades por categoría; productos sin categoría van con etiqueta vacía.
func (uc *DashboardUseCase) StockByCategory(ctx context.Context) ([]dto.CategoryStockResponse, error) {
	rows, err := uc.products.StockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryStockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryStockResponse{Category: r.Category, Quantity: r.Quantity})
	}
	return out, nil
}

// Sales ventas mensuales en el orden de carga.
func (uc *DashboardUseCase) Sales(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SaleResponse{Month: s.Month, Amount: s.Amount})
	}
	return out, nil
}
