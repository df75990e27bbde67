package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// SaleRepository datos de referencia de ventas mensuales.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context) ([]*entity.Sale, error)
}
