package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de movimientos (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve los movimientos del más reciente al más antiguo.
	List(ctx context.Context) ([]*entity.Movement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
