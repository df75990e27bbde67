package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ImportLogRepository historial append-only de la conciliación.
type ImportLogRepository interface {
	Create(ctx context.Context, entry *entity.ImportLog) error
	// List ordena por fecha; newestFirst invierte el orden.
	List(ctx context.Context, newestFirst bool) ([]*entity.ImportLog, error)
}
