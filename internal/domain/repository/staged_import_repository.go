package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// StagedImportRepository área de staging de filas importadas.
type StagedImportRepository interface {
	Create(ctx context.Context, row *entity.StagedImport) error
	GetByID(ctx context.Context, id string) (*entity.StagedImport, error)
	// List devuelve las filas en orden de llegada.
	List(ctx context.Context) ([]*entity.StagedImport, error)
	Delete(ctx context.Context, id string) error
}
