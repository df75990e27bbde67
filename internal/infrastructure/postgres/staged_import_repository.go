package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StagedImportRepository = (*StagedImportRepo)(nil)

// StagedImportRepo área de staging de la importación (usable con pool o tx).
type StagedImportRepo struct {
	q Querier
}

// NewStagedImportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStagedImportRepository(q Querier) *StagedImportRepo {
	return &StagedImportRepo{q: q}
}

// Create agrega una fila al staging.
func (r *StagedImportRepo) Create(ctx context.Context, s *entity.StagedImport) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO staged_imports (id, name, category_label, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.CategoryLabel, s.Quantity, s.Price, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert staged import: %w", err)
	}
	return nil
}

// GetByID obtiene una fila; (nil, nil) si no existe.
func (r *StagedImportRepo) GetByID(ctx context.Context, id string) (*entity.StagedImport, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var s entity.StagedImport
	err := r.q.QueryRow(ctx, `
		SELECT id, name, category_label, quantity, price, created_at
		FROM staged_imports WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.CategoryLabel, &s.Quantity, &s.Price, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staged import: %w", err)
	}
	return &s, nil
}

// List devuelve las filas en orden de llegada.
func (r *StagedImportRepo) List(ctx context.Context) ([]*entity.StagedImport, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, category_label, quantity, price, created_at
		FROM staged_imports ORDER BY created_at, seq`)
	if err != nil {
		return nil, fmt.Errorf("list staged imports: %w", err)
	}
	defer rows.Close()
	var list []*entity.StagedImport
	for rows.Next() {
		var s entity.StagedImport
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryLabel, &s.Quantity, &s.Price, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan staged import: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una fila. No falla si ya no existe.
func (r *StagedImportRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM staged_imports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete staged import: %w", err)
	}
	return nil
}
