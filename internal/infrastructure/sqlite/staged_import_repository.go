package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StagedImportRepository = (*StagedImportRepo)(nil)

// StagedImportRepo área de staging de la importación sobre SQLite.
type StagedImportRepo struct {
	q Querier
}

// NewStagedImportRepository construye el adaptador de persistencia para filas en staging.
func NewStagedImportRepository(q Querier) *StagedImportRepo {
	return &StagedImportRepo{q: q}
}

// Create agrega una fila al staging.
func (r *StagedImportRepo) Create(ctx context.Context, s *entity.StagedImport) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO staged_imports (id, name, category_label, quantity, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.CategoryLabel, s.Quantity, s.Price, toMillis(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert staged import: %w", err)
	}
	return nil
}

// GetByID obtiene una fila; (nil, nil) si no existe.
func (r *StagedImportRepo) GetByID(ctx context.Context, id string) (*entity.StagedImport, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, name, category_label, quantity, price, created_at FROM staged_imports WHERE id = ?`, id)
	s, err := scanStaged(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staged import: %w", err)
	}
	return s, nil
}

// List devuelve las filas en orden de llegada.
func (r *StagedImportRepo) List(ctx context.Context) ([]*entity.StagedImport, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, category_label, quantity, price, created_at FROM staged_imports ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list staged imports: %w", err)
	}
	defer rows.Close()
	var list []*entity.StagedImport
	for rows.Next() {
		s, err := scanStaged(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staged import: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina una fila. No falla si ya no existe.
func (r *StagedImportRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM staged_imports WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete staged import: %w", err)
	}
	return nil
}

func scanStaged(row rowScanner) (*entity.StagedImport, error) {
	var s entity.StagedImport
	var created int64
	if err := row.Scan(&s.ID, &s.Name, &s.CategoryLabel, &s.Quantity, &s.Price, &created); err != nil {
		return nil, err
	}
	s.CreatedAt = fromMillis(created)
	return &s, nil
}
