package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ImportLogRepository = (*ImportLogRepo)(nil)

// ImportLogRepo historial de conciliaciones (usable con pool o tx).
type ImportLogRepo struct {
	q Querier
}

// NewImportLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewImportLogRepository(q Querier) *ImportLogRepo {
	return &ImportLogRepo{q: q}
}

// Create agrega una entrada al historial.
func (r *ImportLogRepo) Create(ctx context.Context, e *entity.ImportLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO import_logs (id, date, kind, product_name, category_label, quantity, price, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Date, e.Kind, e.ProductName, e.CategoryLabel, e.Quantity, e.Price, e.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert import log: %w", err)
	}
	return nil
}

// List ordena por fecha; newestFirst invierte el orden.
func (r *ImportLogRepo) List(ctx context.Context, newestFirst bool) ([]*entity.ImportLog, error) {
	order := `ORDER BY date, seq`
	if newestFirst {
		order = `ORDER BY date DESC, seq DESC`
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, date, kind, product_name, category_label, quantity, price, detail
		FROM import_logs `+order)
	if err != nil {
		return nil, fmt.Errorf("list import logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportLog
	for rows.Next() {
		var e entity.ImportLog
		if err := rows.Scan(&e.ID, &e.Date, &e.Kind, &e.ProductName, &e.CategoryLabel, &e.Quantity, &e.Price, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan import log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
