package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only del libro de movimientos sobre SQLite.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.type, m.product_id, COALESCE(p.name, ''), m.quantity, m.price, m.date, COALESCE(m.created_by, '')
	FROM movements m
	LEFT JOIN products p ON p.id = m.product_id`

// Create registra un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO movements (id, type, product_id, quantity, price, date, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Type, m.ProductID, m.Quantity, m.Price, toMillis(m.Date), nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto", domain.ErrNotFound)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve los movimientos del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, movementSelect+` ORDER BY m.date DESC, m.rowid DESC`)
}

// ListByProduct movimientos de un producto, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.list(ctx, movementSelect+` WHERE m.product_id = ? ORDER BY m.date DESC, m.rowid DESC`, productID)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos de un producto.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movements WHERE product_id = ?`, productID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func scanMovement(row *sql.Rows) (*entity.Movement, error) {
	var m entity.Movement
	var date int64
	if err := row.Scan(&m.ID, &m.Type, &m.ProductID, &m.ProductName, &m.Quantity, &m.Price, &date, &m.CreatedBy); err != nil {
		return nil, err
	}
	m.Date = fromMillis(date)
	return &m, nil
}
