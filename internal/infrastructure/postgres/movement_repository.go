package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only del libro de movimientos (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.type, m.product_id, COALESCE(p.name, ''), m.quantity, m.price, m.date, COALESCE(m.created_by::text, '')
	FROM movements m
	LEFT JOIN products p ON p.id = m.product_id`

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, product_id, quantity, price, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" && isUUID(m.CreatedBy) {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Type, m.ProductID, m.Quantity, m.Price, m.Date, createdBy,
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
	return r.list(ctx, movementSelect+` ORDER BY m.date DESC, m.seq DESC`)
}

// ListByProduct movimientos de un producto, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	return r.list(ctx, movementSelect+` WHERE m.product_id = $1 ORDER BY m.date DESC, m.seq DESC`, productID)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.ProductID, &m.ProductName, &m.Quantity, &m.Price, &m.Date, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos de un producto.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	if !isUUID(productID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements WHERE product_id = $1`, productID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}
