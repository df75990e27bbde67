package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre SQLite.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM categories WHERE id = ?`, id)
}

// FindByName busca por nombre exacto; la más antigua gana si hay varias.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE name = ? ORDER BY created_at, rowid LIMIT 1`,
		name,
	)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Update renombra la categoría.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`,
		c.Name, toMillis(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las categorías por orden de alta.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina la categoría. Si algún producto la referencia devuelve ErrConflict.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategory(row rowScanner) (*entity.Category, error) {
	var c entity.Category
	var created, updated int64
	if err := row.Scan(&c.ID, &c.Name, &created, &updated); err != nil {
		return nil, err
	}
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return &c, nil
}
