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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.quantity, p.price,
	       COALESCE(p.category_id, ''), COALESCE(c.name, ''), p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (id, name, description, quantity, price, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Quantity, p.Price, nullIfEmpty(p.CategoryID),
		toMillis(p.CreatedAt), toMillis(p.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con el nombre de su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.id = ?`, id)
}

// GetForUpdate en SQLite equivale a GetByID: la transacción de escritura ya serializa el acceso.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// FindByNameAndCategory busca por nombre exacto; categoryID vacío busca productos sin categoría.
func (r *ProductRepo) FindByNameAndCategory(ctx context.Context, name, categoryID string) (*entity.Product, error) {
	if categoryID == "" {
		return r.getOne(ctx, productSelect+` WHERE p.name = ? AND p.category_id IS NULL ORDER BY p.created_at, p.rowid LIMIT 1`, name)
	}
	return r.getOne(ctx, productSelect+` WHERE p.name = ? AND p.category_id = ? ORDER BY p.created_at, p.rowid LIMIT 1`, name, categoryID)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza todos los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, quantity = ?, price = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Quantity, p.Price, nullIfEmpty(p.CategoryID), toMillis(p.UpdatedAt), p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad en stock (usado por movimientos e importación).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET quantity = ?, updated_at = ? WHERE id = ?`,
		quantity, toMillis(timeNow()), id,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los productos por orden de alta.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, productSelect+` ORDER BY p.created_at, p.rowid`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el producto. Si tiene movimientos devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = ?`, categoryID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// StockByCategory suma cantidades agrupadas por nombre de categoría.
func (r *ProductRepo) StockByCategory(ctx context.Context) ([]entity.CategoryStock, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT COALESCE(c.name, ''), COALESCE(SUM(p.quantity), 0)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY COALESCE(c.name, '')
		ORDER BY COALESCE(c.name, '')`)
	if err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	defer rows.Close()
	var out []entity.CategoryStock
	for rows.Next() {
		var cs entity.CategoryStock
		if err := rows.Scan(&cs.Category, &cs.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock by category: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var created, updated int64
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price,
		&p.CategoryID, &p.CategoryName, &created, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return &p, nil
}
