package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.quantity, p.price,
	       COALESCE(p.category_id::text, ''), COALESCE(c.name, ''), p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, quantity, price, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Quantity, product.Price,
		nullIfEmpty(product.CategoryID), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, productSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT ... FOR UPDATE OF p) hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

// FindByNameAndCategory busca por nombre exacto; categoryID vacío busca productos sin categoría.
func (r *ProductRepo) FindByNameAndCategory(ctx context.Context, name, categoryID string) (*entity.Product, error) {
	if categoryID == "" {
		return r.getOne(ctx, productSelect+`
			WHERE p.name = $1 AND p.category_id IS NULL ORDER BY p.created_at, p.seq LIMIT 1`, name)
	}
	return r.getOne(ctx, productSelect+`
		WHERE p.name = $1 AND p.category_id = $2 ORDER BY p.created_at, p.seq LIMIT 1`, name, categoryID)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price,
		&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, quantity = $4, price = $5, category_id = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Quantity, product.Price,
		nullIfEmpty(product.CategoryID), product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad en stock (usado por movimientos e importación).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los productos por orden de alta con el nombre de su categoría.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.created_at, p.seq`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price,
			&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina el producto. Si tiene movimientos devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	if !isUUID(categoryID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// StockByCategory suma cantidades agrupadas por nombre de categoría.
func (r *ProductRepo) StockByCategory(ctx context.Context) ([]entity.CategoryStock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT COALESCE(c.name, '') AS category, COALESCE(SUM(p.quantity), 0)::int
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY 1
		ORDER BY 1`)
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
