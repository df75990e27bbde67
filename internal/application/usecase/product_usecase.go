package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad también cambia vía movimientos e importaciones.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, movements repository.MovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, movements: movements}
}

// Create crea un nuevo producto. El precio digitado se normaliza a centavos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome es obligatorio", domain.ErrInvalidInput)
	}
	if err := inventory.CheckQuantity(in.Quantity); err != nil {
		return nil, err
	}
	price, err := inventory.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	category, err := uc.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if category != nil {
		product.CategoryID = category.ID
		product.CategoryName = category.Name
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// List lista los productos con el nombre de su categoría.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// Update actualiza los campos presentes en la entrada.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nome no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Quantity != nil {
		if err := inventory.CheckQuantity(*in.Quantity); err != nil {
			return nil, err
		}
		product.Quantity = *in.Quantity
	}
	if in.Price != nil {
		price, err := inventory.ParsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if in.CategoryID != nil {
		category, err := uc.resolveCategory(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID, product.CategoryName = "", ""
		if category != nil {
			product.CategoryID = category.ID
			product.CategoryName = category.Name
		}
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina el producto si no tiene movimientos (política restrict).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	n, err := uc.movements.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el producto tiene %d movimiento(s)", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

// resolveCategory valida la referencia; "" = sin categoría.
func (uc *ProductUseCase) resolveCategory(ctx context.Context, id string) (*entity.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: la categoría %s no existe", domain.ErrInvalidInput, id)
	}
	return c, nil
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Quantity:       p.Quantity,
		Price:          p.Price,
		PriceFormatted: inventory.FormatPrice(p.Price),
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
