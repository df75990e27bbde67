package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
)

func openRepos(t *testing.T) repository.Repositories {
	t.Helper()
	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.Repositories()
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestProductUseCase_CreateNormalizesPrice(t *testing.T) {
	ctx := context.Background()
	repos := openRepos(t)
	uc := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Movements)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Cadeira", Quantity: 2, Price: "199,999"})
	require.NoError(t, err)
	assert.Equal(t, int64(19999), p.Price)
	assert.Equal(t, "199,99", p.PriceFormatted)

	p, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Mesa", Price: ""})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Price)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Banco", Price: "abc"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Banco", Price: "-1"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Banco", Quantity: -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Banco", CategoryID: "inexistente"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestProductUseCase_UpdateAndCategory(t *testing.T) {
	ctx := context.Background()
	repos := openRepos(t)
	categories := usecase.NewCategoryUseCase(repos.Categories, repos.Products)
	uc := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Movements)

	cat, err := categories.Create(ctx, dto.CategoryRequest{Name: "Móveis"})
	require.NoError(t, err)
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Cadeira", Quantity: 1, Price: "10"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{
		Quantity:   intPtr(4),
		Price:      strPtr("12.5"),
		CategoryID: strPtr(cat.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, int64(1250), updated.Price)
	assert.Equal(t, "Móveis", updated.CategoryName)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.CategoryID)

	updated, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{CategoryID: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.CategoryID)

	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeletePolicyRestrict(t *testing.T) {
	ctx := context.Background()
	repos := openRepos(t)
	categories := usecase.NewCategoryUseCase(repos.Categories, repos.Products)
	products := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Movements)
	movements := inventory.NewRegisterMovementUseCase(repos.Tx, repos.Movements)

	cat, err := categories.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Água", CategoryID: cat.ID})
	require.NoError(t, err)

	err = categories.Delete(ctx, cat.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = movements.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: entity.MovementTypeEntrada, Quantity: 1})
	require.NoError(t, err)
	err = products.Delete(ctx, p.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	free, err := products.Create(ctx, dto.CreateProductRequest{Name: "Copo"})
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, free.ID))
	assert.True(t, errors.Is(products.Delete(ctx, free.ID), domain.ErrNotFound))

	empty, err := categories.Create(ctx, dto.CategoryRequest{Name: "Vazia"})
	require.NoError(t, err)
	require.NoError(t, categories.Delete(ctx, empty.ID))
	assert.True(t, errors.Is(categories.Delete(ctx, empty.ID), domain.ErrNotFound))
}

func TestCategoryUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	repos := openRepos(t)
	uc := usecase.NewCategoryUseCase(repos.Categories, repos.Products)

	_, err := uc.Create(ctx, dto.CategoryRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: "Higiene"})
	require.NoError(t, err)
	renamed, err := uc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Higiene Pessoal"})
	require.NoError(t, err)
	assert.Equal(t, "Higiene Pessoal", renamed.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserUseCase(t *testing.T) {
	ctx := context.Background()
	repos := openRepos(t)
	uc := usecase.NewUserUseCase(repos.Users)

	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Ana 2", Email: "ana@example.com", Password: "segredo123"})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Bia", Email: "bia@example.com", Password: "curta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Bia", Email: "não-é-email", Password: "segredo123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Bia", Email: "bia@example.com", Password: "segredo123", Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	updated, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: strPtr(entity.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	assert.True(t, errors.Is(uc.Delete(ctx, u.ID, u.ID), domain.ErrConflict))
	require.NoError(t, uc.Delete(ctx, "other-admin", u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
