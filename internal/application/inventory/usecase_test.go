package inventory_test

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
	stock "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
)

func setup(t *testing.T) (*inventory.RegisterMovementUseCase, repository.Repositories, string) {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	repos := store.Repositories()

	products := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Movements)
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Parafuso", Quantity: 5, Price: "0,35"})
	require.NoError(t, err)

	return inventory.NewRegisterMovementUseCase(repos.Tx, repos.Movements), repos, p.ID
}

func TestRegisterMovement_EntradaAndSaida(t *testing.T) {
	ctx := context.Background()
	uc, repos, productID := setup(t)

	res, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: productID, Type: entity.MovementTypeEntrada, Quantity: 10, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 15, res.ProductQuantity)
	assert.Equal(t, int64(35), res.Movement.Price)
	assert.Equal(t, "u1", res.Movement.CreatedBy)

	res, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: productID, Type: "Saida", Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ProductQuantity)
	assert.Equal(t, entity.MovementTypeSaida, res.Movement.Type)

	p, err := repos.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)

	list, err := uc.List(ctx, productID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.MovementTypeSaida, list[0].Type)
	assert.Equal(t, "Parafuso", list[0].ProductName)
}

func TestRegisterMovement_InsufficientStockDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	uc, repos, productID := setup(t)

	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: productID, Type: entity.MovementTypeSaida, Quantity: 6})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	p, err := repos.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)

	list, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegisterMovement_Validation(t *testing.T) {
	ctx := context.Background()
	uc, _, productID := setup(t)

	cases := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"tipo inválido", inventory.MovementInputDTO{ProductID: productID, Type: "Ajuste", Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInputDTO{ProductID: productID, Type: entity.MovementTypeEntrada, Quantity: 0}, domain.ErrInvalidInput},
		{"sin producto", inventory.MovementInputDTO{Type: entity.MovementTypeEntrada, Quantity: 1}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.MovementInputDTO{ProductID: "nope", Type: entity.MovementTypeEntrada, Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tc.in)
			assert.True(t, errors.Is(err, tc.want), "err=%v", err)
		})
	}
}

func TestRegisterMovement_EntradaBeyondMaxQuantity(t *testing.T) {
	ctx := context.Background()
	uc, repos, productID := setup(t)

	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: productID, Type: entity.MovementTypeEntrada, Quantity: stock.MaxQuantity})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err=%v", err)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: productID, Type: entity.MovementTypeEntrada, Quantity: stock.MaxQuantity + 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err=%v", err)

	p, err := repos.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)

	list, err := uc.List(ctx, productID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
