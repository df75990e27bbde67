package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
)

func openStore(t *testing.T) repository.Repositories {
	t.Helper()
	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.Repositories()
}

func newCategory(name string) *entity.Category {
	now := time.Now().UTC()
	return &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
}

func newProduct(name, categoryID string, qty int) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID: uuid.New().String(), Name: name, Quantity: qty, Price: 1250,
		CategoryID: categoryID, CreatedAt: now, UpdatedAt: now,
	}
}

func TestProductRepo_JoinAndFindByNameAndCategory(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)

	cat := newCategory("Ferramentas")
	require.NoError(t, repos.Categories.Create(ctx, cat))

	withCat := newProduct("Martelo", cat.ID, 3)
	noCat := newProduct("Martelo", "", 7)
	require.NoError(t, repos.Products.Create(ctx, withCat))
	require.NoError(t, repos.Products.Create(ctx, noCat))

	got, err := repos.Products.GetByID(ctx, withCat.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ferramentas", got.CategoryName)
	assert.Equal(t, int64(1250), got.Price)

	found, err := repos.Products.FindByNameAndCategory(ctx, "Martelo", "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, noCat.ID, found.ID)

	found, err = repos.Products.FindByNameAndCategory(ctx, "Martelo", cat.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, withCat.ID, found.ID)

	missing, err := repos.Products.FindByNameAndCategory(ctx, "martelo", cat.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_CreateWithUnknownCategory(t *testing.T) {
	repos := openStore(t)
	err := repos.Products.Create(context.Background(), newProduct("X", uuid.New().String(), 1))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCategoryRepo_DeleteReferencedIsConflict(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)

	cat := newCategory("Bebidas")
	require.NoError(t, repos.Categories.Create(ctx, cat))
	require.NoError(t, repos.Products.Create(ctx, newProduct("Água", cat.ID, 1)))

	err := repos.Categories.Delete(ctx, cat.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = repos.Categories.Delete(ctx, uuid.New().String())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductRepo_DeleteWithMovementsIsConflict(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)

	p := newProduct("Caneta", "", 5)
	require.NoError(t, repos.Products.Create(ctx, p))
	require.NoError(t, repos.Movements.Create(ctx, &entity.Movement{
		ID: uuid.New().String(), Type: entity.MovementTypeEntrada, ProductID: p.ID,
		Quantity: 5, Price: p.Price, Date: time.Now(),
	}))

	err := repos.Products.Delete(ctx, p.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCategoryRepo_FindByNameReturnsOldest(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)

	first := newCategory("Limpeza")
	first.CreatedAt = time.Now().Add(-time.Hour)
	second := newCategory("Limpeza")
	require.NoError(t, repos.Categories.Create(ctx, second))
	require.NoError(t, repos.Categories.Create(ctx, first))

	got, err := repos.Categories.FindByName(ctx, "Limpeza")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)
	boom := errors.New("boom")

	err := repos.Tx.Run(ctx, func(tx repository.TxRepositories) error {
		if err := tx.Categories.Create(ctx, newCategory("Temporária")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)
	now := time.Now()
	u := &entity.User{ID: uuid.New().String(), Name: "A", Email: "a@x.com", PasswordHash: "h", Role: entity.RoleUser, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Users.Create(ctx, u))

	dup := *u
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, repos.Users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	got, err := repos.Users.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleRepo_DecimalRoundTrip(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
		ID: uuid.New().String(), Month: "Janeiro", Amount: decimal.RequireFromString("1234.56"),
	}))

	list, err := repos.Sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("1234.56")))
}

func TestImportLogRepo_Ordering(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t)
	base := time.Now().UTC()
	for i, name := range []string{"a", "b", "c"} {
		require.NoError(t, repos.ImportLogs.Create(ctx, &entity.ImportLog{
			ID: uuid.New().String(), Date: base.Add(time.Duration(i) * time.Second),
			Kind: entity.ImportLogKindNew, ProductName: name, Quantity: 1,
		}))
	}

	newest, err := repos.ImportLogs.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "c", newest[0].ProductName)

	oldest, err := repos.ImportLogs.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "a", oldest[0].ProductName)
}
