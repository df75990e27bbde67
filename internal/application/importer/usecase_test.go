package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/importer"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/archive"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

type fakeFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

func setup(t *testing.T, fetcher importer.Fetcher) (*importer.ImportUseCase, repository.Repositories) {
	t.Helper()
	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	repos := store.Repositories()
	uc := importer.NewImportUseCase(repos.Tx, repos.StagedImports, repos.ImportLogs, fetcher, 1<<20, logger.Nop())
	return uc, repos
}

func stagedIDs(t *testing.T, uc *importer.ImportUseCase) []string {
	t.Helper()
	rows, err := uc.ListStaged(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestStagePayload_PreservesOrderAndDefaults(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t, nil)

	res, err := uc.StagePayload(ctx, []byte(`{"produtos":[
		{"nome":"Caneta","categoria":"Papelaria","quantidade":10,"preco":150},
		{"nome":" Borracha ","categoria":null,"quantidade":0},
		{"nome":"Lápis","categoria":"Papelaria","quantidade":5,"preco":80}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Staged)

	rows, err := uc.ListStaged(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Caneta", rows[0].Name)
	assert.Equal(t, "Borracha", rows[1].Name)
	assert.Equal(t, "", rows[1].CategoryLabel)
	assert.Equal(t, int64(0), rows[1].Price)
	assert.Equal(t, "Lápis", rows[2].Name)
}

func TestStagePayload_InvalidItemStagesNothing(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t, nil)

	cases := map[string]string{
		"sin nome":          `{"produtos":[{"nome":"A","categoria":null,"quantidade":1},{"categoria":null,"quantidade":1}]}`,
		"nome vacío":        `{"produtos":[{"nome":"  ","categoria":null,"quantidade":1}]}`,
		"sin categoria":     `{"produtos":[{"nome":"A","quantidade":1}]}`,
		"quantidade texto":  `{"produtos":[{"nome":"A","categoria":null,"quantidade":"3"}]}`,
		"quantidade negat.": `{"produtos":[{"nome":"A","categoria":null,"quantidade":-1}]}`,
		"quantidade float":  `{"produtos":[{"nome":"A","categoria":null,"quantidade":1.5}]}`,
		"preco negativo":    `{"produtos":[{"nome":"A","categoria":null,"quantidade":1,"preco":-5}]}`,
		"quantidade enorme": `{"produtos":[{"nome":"A","categoria":null,"quantidade":2147483648}]}`,
		"quantidade int64":  `{"produtos":[{"nome":"A","categoria":null,"quantidade":9223372036854775807}]}`,
		"no es JSON":        `{"produtos":`,
		"produtos no lista": `{"produtos":{"nome":"A"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.StagePayload(ctx, []byte(body))
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err=%v", err)
		})
	}
	assert.Empty(t, stagedIDs(t, uc))
}

func TestStagePayload_MissingProdutosStagesZero(t *testing.T) {
	uc, _ := setup(t, nil)
	res, err := uc.StagePayload(context.Background(), []byte(`{"outra":1}`))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Staged)
}

func TestStageFile_FormatDetection(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t, nil)
	payload := []byte(`{"produtos":[{"nome":"Cabo","categoria":"Eletrônicos","quantidade":2,"preco":990}]}`)

	_, err := uc.StageFile(ctx, "produtos.csv", payload)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))

	res, err := uc.StageFile(ctx, "PRODUTOS.JSON", payload)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Staged)

	zipped, err := archive.WriteSingle(importer.CatalogEntryName, payload)
	require.NoError(t, err)
	res, err = uc.StageFile(ctx, "backup.zip", zipped)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Staged)

	wrongEntry, err := archive.WriteSingle("outro.json", payload)
	require.NoError(t, err)
	_, err = uc.StageFile(ctx, "backup.zip", wrongEntry)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Len(t, stagedIDs(t, uc), 2)
}

func TestStageURL(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{body: []byte(`{"produtos":[{"nome":"Mouse","categoria":null,"quantidade":1}]}`)}
	uc, _ := setup(t, fetcher)

	_, err := uc.StageURL(ctx, "https://example.com/dados.txt")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
	_, err = uc.StageURL(ctx, "ftp://example.com/dados.json")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, fetcher.calls)

	res, err := uc.StageURL(ctx, "https://example.com/dados.json?v=2")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Staged)

	fetcher.err = domain.ErrFetchFailed
	_, err = uc.StageURL(ctx, "https://example.com/dados.json")
	assert.True(t, errors.Is(err, domain.ErrFetchFailed))
}

func TestReconcile_CreatesUpdatesAndReusesCategory(t *testing.T) {
	ctx := context.Background()
	uc, repos := setup(t, nil)

	_, err := uc.StagePayload(ctx, []byte(`{"produtos":[
		{"nome":"Caneta","categoria":"Papelaria","quantidade":10,"preco":150},
		{"nome":"Lápis","categoria":"Papelaria","quantidade":5,"preco":80},
		{"nome":"Caneta","categoria":"Papelaria","quantidade":3,"preco":150},
		{"nome":"Caneta","categoria":null,"quantidade":2}
	]}`))
	require.NoError(t, err)
	ids := stagedIDs(t, uc)

	res, err := uc.Reconcile(ctx, append(ids, "inexistente"))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.CategoriesCreated)
	assert.Equal(t, []string{"inexistente"}, res.Skipped)

	categories, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Papelaria", categories[0].Name)

	pen, err := repos.Products.FindByNameAndCategory(ctx, "Caneta", categories[0].ID)
	require.NoError(t, err)
	require.NotNil(t, pen)
	assert.Equal(t, 13, pen.Quantity)
	assert.Equal(t, entity.ImportedProductDescription, pen.Description)

	loose, err := repos.Products.FindByNameAndCategory(ctx, "Caneta", "")
	require.NoError(t, err)
	require.NotNil(t, loose)
	assert.Equal(t, 2, loose.Quantity)

	movements, err := repos.Movements.List(ctx)
	require.NoError(t, err)
	assert.Len(t, movements, 4)
	for _, m := range movements {
		assert.Equal(t, entity.MovementTypeEntrada, m.Type)
	}

	history, err := uc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, entity.ImportLogKindNew, history[0].Kind)
	assert.Equal(t, entity.ImportLogKindUpdated, history[1].Kind)
	assert.Equal(t, entity.ImportLogDetailUpdated, history[1].Detail)

	assert.Empty(t, stagedIDs(t, uc))
}

func TestReconcile_QuantityOverflowRollsBack(t *testing.T) {
	ctx := context.Background()
	uc, repos := setup(t, nil)

	_, err := uc.StagePayload(ctx, []byte(`{"produtos":[
		{"nome":"Arruela","categoria":null,"quantidade":2147483647},
		{"nome":"Arruela","categoria":null,"quantidade":5}
	]}`))
	require.NoError(t, err)
	ids := stagedIDs(t, uc)

	_, err = uc.Reconcile(ctx, ids)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err=%v", err)

	p, err := repos.Products.FindByNameAndCategory(ctx, "Arruela", "")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Len(t, stagedIDs(t, uc), 2)
}

func TestReconcile_EmptySelection(t *testing.T) {
	uc, _ := setup(t, nil)
	_, err := uc.Reconcile(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// failingLogs falla en la enésima escritura del historial.
type failingLogs struct {
	repository.ImportLogRepository
	failAt int
	calls  int
}

var errBoom = errors.New("boom")

func (f *failingLogs) Create(ctx context.Context, e *entity.ImportLog) error {
	f.calls++
	if f.calls == f.failAt {
		return errBoom
	}
	return f.ImportLogRepository.Create(ctx, e)
}

type failingTx struct {
	inner  repository.TxRunner
	failAt int
}

func (f failingTx) Run(ctx context.Context, fn func(repository.TxRepositories) error) error {
	return f.inner.Run(ctx, func(repos repository.TxRepositories) error {
		repos.ImportLogs = &failingLogs{ImportLogRepository: repos.ImportLogs, failAt: f.failAt}
		return fn(repos)
	})
}

func TestReconcile_FailureRollsBackWholeBatch(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	repos := store.Repositories()

	staging := importer.NewImportUseCase(repos.Tx, repos.StagedImports, repos.ImportLogs, nil, 1<<20, logger.Nop())
	_, err = staging.StagePayload(ctx, []byte(`{"produtos":[
		{"nome":"Cola","categoria":"Papelaria","quantidade":1},
		{"nome":"Tesoura","categoria":"Papelaria","quantidade":1}
	]}`))
	require.NoError(t, err)
	ids := stagedIDs(t, staging)

	failing := importer.NewImportUseCase(failingTx{inner: repos.Tx, failAt: 2}, repos.StagedImports, repos.ImportLogs, nil, 1<<20, logger.Nop())
	_, err = failing.Reconcile(ctx, ids)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))

	products, err := repos.Products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	categories, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
	movements, err := repos.Movements.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, movements)
	logs, err := repos.ImportLogs.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Len(t, stagedIDs(t, staging), 2)
}

func TestDiscardAndExportStaged(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t, nil)

	_, err := uc.StagePayload(ctx, []byte(`{"produtos":[
		{"nome":"A","categoria":"X","quantidade":1,"preco":10},
		{"nome":"B","categoria":null,"quantidade":2}
	]}`))
	require.NoError(t, err)
	ids := stagedIDs(t, uc)

	data, err := uc.ExportStaged(ctx)
	require.NoError(t, err)
	content, err := archive.ReadEntry(data, importer.StagedEntryName, 1<<20)
	require.NoError(t, err)
	rows, err := importer.ParsePayload(content)
	require.NoError(t, err)
	assert.Equal(t, []importer.Row{
		{Name: "A", CategoryLabel: "X", Quantity: 1, Price: 10},
		{Name: "B", Quantity: 2},
	}, rows)
	assert.Contains(t, string(content), `"id": "`+ids[0]+`"`)

	res, err := uc.Discard(ctx, []string{ids[0], "nada"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Discarded)
	assert.Equal(t, []string{"nada"}, res.Skipped)
	assert.Equal(t, []string{ids[1]}, stagedIDs(t, uc))

	_, err = uc.Discard(ctx, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestExportLog_OldestFirst(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t, nil)

	_, err := uc.StagePayload(ctx, []byte(`{"produtos":[{"nome":"A","categoria":"X","quantidade":1}]}`))
	require.NoError(t, err)
	_, err = uc.Reconcile(ctx, stagedIDs(t, uc))
	require.NoError(t, err)
	_, err = uc.StagePayload(ctx, []byte(`{"produtos":[{"nome":"A","categoria":"X","quantidade":4}]}`))
	require.NoError(t, err)
	_, err = uc.Reconcile(ctx, stagedIDs(t, uc))
	require.NoError(t, err)

	text, err := uc.ExportLog(ctx)
	require.NoError(t, err)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "| NEW        | A | X | 1 | "+entity.ImportLogDetailNew)
	assert.Contains(t, lines[1], "| UPDATED    | A | X | 4 | "+entity.ImportLogDetailUpdated)
}
