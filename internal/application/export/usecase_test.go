package export_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/internal/application/importer"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/archive"
	"github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/estoque-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func TestCatalogZip_RoundTripThroughImport(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	repos := store.Repositories()

	categories := usecase.NewCategoryUseCase(repos.Categories, repos.Products)
	products := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Movements)
	movements := inventory.NewRegisterMovementUseCase(repos.Tx, repos.Movements)

	cat, err := categories.Create(ctx, dto.CategoryRequest{Name: "Limpeza"})
	require.NoError(t, err)
	soap, err := products.Create(ctx, dto.CreateProductRequest{Name: "Sabão", Quantity: 3, Price: "4,90", CategoryID: cat.ID})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Esponja", Quantity: 8, Price: "1.25"})
	require.NoError(t, err)
	_, err = movements.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: soap.ID, Type: entity.MovementTypeEntrada, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s1", Month: "Janeiro", Amount: decimal.RequireFromString("1500.50")}))

	uc := export.NewExportUseCase(repos, xlsx.NewExcelizeWorkbook(), pdf.NewMarotoStockReport(""))

	data, err := uc.CatalogZip(ctx)
	require.NoError(t, err)
	content, err := archive.ReadEntry(data, importer.CatalogEntryName, 1<<20)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\n    \"usuarios\"")

	var doc dto.CatalogExport
	require.NoError(t, json.Unmarshal(content, &doc))
	require.Len(t, doc.Movements, 1)
	require.NotNil(t, doc.Movements[0].Product)
	assert.Equal(t, "Sabão", *doc.Movements[0].Product)
	_, err = time.Parse(export.DateLayout, doc.Movements[0].Date)
	assert.NoError(t, err)
	require.Len(t, doc.Sales, 1)
	assert.True(t, doc.Sales[0].Amount.Equal(decimal.RequireFromString("1500.50")))

	// El ZIP exportado se puede importar y produce las mismas tuplas.
	imp := importer.NewImportUseCase(repos.Tx, repos.StagedImports, repos.ImportLogs, nil, 1<<20, logger.Nop())
	res, err := imp.StageFile(ctx, importer.CatalogZipName, data)
	require.NoError(t, err)
	require.Equal(t, 2, res.Staged)

	got := map[string]dto.StagedImportResponse{}
	for _, r := range res.Rows {
		got[r.Name] = r
	}
	assert.Equal(t, "Limpeza", got["Sabão"].CategoryLabel)
	assert.Equal(t, 5, got["Sabão"].Quantity)
	assert.Equal(t, int64(490), got["Sabão"].Price)
	assert.Equal(t, "", got["Esponja"].CategoryLabel)
	assert.Equal(t, int64(125), got["Esponja"].Price)
}

func TestWorkbookAndStockReport(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	uc := export.NewExportUseCase(store.Repositories(), xlsx.NewExcelizeWorkbook(), pdf.NewMarotoStockReport(""))

	book, err := uc.Workbook(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, book)

	report, err := uc.StockReport(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, report)
}
