package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/xlsx"
)

func TestRenderWorkbook_Sheets(t *testing.T) {
	categories := []*entity.Category{{ID: "c1", Name: "Bebidas"}}
	products := []*entity.Product{{ID: "p1", Name: "Suco", CategoryName: "Bebidas", Quantity: 4, Price: 350}}
	movements := []*entity.Movement{{
		ID: "m1", Type: entity.MovementTypeEntrada, ProductName: "Suco", Quantity: 4, Price: 350,
		Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}}

	data, err := xlsx.NewExcelizeWorkbook().RenderWorkbook(context.Background(), categories, products, movements)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{xlsx.SheetProducts, xlsx.SheetCategories, xlsx.SheetMovements}, f.GetSheetList())

	name, err := f.GetCellValue(xlsx.SheetProducts, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Suco", name)

	price, err := f.GetCellValue(xlsx.SheetProducts, "F2")
	require.NoError(t, err)
	assert.Equal(t, "3,50", price)

	cat, err := f.GetCellValue(xlsx.SheetCategories, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", cat)

	date, err := f.GetCellValue(xlsx.SheetMovements, "F2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 10:00:00", date)
}
