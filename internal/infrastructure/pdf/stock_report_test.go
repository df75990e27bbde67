package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
)

func TestRenderStockReport(t *testing.T) {
	products := []*entity.Product{
		{Name: "Arroz", CategoryName: "Grãos", Quantity: 10, Price: 1299},
		{Name: "Sabão", Quantity: 0, Price: 0},
	}

	data, err := pdf.NewMarotoStockReport("").RenderStockReport(context.Background(), products, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderStockReport_Empty(t *testing.T) {
	data, err := pdf.NewMarotoStockReport("Estoque").RenderStockReport(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
