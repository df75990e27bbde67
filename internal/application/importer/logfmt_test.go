package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/application/importer"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func TestFormatLogLine(t *testing.T) {
	e := &entity.ImportLog{
		Date:          time.Date(2024, 1, 5, 9, 3, 7, 0, time.UTC),
		Kind:          entity.ImportLogKindUpdated,
		ProductName:   "Caneta",
		CategoryLabel: "Papelaria",
		Quantity:      12,
		Detail:        entity.ImportLogDetailUpdated,
	}
	assert.Equal(t,
		"05/01/2024 09:03:07 | UPDATED    | Caneta | Papelaria | 12 | Quantidade somada ao produto existente.",
		importer.FormatLogLine(e))
}

func TestFormatLog_JoinsWithoutTrailingNewline(t *testing.T) {
	d := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	entries := []*entity.ImportLog{
		{Date: d, Kind: entity.ImportLogKindNew, ProductName: "A", Quantity: 1, Detail: entity.ImportLogDetailNew},
		{Date: d, Kind: entity.ImportLogKindNew, ProductName: "B", Quantity: 2, Detail: entity.ImportLogDetailNew},
	}
	assert.Equal(t,
		"05/01/2024 09:00:00 | NEW        | A |  | 1 | Novo produto criado no estoque.\n"+
			"05/01/2024 09:00:00 | NEW        | B |  | 2 | Novo produto criado no estoque.",
		importer.FormatLog(entries))
	assert.Equal(t, "", importer.FormatLog(nil))
}

func TestDetectURLFormat(t *testing.T) {
	f, err := importer.DetectURLFormat("https://host/path/Data.ZIP?x=1#frag")
	assert.NoError(t, err)
	assert.Equal(t, importer.FormatZIP, f)
}
