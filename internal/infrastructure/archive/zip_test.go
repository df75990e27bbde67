package archive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/infrastructure/archive"
)

func TestWriteSingle_ReadEntry_RoundTrip(t *testing.T) {
	content := []byte(`{"produtos": []}`)
	zipped, err := archive.WriteSingle("dados_exportados.json", content)
	require.NoError(t, err)

	got, err := archive.ReadEntry(zipped, "dados_exportados.json", 0)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestReadEntry_Missing(t *testing.T) {
	zipped, err := archive.WriteSingle("outro.json", []byte("{}"))
	require.NoError(t, err)

	_, err = archive.ReadEntry(zipped, "dados_exportados.json", 0)
	assert.ErrorIs(t, err, archive.ErrEntryNotFound)
}

func TestReadEntry_NotAZip(t *testing.T) {
	_, err := archive.ReadEntry([]byte("not a zip"), "dados_exportados.json", 0)
	assert.Error(t, err)
}

func TestReadEntry_TooLarge(t *testing.T) {
	zipped, err := archive.WriteSingle("a.json", make([]byte, 64))
	require.NoError(t, err)

	_, err = archive.ReadEntry(zipped, "a.json", 10)
	assert.Error(t, err)
}
