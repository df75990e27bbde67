package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseSales_ConCabecera(t *testing.T) {
	sales, err := parseSales(strings.NewReader("mes;valor\nJaneiro;1500,50\nFevereiro; 2000\n"))
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Janeiro", sales[0].Month)
	assert.True(t, sales[0].Amount.Equal(decimal.RequireFromString("1500.50")))
	assert.True(t, sales[1].Amount.Equal(decimal.NewFromInt(2000)))
}

func TestParseSales_ValorInvalido(t *testing.T) {
	_, err := parseSales(strings.NewReader("Janeiro;10\nFevereiro;abc\n"))
	assert.Error(t, err)
}

func TestParseSales_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Março;99.9\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.WriteString(encoded)
	dec := charmap.Windows1252.NewDecoder().Reader(&buf)

	sales, err := parseSales(dec)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Março", sales[0].Month)
}
