package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/archive"
)

// Nombres de archivo del formato de intercambio.
const (
	CatalogEntryName = "dados_exportados.json"
	CatalogZipName   = "dados_exportados.zip"
	StagedEntryName  = "produtos_importados.json"
	StagedZipName    = "produtos_importados.zip"
	LogFileName      = "log_importacao.txt"
)

// Format formato de la fuente, deducido de la extensión.
type Format string

const (
	FormatJSON Format = "json"
	FormatZIP  Format = "zip"
)

// Row fila validada del documento {"produtos": [...]}.
type Row struct {
	Name          string
	CategoryLabel string
	Quantity      int
	Price         int64
}

// DetectFormat deduce el formato por la extensión del nombre de archivo.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return FormatJSON, nil
	case ".zip":
		return FormatZIP, nil
	}
	return "", domain.ErrUnsupportedFormat
}

// DetectURLFormat deduce el formato por la extensión del path de la URL (sin query ni fragmento).
func DetectURLFormat(rawURL string) (Format, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: url %q inválida", domain.ErrInvalidInput, rawURL)
	}
	return DetectFormat(u.Path)
}

// Decode extrae las filas de content según el formato. Un ZIP debe contener dados_exportados.json.
func Decode(format Format, content []byte, maxBytes int64) ([]Row, error) {
	switch format {
	case FormatJSON:
		return ParsePayload(content)
	case FormatZIP:
		data, err := archive.ReadEntry(content, CatalogEntryName, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return ParsePayload(data)
	}
	return nil, domain.ErrUnsupportedFormat
}

// ParsePayload valida el documento completo antes de devolver filas: un solo ítem inválido aborta todo.
// Sin clave "produtos" devuelve cero filas.
func ParsePayload(data []byte) ([]Row, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: JSON inválido: %v", domain.ErrInvalidInput, err)
	}
	raw, ok := doc["produtos"]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: \"produtos\" debe ser una lista de objetos", domain.ErrInvalidInput)
	}
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		row, err := parseItem(item)
		if err != nil {
			return nil, fmt.Errorf("%w: produto %d: %s", domain.ErrInvalidInput, i+1, err.Error())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseItem(item map[string]json.RawMessage) (Row, error) {
	var row Row

	raw, ok := item["nome"]
	if !ok || isNull(raw) {
		return row, fmt.Errorf("campo \"nome\" obligatorio")
	}
	if err := json.Unmarshal(raw, &row.Name); err != nil {
		return row, fmt.Errorf("campo \"nome\" debe ser texto")
	}
	row.Name = strings.TrimSpace(row.Name)
	if row.Name == "" {
		return row, fmt.Errorf("campo \"nome\" vacío")
	}

	raw, ok = item["categoria"]
	if !ok {
		return row, fmt.Errorf("campo \"categoria\" obligatorio")
	}
	if !isNull(raw) {
		if err := json.Unmarshal(raw, &row.CategoryLabel); err != nil {
			return row, fmt.Errorf("campo \"categoria\" debe ser texto o null")
		}
	}

	raw, ok = item["quantidade"]
	if !ok || isNull(raw) {
		return row, fmt.Errorf("campo \"quantidade\" obligatorio")
	}
	qty, err := nonNegativeInt(raw)
	if err != nil {
		return row, fmt.Errorf("campo \"quantidade\": %v", err)
	}
	if qty > inventory.MaxQuantity {
		return row, fmt.Errorf("campo \"quantidade\": excede el máximo %d", inventory.MaxQuantity)
	}
	row.Quantity = int(qty)

	if raw, ok = item["preco"]; ok && !isNull(raw) {
		price, err := nonNegativeInt(raw)
		if err != nil {
			return row, fmt.Errorf("campo \"preco\": %v", err)
		}
		row.Price = price
	}
	return row, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// nonNegativeInt acepta solo números JSON enteros >= 0 (no texto).
func nonNegativeInt(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return 0, fmt.Errorf("debe ser un número entero")
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, fmt.Errorf("debe ser un número entero")
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("debe ser un número entero")
	}
	if v < 0 {
		return 0, fmt.Errorf("no puede ser negativo")
	}
	return v, nil
}
