package dto

import "github.com/shopspring/decimal"

// CatalogExport documento dados_exportados.json.
type CatalogExport struct {
	Users      []ExportUser     `json:"usuarios"`
	Categories []ExportCategory `json:"categorias"`
	Products   []ExportProduct  `json:"produtos"`
	Movements  []ExportMovement `json:"movimentacoes"`
	Sales      []ExportSale     `json:"vendas"`
}

// ExportUser usuario exportado (sin credenciales).
type ExportUser struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// ExportCategory categoría exportada.
type ExportCategory struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

// ExportProduct producto exportado; categoria es el nombre o null.
type ExportProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Quantity    int     `json:"quantidade"`
	Category    *string `json:"categoria"`
	Price       int64   `json:"preco"`
}

// ExportMovement movimiento exportado; data en formato "2006-01-02 15:04:05".
type ExportMovement struct {
	ID       string  `json:"id"`
	Type     string  `json:"tipo"`
	Product  *string `json:"produto"`
	Quantity int     `json:"quantidade"`
	Price    int64   `json:"preco"`
	Date     string  `json:"data"`
}

// ExportSale venta exportada.
type ExportSale struct {
	ID     string          `json:"id"`
	Month  string          `json:"mes"`
	Amount decimal.Decimal `json:"valor"`
}

// StagedExport documento produtos_importados.json.
type StagedExport struct {
	Products []StagedExportItem `json:"produtos"`
}

// StagedExportItem fila exportada del staging (mismo formato que la importación más id).
type StagedExportItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"nome"`
	CategoryLabel *string `json:"categoria"`
	Quantity      int     `json:"quantidade"`
	Price         int64   `json:"preco"`
}
