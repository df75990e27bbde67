package dto

import "time"

// ImportURLRequest body para POST /api/imports/url.
type ImportURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// StagedImportResponse fila del staging.
type StagedImportResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"nome"`
	CategoryLabel string    `json:"categoria"`
	Quantity      int       `json:"quantidade"`
	Price         int64     `json:"preco"`
	CreatedAt     time.Time `json:"created_at"`
}

// StageResult resultado de una importación al staging.
type StageResult struct {
	Staged int                    `json:"importados"`
	Rows   []StagedImportResponse `json:"produtos"`
}

// ReconcileResult resumen de una conciliación.
type ReconcileResult struct {
	Processed         int      `json:"processados"`
	Created           int      `json:"criados"`
	Updated           int      `json:"atualizados"`
	CategoriesCreated int      `json:"categorias_criadas"`
	Skipped           []string `json:"ignorados"`
}

// DiscardResult resultado del descarte de filas del staging.
type DiscardResult struct {
	Discarded int      `json:"excluidos"`
	Skipped   []string `json:"ignorados"`
}

// ImportLogResponse entrada del historial de importaciones.
type ImportLogResponse struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"data"`
	Kind          string    `json:"tipo"`
	ProductName   string    `json:"nome_produto"`
	CategoryLabel string    `json:"categoria"`
	Quantity      int       `json:"quantidade"`
	Price         int64     `json:"preco"`
	Detail        string    `json:"detalhe"`
}
