// Package export genera las exportaciones del catálogo: ZIP con dados_exportados.json,
// libro XLSX y reporte de stock en PDF.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/importer"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/archive"
)

// DateLayout formato de fecha de los movimientos exportados.
const DateLayout = "2006-01-02 15:04:05"

// WorkbookRenderer genera el libro XLSX (puerto de salida).
type WorkbookRenderer interface {
	RenderWorkbook(ctx context.Context, categories []*entity.Category, products []*entity.Product, movements []*entity.Movement) ([]byte, error)
}

// StockReportRenderer genera el reporte de stock en PDF (puerto de salida).
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}

// ExportUseCase lee el catálogo completo y lo serializa.
type ExportUseCase struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	movements  repository.MovementRepository
	sales      repository.SaleRepository
	workbook   WorkbookRenderer
	report     StockReportRenderer
	now        func() time.Time
}

// NewExportUseCase construye el caso de uso a partir de los repositorios del backend activo.
func NewExportUseCase(repos repository.Repositories, workbook WorkbookRenderer, report StockReportRenderer) *ExportUseCase {
	return &ExportUseCase{
		users:      repos.Users,
		categories: repos.Categories,
		products:   repos.Products,
		movements:  repos.Movements,
		sales:      repos.Sales,
		workbook:   workbook,
		report:     report,
		now:        time.Now,
	}
}

// Catalog arma el documento dados_exportados.json.
func (uc *ExportUseCase) Catalog(ctx context.Context) (*dto.CatalogExport, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movements.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	doc := &dto.CatalogExport{
		Users:      make([]dto.ExportUser, 0, len(users)),
		Categories: make([]dto.ExportCategory, 0, len(categories)),
		Products:   make([]dto.ExportProduct, 0, len(products)),
		Movements:  make([]dto.ExportMovement, 0, len(movements)),
		Sales:      make([]dto.ExportSale, 0, len(sales)),
	}
	for _, u := range users {
		doc.Users = append(doc.Users, dto.ExportUser{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	for _, c := range categories {
		doc.Categories = append(doc.Categories, dto.ExportCategory{ID: c.ID, Name: c.Name})
	}
	for _, p := range products {
		doc.Products = append(doc.Products, dto.ExportProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Quantity:    p.Quantity,
			Category:    optional(p.CategoryName),
			Price:       p.Price,
		})
	}
	for _, m := range movements {
		doc.Movements = append(doc.Movements, dto.ExportMovement{
			ID:       m.ID,
			Type:     m.Type,
			Product:  optional(m.ProductName),
			Quantity: m.Quantity,
			Price:    m.Price,
			Date:     m.Date.Format(DateLayout),
		})
	}
	for _, s := range sales {
		doc.Sales = append(doc.Sales, dto.ExportSale{ID: s.ID, Month: s.Month, Amount: s.Amount})
	}
	return doc, nil
}

// CatalogZip devuelve dados_exportados.zip. El mismo archivo puede volver a importarse.
func (uc *ExportUseCase) CatalogZip(ctx context.Context) ([]byte, error) {
	doc, err := uc.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog export: %w", err)
	}
	return archive.WriteSingle(importer.CatalogEntryName, data)
}

// Workbook devuelve el libro XLSX con productos, categorías y movimientos.
func (uc *ExportUseCase) Workbook(ctx context.Context) ([]byte, error) {
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movements.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.workbook.RenderWorkbook(ctx, categories, products, movements)
}

// StockReport devuelve el PDF con el stock actual.
func (uc *ExportUseCase) StockReport(ctx context.Context) ([]byte, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.report.RenderStockReport(ctx, products, uc.now())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
