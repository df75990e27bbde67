// Package xlsx genera el libro Excel del catálogo (productos, categorías y movimientos).
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
)

// Nombres de las hojas.
const (
	SheetProducts   = "Produtos"
	SheetCategories = "Categorias"
	SheetMovements  = "Movimentacoes"
)

// ExcelizeWorkbook implementa el renderer de libro XLSX.
type ExcelizeWorkbook struct{}

// NewExcelizeWorkbook construye el renderer.
func NewExcelizeWorkbook() *ExcelizeWorkbook {
	return &ExcelizeWorkbook{}
}

// RenderWorkbook escribe las tres hojas y devuelve los bytes del .xlsx.
func (w *ExcelizeWorkbook) RenderWorkbook(_ context.Context, categories []*entity.Category, products []*entity.Product, movements []*entity.Movement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetProducts)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja %s: %w", SheetProducts, err)
	}
	f.SetActiveSheet(index)
	// La hoja por defecto queda vacía.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: eliminar hoja por defecto: %w", err)
	}

	productRows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		productRows = append(productRows, []interface{}{
			p.ID, p.Name, p.Description, p.CategoryName, p.Quantity, inventory.FormatPrice(p.Price),
		})
	}
	if err := writeSheet(f, SheetProducts,
		[]string{"ID", "Nome", "Descrição", "Categoria", "Quantidade", "Preço"},
		[]float64{38, 30, 40, 20, 12, 12},
		productRows); err != nil {
		return nil, err
	}

	categoryRows := make([][]interface{}, 0, len(categories))
	for _, c := range categories {
		categoryRows = append(categoryRows, []interface{}{c.ID, c.Name})
	}
	if _, err := f.NewSheet(SheetCategories); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja %s: %w", SheetCategories, err)
	}
	if err := writeSheet(f, SheetCategories, []string{"ID", "Nome"}, []float64{38, 30}, categoryRows); err != nil {
		return nil, err
	}

	movementRows := make([][]interface{}, 0, len(movements))
	for _, m := range movements {
		movementRows = append(movementRows, []interface{}{
			m.ID, m.Type, m.ProductName, m.Quantity, inventory.FormatPrice(m.Price), m.Date.Format("2006-01-02 15:04:05"),
		})
	}
	if _, err := f.NewSheet(SheetMovements); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja %s: %w", SheetMovements, err)
	}
	if err := writeSheet(f, SheetMovements,
		[]string{"ID", "Tipo", "Produto", "Quantidade", "Preço", "Data"},
		[]float64{38, 10, 30, 12, 12, 20},
		movementRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

// writeSheet escribe cabecera en la fila 1, datos desde la fila 2 y anchos de columna.
func writeSheet(f *excelize.File, sheet string, headers []string, widths []float64, rows [][]interface{}) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: %s cabecera: %w", sheet, err)
		}
	}
	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx: %s %s: %w", sheet, cell, err)
			}
		}
	}
	for i, wd := range widths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, wd); err != nil {
			return err
		}
	}
	return nil
}
