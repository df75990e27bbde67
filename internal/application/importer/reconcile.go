package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Reconcile envía las filas seleccionadas al catálogo, en el orden recibido y en una sola transacción.
// Por fila: resuelve o crea la categoría, suma cantidad al producto existente (mismo nombre y categoría)
// o crea uno nuevo, registra una Entrada, una entrada de historial y elimina la fila del staging.
// Filas inexistentes se ignoran y se informan; cualquier otro error revierte el lote completo.
func (uc *ImportUseCase) Reconcile(ctx context.Context, ids []string) (*dto.ReconcileResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ningún producto seleccionado", domain.ErrInvalidInput)
	}

	var res *dto.ReconcileResult
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		res = &dto.ReconcileResult{Skipped: []string{}}
		for _, id := range ids {
			row, err := repos.StagedImports.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if row == nil {
				res.Skipped = append(res.Skipped, id)
				continue
			}
			if err := uc.reconcileRow(ctx, repos, row, res); err != nil {
				return fmt.Errorf("conciliar %q: %w", row.Name, err)
			}
			res.Processed++
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int("selected", len(ids)).Msg("conciliación revertida")
		return nil, err
	}
	uc.log.Info().
		Int("processed", res.Processed).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("categories_created", res.CategoriesCreated).
		Int("skipped", len(res.Skipped)).
		Msg("conciliación confirmada")
	return res, nil
}

func (uc *ImportUseCase) reconcileRow(ctx context.Context, repos repository.TxRepositories, row *entity.StagedImport, res *dto.ReconcileResult) error {
	now := uc.now()

	categoryID := ""
	if row.CategoryLabel != "" {
		category, err := repos.Categories.FindByName(ctx, row.CategoryLabel)
		if err != nil {
			return err
		}
		if category == nil {
			// Se crea dentro de la misma tx: las filas siguientes del lote la reutilizan.
			category = &entity.Category{ID: uuid.New().String(), Name: row.CategoryLabel, CreatedAt: now, UpdatedAt: now}
			if err := repos.Categories.Create(ctx, category); err != nil {
				return err
			}
			res.CategoriesCreated++
		}
		categoryID = category.ID
	}

	product, err := repos.Products.FindByNameAndCategory(ctx, row.Name, categoryID)
	if err != nil {
		return err
	}

	entry := &entity.ImportLog{
		ID:            uuid.New().String(),
		Date:          now,
		ProductName:   row.Name,
		CategoryLabel: row.CategoryLabel,
		Quantity:      row.Quantity,
		Price:         row.Price,
	}
	if product != nil {
		total, err := inventory.AddQuantity(product.Quantity, row.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Products.UpdateQuantity(ctx, product.ID, total); err != nil {
			return err
		}
		entry.Kind, entry.Detail = entity.ImportLogKindUpdated, entity.ImportLogDetailUpdated
		res.Updated++
	} else {
		product = &entity.Product{
			ID:          uuid.New().String(),
			Name:        row.Name,
			Description: entity.ImportedProductDescription,
			Quantity:    row.Quantity,
			Price:       row.Price,
			CategoryID:  categoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		entry.Kind, entry.Detail = entity.ImportLogKindNew, entity.ImportLogDetailNew
		res.Created++
	}

	if err := repos.Movements.Create(ctx, &entity.Movement{
		ID:        uuid.New().String(),
		Type:      entity.MovementTypeEntrada,
		ProductID: product.ID,
		Quantity:  row.Quantity,
		Price:     row.Price,
		Date:      now,
	}); err != nil {
		return err
	}
	if err := repos.ImportLogs.Create(ctx, entry); err != nil {
		return err
	}
	return repos.StagedImports.Delete(ctx, row.ID)
}

// History devuelve el historial de importaciones, del más reciente al más antiguo.
func (uc *ImportUseCase) History(ctx context.Context) ([]dto.ImportLogResponse, error) {
	list, err := uc.logs.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImportLogResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ImportLogResponse{
			ID:            e.ID,
			Date:          e.Date,
			Kind:          e.Kind,
			ProductName:   e.ProductName,
			CategoryLabel: e.CategoryLabel,
			Quantity:      e.Quantity,
			Price:         e.Price,
			Detail:        e.Detail,
		})
	}
	return out, nil
}

// ExportLog genera el historial en texto plano, del más antiguo al más reciente.
func (uc *ImportUseCase) ExportLog(ctx context.Context) (string, error) {
	list, err := uc.logs.List(ctx, false)
	if err != nil {
		return "", err
	}
	return FormatLog(list), nil
}
