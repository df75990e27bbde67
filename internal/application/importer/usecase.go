// Package importer implementa la importación de productos: staging desde JSON/ZIP (archivo, URL o cuerpo)
// y la conciliación de filas seleccionadas con el catálogo en una sola transacción.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/archive"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// Fetcher descarga el contenido de una URL (puerto de salida; en tests se inyecta un fake).
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ImportUseCase orquesta staging, descarte, exportación y conciliación.
type ImportUseCase struct {
	txRunner repository.TxRunner
	staged   repository.StagedImportRepository
	logs     repository.ImportLogRepository
	fetcher  Fetcher
	maxBytes int64
	log      *logger.Logger
	now      func() time.Time
}

// NewImportUseCase construye el caso de uso. maxBytes limita el JSON descomprimido de un ZIP.
func NewImportUseCase(
	txRunner repository.TxRunner,
	staged repository.StagedImportRepository,
	logs repository.ImportLogRepository,
	fetcher Fetcher,
	maxBytes int64,
	log *logger.Logger,
) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{
		txRunner: txRunner,
		staged:   staged,
		logs:     logs,
		fetcher:  fetcher,
		maxBytes: maxBytes,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// StageFile importa un archivo subido (.json o .zip).
func (uc *ImportUseCase) StageFile(ctx context.Context, filename string, content []byte) (*dto.StageResult, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	rows, err := Decode(format, content, uc.maxBytes)
	if err != nil {
		return nil, err
	}
	return uc.stage(ctx, "arquivo", rows)
}

// StageURL descarga e importa un documento remoto. El formato se valida antes de descargar.
func (uc *ImportUseCase) StageURL(ctx context.Context, rawURL string) (*dto.StageResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	format, err := DetectURLFormat(rawURL)
	if err != nil {
		return nil, err
	}
	content, err := uc.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	rows, err := Decode(format, content, uc.maxBytes)
	if err != nil {
		return nil, err
	}
	return uc.stage(ctx, "url", rows)
}

// StagePayload importa un documento JSON recibido directamente en el cuerpo del request.
func (uc *ImportUseCase) StagePayload(ctx context.Context, body []byte) (*dto.StageResult, error) {
	rows, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	return uc.stage(ctx, "payload", rows)
}

// stage inserta todas las filas en una transacción. Las filas ya llegan validadas.
func (uc *ImportUseCase) stage(ctx context.Context, source string, rows []Row) (*dto.StageResult, error) {
	base := uc.now()
	staged := make([]*entity.StagedImport, 0, len(rows))
	for i, r := range rows {
		staged = append(staged, &entity.StagedImport{
			ID:            uuid.New().String(),
			Name:          r.Name,
			CategoryLabel: r.CategoryLabel,
			Quantity:      r.Quantity,
			Price:         r.Price,
			// Desfase de 1 ms por fila para conservar el orden del documento.
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
	}
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		for _, s := range staged {
			if err := repos.StagedImports.Create(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("source", source).Int("rows", len(staged)).Msg("importación agregada al staging")

	out := &dto.StageResult{Staged: len(staged), Rows: make([]dto.StagedImportResponse, 0, len(staged))}
	for _, s := range staged {
		out.Rows = append(out.Rows, toStagedResponse(s))
	}
	return out, nil
}

// ListStaged devuelve las filas pendientes en orden de llegada.
func (uc *ImportUseCase) ListStaged(ctx context.Context) ([]dto.StagedImportResponse, error) {
	list, err := uc.staged.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StagedImportResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStagedResponse(s))
	}
	return out, nil
}

// Discard elimina las filas seleccionadas; ids inexistentes se informan como ignorados.
func (uc *ImportUseCase) Discard(ctx context.Context, ids []string) (*dto.DiscardResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ningún producto seleccionado para exclusión", domain.ErrInvalidInput)
	}
	res := &dto.DiscardResult{Skipped: []string{}}
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		for _, id := range ids {
			row, err := repos.StagedImports.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if row == nil {
				res.Skipped = append(res.Skipped, id)
				continue
			}
			if err := repos.StagedImports.Delete(ctx, id); err != nil {
				return err
			}
			res.Discarded++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExportStaged empaqueta las filas pendientes en produtos_importados.zip.
func (uc *ImportUseCase) ExportStaged(ctx context.Context) ([]byte, error) {
	list, err := uc.staged.List(ctx)
	if err != nil {
		return nil, err
	}
	doc := dto.StagedExport{Products: make([]dto.StagedExportItem, 0, len(list))}
	for _, s := range list {
		item := dto.StagedExportItem{
			ID:       s.ID,
			Name:     s.Name,
			Quantity: s.Quantity,
			Price:    s.Price,
		}
		if s.CategoryLabel != "" {
			label := s.CategoryLabel
			item.CategoryLabel = &label
		}
		doc.Products = append(doc.Products, item)
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal staged export: %w", err)
	}
	return archive.WriteSingle(StagedEntryName, data)
}

func toStagedResponse(s *entity.StagedImport) dto.StagedImportResponse {
	return dto.StagedImportResponse{
		ID:            s.ID,
		Name:          s.Name,
		CategoryLabel: s.CategoryLabel,
		Quantity:      s.Quantity,
		Price:         s.Price,
		CreatedAt:     s.CreatedAt,
	}
}
