package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.TxRepositories{
		Categories:    NewCategoryRepository(tx),
		Products:      NewProductRepository(tx),
		Movements:     NewMovementRepository(tx),
		StagedImports: NewStagedImportRepository(tx),
		ImportLogs:    NewImportLogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories arma el conjunto de adaptadores sobre el pool.
func NewRepositories(pool *pgxpool.Pool) repository.Repositories {
	return repository.Repositories{
		Users:         NewUserRepository(pool),
		Categories:    NewCategoryRepository(pool),
		Products:      NewProductRepository(pool),
		Movements:     NewMovementRepository(pool),
		Sales:         NewSaleRepository(pool),
		StagedImports: NewStagedImportRepository(pool),
		ImportLogs:    NewImportLogRepository(pool),
		Tx:            NewTxRunner(pool),
	}
}
