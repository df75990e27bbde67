package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
	_ "modernc.org/sqlite"
)

// Querier abstrae *sql.DB y *sql.Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store base de datos SQLite embebida (un solo archivo).
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y aplica las migraciones embebidas.
// path ":memory:" crea una base efímera, útil en tests.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path != ":memory:" {
		path = filepath.Clean(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Una sola conexión: SQLite serializa escritores y ":memory:" vive en la conexión.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// DB devuelve el handle crudo.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close cierra la base.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Repositories arma el conjunto de adaptadores sobre la conexión y el TxRunner.
// Dentro de TxRunner.Run solo deben usarse los repos recibidos por fn: la conexión es única.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:         NewUserRepository(s.db),
		Categories:    NewCategoryRepository(s.db),
		Products:      NewProductRepository(s.db),
		Movements:     NewMovementRepository(s.db),
		Sales:         NewSaleRepository(s.db),
		StagedImports: NewStagedImportRepository(s.db),
		ImportLogs:    NewImportLogRepository(s.db),
		Tx:            NewTxRunner(s.db),
	}
}
