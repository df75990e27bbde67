// Package database elige el backend de persistencia según DB_DRIVER.
package database

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// Open abre el backend configurado y devuelve sus repositorios y la función de cierre.
// PostgreSQL aplica las migraciones embebidas si AutoMigrate; SQLite las aplica siempre.
func Open(ctx context.Context, cfg config.DBConfig) (repository.Repositories, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return repository.Repositories{}, nil, err
			}
		}
		return postgres.NewRepositories(pool), pool.Close, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		return store.Repositories(), func() { _ = store.Close() }, nil
	}
	return repository.Repositories{}, nil, fmt.Errorf("driver %q no soportado", cfg.Driver)
}
