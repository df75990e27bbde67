package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "estoque.db", cfg.DB.SQLitePath)
	assert.NotEmpty(t, cfg.JWT.Secret, "fuera de production se usa un secret de desarrollo")
	assert.Equal(t, 30*time.Second, cfg.Import.FetchTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Contains(t, cfg.DB.ConnectionString(), "@db:5432/estoque")
	assert.NotContains(t, cfg.DB.ConnectionString(), "p@ss word")
}

func TestLoad_DatabaseURLTienePrioridad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@host:5432/x")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@host:5432/x", cfg.DB.ConnectionString())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err = config.Load()
	assert.Error(t, err)
}
