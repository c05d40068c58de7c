package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny-import/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, int64(100<<20), cfg.Import.MaxFileSize)
	assert.Equal(t, "Other", cfg.Import.DefaultCategory)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("IMPORT_MAX_FILE_SIZE", "1024")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1024), cfg.Import.MaxFileSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_InvalidMaxFileSize(t *testing.T) {
	t.Setenv("IMPORT_MAX_FILE_SIZE", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConnectionString(t *testing.T) {
	var cfg config.Config
	cfg.DB.User = "finny"
	cfg.DB.Password = "p@ss"
	cfg.DB.Host = "db"
	cfg.DB.Port = 5432
	cfg.DB.Name = "ledger"
	cfg.DB.SSLMode = "disable"

	assert.Equal(t, "postgres://finny:p%40ss@db:5432/ledger?sslmode=disable", cfg.ConnectionString())
}
