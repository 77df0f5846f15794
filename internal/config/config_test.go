package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfigDefaults(t *testing.T) {
	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 120, cfg.Server.IdleTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "ECOTRACE_NOTIFICATIONS", cfg.NATS.StreamName)
	assert.Equal(t, 10, cfg.NATS.MaxReconnects)
	assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
	assert.Equal(t, time.Hour, cfg.Token.DefaultTTL)
}

func TestLoadAPIConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  port: 9090
database:
  host: db.internal
  user: ecotrace
  password: secret
  dbname: ecotrace
nats:
  url: nats://localhost:4222
token:
  default_ttl: 30m
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := LoadAPIConfig(configPath, dir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 30*time.Minute, cfg.Token.DefaultTTL)
}

func TestLoadAPIConfigFromEnv(t *testing.T) {
	t.Setenv("ECOTRACE_DATABASE_HOST", "env-db")
	t.Setenv("ECOTRACE_DATABASE_PASSWORD", "env-secret")
	t.Setenv("ECOTRACE_SERVER_PORT", "7070")

	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "ecotrace",
		Password: "secret",
		DBName:   "ecotrace",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=ecotrace password=secret dbname=ecotrace sslmode=disable",
		cfg.DSN())
}
