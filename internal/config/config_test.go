package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("DASHBOARD_REQUEST_TIMEOUT", "3s")
	t.Setenv("DB_NAME", "sales")

	cfg := Load()
	assert.Same(t, cfg, Load(), "configuration is loaded once")

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 1800, cfg.Cache.SummaryTTLSeconds)
	assert.Equal(t, 600, cfg.Cache.ListTTLSeconds)
	assert.Equal(t, 3*time.Second, cfg.Dashboard.RequestTimeout)
	assert.Equal(t, 10, cfg.Dashboard.PageSize)
	assert.Equal(t, "sales", cfg.Database.DBName)
	assert.False(t, cfg.Export.RemoteEnabled())
}

func TestDatabaseConnectionStrings(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "ksim", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ksim sslmode=disable", db.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/ksim?sslmode=disable", db.URL())
}
