package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PORT",
		"DATABASE_DRIVER",
		"DATABASE_URL",
		"JWT_SECRET",
		"ADMIN_SECRET_KEY",
		"CORS_ALLOWED_ORIGINS",
		"CLERK_SECRET_KEY",
		"CLERK_WEBHOOK_SECRET",
		"MARKET_DATA_BASE_URL",
		"MARKET_DATA_TIMEOUT",
		"MARKET_DATA_RATE_LIMIT",
		"ALERT_CHECK_INTERVAL",
		"LOG_LEVEL",
		"LOG_PRETTY",
		"GIN_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "database/portfolio.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.MarketDataBaseURL)
	assert.Equal(t, 10*time.Second, cfg.MarketDataTimeout)
	assert.Equal(t, 5.0, cfg.MarketDataRate)
	assert.Equal(t, time.Duration(0), cfg.AlertCheckInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.False(t, cfg.ClerkEnabled())
}

func TestLoadOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.com, http://b.com,")
	t.Setenv("MARKET_DATA_BASE_URL", "http://localhost:9999/")
	t.Setenv("MARKET_DATA_TIMEOUT", "3s")
	t.Setenv("MARKET_DATA_RATE_LIMIT", "2.5")
	t.Setenv("ALERT_CHECK_INTERVAL", "1m")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("CLERK_SECRET_KEY", "sk_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://localhost:9999", cfg.MarketDataBaseURL)
	assert.Equal(t, 3*time.Second, cfg.MarketDataTimeout)
	assert.Equal(t, 2.5, cfg.MarketDataRate)
	assert.Equal(t, time.Minute, cfg.AlertCheckInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.True(t, cfg.ClerkEnabled())
}

func TestLoadValidation(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("MARKET_DATA_TIMEOUT", "soon")
	t.Setenv("MARKET_DATA_RATE_LIMIT", "0")
	t.Setenv("LOG_LEVEL", "trace")

	_, err := Load()
	require.Error(t, err)

	for _, want := range []string{"JWT_SECRET", "DATABASE_DRIVER", "MARKET_DATA_TIMEOUT", "MARKET_DATA_RATE_LIMIT", "LOG_LEVEL"} {
		assert.Contains(t, err.Error(), want)
	}
}
