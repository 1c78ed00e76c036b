package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Drivers de base de datos soportados
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config contiene la configuración de la API leída del entorno
type Config struct {
	Port               string
	DatabaseDriver     string
	DatabaseURL        string
	JWTSecret          string
	AdminSecretKey     string
	CORSAllowedOrigins []string
	ClerkSecretKey     string
	ClerkWebhookSecret string
	MarketDataBaseURL  string
	MarketDataTimeout  time.Duration
	MarketDataRate     float64 // Solicitudes por segundo
	AlertCheckInterval time.Duration
	LogLevel           string
	LogPretty          bool
	GinMode            string
}

// ClerkEnabled indica si las rutas protegidas verifican sesiones de Clerk
func (c Config) ClerkEnabled() bool {
	return c.ClerkSecretKey != ""
}

// Load lee la configuración del entorno y aplica los valores por defecto.
// Devuelve todos los errores de validación juntos.
func Load() (Config, error) {
	var validationErrs []string

	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		DatabaseDriver:     envDefault("DATABASE_DRIVER", DriverSQLite),
		DatabaseURL:        envDefault("DATABASE_URL", "database/portfolio.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminSecretKey:     os.Getenv("ADMIN_SECRET_KEY"),
		CORSAllowedOrigins: splitList(envDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		ClerkSecretKey:     os.Getenv("CLERK_SECRET_KEY"),
		ClerkWebhookSecret: os.Getenv("CLERK_WEBHOOK_SECRET"),
		MarketDataBaseURL:  strings.TrimRight(envDefault("MARKET_DATA_BASE_URL", "https://query1.finance.yahoo.com"), "/"),
		LogLevel:           strings.ToLower(envDefault("LOG_LEVEL", "info")),
		GinMode:            envDefault("GIN_MODE", "release"),
	}

	requireEnv("JWT_SECRET", cfg.JWTSecret, &validationErrs)

	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		validationErrs = append(validationErrs, "DATABASE_DRIVER debe ser sqlite3 o postgres")
	}

	cfg.MarketDataTimeout = parseDuration("MARKET_DATA_TIMEOUT", 10*time.Second, &validationErrs)
	cfg.AlertCheckInterval = parseDuration("ALERT_CHECK_INTERVAL", 0, &validationErrs)

	cfg.MarketDataRate = 5
	if v := os.Getenv("MARKET_DATA_RATE_LIMIT"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate <= 0 {
			validationErrs = append(validationErrs, "MARKET_DATA_RATE_LIMIT debe ser un número mayor a 0")
		} else {
			cfg.MarketDataRate = rate
		}
	}

	if v := os.Getenv("LOG_PRETTY"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			validationErrs = append(validationErrs, "LOG_PRETTY debe ser true o false")
		}
		cfg.LogPretty = pretty
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		validationErrs = append(validationErrs, "LOG_LEVEL debe ser debug, info, warn o error")
	}

	if len(validationErrs) > 0 {
		return cfg, errors.New(strings.Join(validationErrs, "; "))
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireEnv(name, value string, errs *[]string) {
	if strings.TrimSpace(value) == "" {
		*errs = append(*errs, name+" es obligatorio")
	}
}

func parseDuration(name string, fallback time.Duration, errs *[]string) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		*errs = append(*errs, name+" debe ser una duración válida (ej: 10s, 1m)")
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
