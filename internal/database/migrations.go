package database

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Las sentencias usan tipos válidos tanto en SQLite como en PostgreSQL.
var schema = []struct {
	name string
	sql  string
}{
	{"users", `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`},
	{"holdings", `
	CREATE TABLE IF NOT EXISTS holdings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ticker TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		avg_cost_basis DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, ticker),
		FOREIGN KEY(user_id) REFERENCES users(id)
	)`},
	{"price_alerts", `
	CREATE TABLE IF NOT EXISTS price_alerts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ticker TEXT NOT NULL,
		condition_type TEXT NOT NULL,
		target_price DOUBLE PRECISION NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_triggered BOOLEAN NOT NULL DEFAULT FALSE,
		triggered_at TIMESTAMP,
		triggered_price DOUBLE PRECISION,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	)`},
	{"goals", `
	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_amount DOUBLE PRECISION NOT NULL,
		target_date TIMESTAMP,
		description TEXT,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	)`},
	{"dividends", `
	CREATE TABLE IF NOT EXISTS dividends (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ticker TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		shares DOUBLE PRECISION NOT NULL DEFAULT 0,
		per_share DOUBLE PRECISION NOT NULL DEFAULT 0,
		payment_date TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	)`},
	{"watchlist", `
	CREATE TABLE IF NOT EXISTS watchlist (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ticker TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, ticker),
		FOREIGN KEY(user_id) REFERENCES users(id)
	)`},
	{"idx_holdings_user", `CREATE INDEX IF NOT EXISTS idx_holdings_user ON holdings(user_id)`},
	{"idx_price_alerts_user", `CREATE INDEX IF NOT EXISTS idx_price_alerts_user ON price_alerts(user_id)`},
	{"idx_price_alerts_active", `CREATE INDEX IF NOT EXISTS idx_price_alerts_active ON price_alerts(is_active, is_triggered)`},
	{"idx_goals_user", `CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`},
	{"idx_dividends_user", `CREATE INDEX IF NOT EXISTS idx_dividends_user ON dividends(user_id, payment_date)`},
	{"idx_watchlist_user", `CREATE INDEX IF NOT EXISTS idx_watchlist_user ON watchlist(user_id)`},
}

// RunMigrations crea las tablas e índices que falten. Es idempotente.
func RunMigrations(db *sql.DB) error {
	log.Debug().Int("count", len(schema)).Msg("ejecutando migraciones de la base de datos")

	for _, stmt := range schema {
		if _, err := db.Exec(stmt.sql); err != nil {
			return fmt.Errorf("error en la migración %s: %w", stmt.name, err)
		}
	}

	return nil
}
