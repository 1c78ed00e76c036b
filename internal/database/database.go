package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DB es la conexión compartida por la API
var DB *sql.DB

// Open abre la base de datos con el driver indicado ("sqlite3" o "postgres")
// y verifica la conexión.
func Open(driver, dsn string) (*sql.DB, error) {
	if driver == "sqlite3" {
		// Crear el directorio de la base de datos si no existe
		if dir := filepath.Dir(dsn); isFilePath(dsn) && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("error al crear el directorio de la base de datos: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error al abrir la base de datos: %w", err)
	}

	// SQLite admite un solo escritor; con ":memory:" cada conexión sería otra base
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error al conectar con la base de datos: %w", err)
	}

	return db, nil
}

// InitDB abre la base de datos global y crea el esquema
func InitDB(driver, dsn string) error {
	db, err := Open(driver, dsn)
	if err != nil {
		return err
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return err
	}

	DB = db
	log.Info().Str("driver", driver).Msg("base de datos inicializada")
	return nil
}

func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
