package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"household-illness-tracker/internal/adapters/storage/sqlstore"

	_ "github.com/mattn/go-sqlite3"
)

// Open abre (o crea) la base SQLite en path. ":memory:" sirve para tests.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Un solo escritor; además ":memory:" es por conexión.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil && path != ":memory:" {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	return db, nil
}

// New devuelve el record store sobre SQLite y asegura el schema.
func New(ctx context.Context, db *sql.DB) (*sqlstore.Store, error) {
	s := sqlstore.New(db, sqlstore.SQLite)
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
