// Package db manages the SQLite snapshot database written by export.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas are per connection; one connection keeps them in force.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createOperadorasTable(); err != nil {
		return err
	}
	if err := db.createDespesasTable(); err != nil {
		return err
	}
	return db.createExportsTable()
}

func (db *DB) createOperadorasTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS operadoras (
		cnpj TEXT PRIMARY KEY,
		razao_social TEXT NOT NULL,
		uf TEXT,
		registro_operadora TEXT,
		nome_fantasia TEXT,
		modalidade TEXT,
		logradouro TEXT,
		numero TEXT,
		complemento TEXT,
		bairro TEXT,
		cidade TEXT,
		cep TEXT,
		ddd TEXT,
		telefone TEXT,
		fax TEXT,
		endereco_eletronico TEXT,
		representante TEXT,
		cargo_representante TEXT,
		regiao_de_comercializacao TEXT,
		data_registro_ans TEXT,
		exported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_operadoras_uf ON operadoras(uf);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createDespesasTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS despesas (
		cnpj TEXT NOT NULL REFERENCES operadoras(cnpj) ON DELETE CASCADE,
		ano INTEGER NOT NULL,
		trimestre INTEGER NOT NULL CHECK (trimestre BETWEEN 1 AND 4),
		valor_despesas REAL,
		PRIMARY KEY (cnpj, ano, trimestre)
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createExportsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		api_url TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		operadoras INTEGER DEFAULT 0,
		despesas INTEGER DEFAULT 0,
		total_despesas REAL,
		media_despesas REAL
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	// Checkpoint WAL before closing
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}

// Vacuum performs database maintenance to reclaim space.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
