package db

import (
	"context"
	"fmt"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

// migrate brings older snapshot files up to schemaVersion. Version 0 files
// were written before exports recorded the statistics totals.
func (db *DB) migrate() error {
	var version int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	columns := map[string]string{
		"total_despesas": "REAL",
		"media_despesas": "REAL",
	}
	for name, typ := range columns {
		exists, err := db.hasColumn("exports", name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE exports ADD COLUMN %s %s", name, typ)
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			return fmt.Errorf("failed to add column %s: %w", name, err)
		}
	}

	stmt := fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)
	if _, err := db.ExecContext(context.Background(), stmt); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

func (db *DB) hasColumn(table, column string) (bool, error) {
	rows, err := db.QueryContext(context.Background(), fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
