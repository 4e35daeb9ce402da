package snapstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// ClearStore removes every stored snapshot for the backend.
// For the file backend, it deletes the snapshot files in dir.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the table.
func ClearStore(backend schema.DatabaseBackend, connStr, dir string) error {
	switch backend {
	case schema.FileBackend:
		if dir == "" {
			dir = contract.DefaultStoreDir
		}
		matches, err := filepath.Glob(filepath.Join(dir, "*"+schema.SnapshotFileSuffix))
		if err != nil {
			return fmt.Errorf("failed to list snapshot files: %w", err)
		}
		for _, m := range matches {
			if _, ok := keyFromFilename(filepath.Base(m)); !ok {
				continue
			}
			if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", m, err)
			}
		}
		return nil

	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetDBFilePath()
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTable(backend, connStr, snapshotTable)

	case schema.MemoryBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}
	db, err := openDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
