package snapstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// SQLStore keeps snapshots in a single keyed table on a database/sql backend.
type SQLStore struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.SnapshotStore = &SQLStore{} // Compile-time check

// NewSQLStore opens the database and makes sure the snapshot table exists.
func NewSQLStore(tableName string, backend schema.DatabaseBackend, connStr string) (*SQLStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &SQLStore{db: db, tableName: tableName, backend: backend, connStr: connStr}, nil
}

// openDB opens and pings the database for a SQL backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open(driverName(backend), dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open(driverName(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open(driverName(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported SQL backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_key VARCHAR(8) PRIMARY KEY,
				snapshot_value MEDIUMBLOB NOT NULL,
				envelope_code INT NOT NULL,
				updated_at BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_key TEXT PRIMARY KEY,
				snapshot_value BYTEA NOT NULL,
				envelope_code INTEGER NOT NULL,
				updated_at BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_key TEXT PRIMARY KEY,
				snapshot_value BLOB NOT NULL,
				envelope_code INTEGER NOT NULL,
				updated_at INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// Put upserts the snapshot under its capture date.
func (s *SQLStore) Put(ctx context.Context, snapshot schema.SprintSnapshot) error {
	key := snapshot.CaptureDate.Key()
	value, err := encodeSnapshot(snapshot)
	if err != nil {
		return &contract.StoreWriteError{Key: key, Err: err}
	}
	if _, err := s.db.ExecContext(ctx, s.getUpsertQuery(), key, value, schema.EnvelopeCodeOK, time.Now().Unix()); err != nil {
		return &contract.StoreWriteError{Key: key, Err: err}
	}
	return nil
}

// Get reads the snapshot captured on date.
func (s *SQLStore) Get(ctx context.Context, date schema.Date) (schema.SprintSnapshot, error) {
	key := date.Key()
	query := fmt.Sprintf(`SELECT snapshot_value FROM %s WHERE snapshot_key = %s`,
		quoteTableName(s.tableName, s.backend), s.getPlaceholder())

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return schema.SprintSnapshot{}, notFound(key)
	case err != nil:
		return schema.SprintSnapshot{}, &contract.StoreReadError{Key: key, Err: err}
	}
	return decodeSnapshot(key, value)
}

// Keys lists stored keys in ascending order.
func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT snapshot_key FROM %s ORDER BY snapshot_key`, quoteTableName(s.tableName, s.backend))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// getPlaceholder returns the parameter placeholder for the backend.
func (s *SQLStore) getPlaceholder() string {
	switch s.backend {
	case schema.PostgreSQLBackend:
		return "$1"
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (s *SQLStore) getUpsertQuery() string {
	quotedTableName := quoteTableName(s.tableName, s.backend)
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (snapshot_key, snapshot_value, envelope_code, updated_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE snapshot_value = new.snapshot_value, envelope_code = new.envelope_code, updated_at = new.updated_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (snapshot_key, snapshot_value, envelope_code, updated_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (snapshot_key) DO UPDATE SET snapshot_value = EXCLUDED.snapshot_value, envelope_code = EXCLUDED.envelope_code, updated_at = EXCLUDED.updated_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (snapshot_key, snapshot_value, envelope_code, updated_at) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the snapshot table.
func (s *SQLStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
		Location:  s.location(),
	}
	if s.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(s.tableName, s.backend)

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs int64
	row = s.db.QueryRow(fmt.Sprintf("SELECT MIN(snapshot_key), MAX(snapshot_key), MAX(updated_at) FROM %s", quotedTableName))
	if err := row.Scan(&status.FirstKey, &status.LastKey, &lastTs); err != nil {
		return status, fmt.Errorf("failed to get key range: %w", err)
	}
	status.LastUpdateTime = time.Unix(lastTs, 0)

	// Rough estimate unless the backend reports a real size
	status.SizeBytes = int64(status.TotalEntries) * 1000
	switch s.backend {
	case schema.SQLiteBackend:
		row = s.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		_ = row.Scan(&status.SizeBytes)
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		row = s.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, s.tableName)
		_ = row.Scan(&status.SizeBytes)
	case schema.PostgreSQLBackend:
		row = s.db.QueryRow("SELECT pg_total_relation_size($1)", s.tableName)
		_ = row.Scan(&status.SizeBytes)
	}
	return status, nil
}

// location describes where the data lives without leaking credentials.
func (s *SQLStore) location() string {
	switch s.backend {
	case schema.SQLiteBackend:
		if s.connStr == "" {
			return contract.GetDBFilePath()
		}
		return s.connStr
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil {
			return s.tableName
		}
		return fmt.Sprintf("%s/%s.%s", cfg.Addr, cfg.DBName, s.tableName)
	default:
		return s.tableName
	}
}
