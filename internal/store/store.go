package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - aliases table
const currentSchemaVersion = 1

// FileName is the database file created inside the store directory.
const FileName = "aliases.db"

// busyTimeoutMillis bounds how long a writer waits for another writer.
const busyTimeoutMillis = 5000

// Mode selects the kind of transaction a Handle runs.
type Mode int

const (
	// ReadOnly handles can only Get and List.
	ReadOnly Mode = iota
	// ReadWrite handles take the write lock when they open.
	ReadWrite
)

func (m Mode) String() string {
	if m == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

// Handle owns an open database and one transaction on it.
// A Handle serves a single alias operation and must be closed exactly once;
// Close commits the transaction.
type Handle struct {
	db   *sql.DB
	tx   *sql.Tx
	mode Mode
	dir  string
}

// Open creates the store directory if needed, opens (or creates) the
// database inside it, and begins a transaction in the requested mode.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// The aliases table is created if it does not exist yet.
func Open(ctx context.Context, dir string, mode Mode) (*Handle, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, openError(dir, "create store directory", err)
	}

	dsn := dataSourceName(filepath.Join(dir, FileName), mode)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, openError(dir, "open database", err)
	}

	// Verify connection works
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, openError(dir, "connect to database", err)
	}

	// One connection, so pragmas and the transaction share it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, openError(dir, "apply pragmas", err)
	}

	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return nil, openError(dir, "apply schema", err)
	}

	if mode == ReadOnly {
		if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			db.Close()
			return nil, openError(dir, "enable query_only", err)
		}
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: mode == ReadOnly})
	if err != nil {
		db.Close()
		return nil, openError(dir, "begin "+mode.String()+" transaction", err)
	}

	return &Handle{db: db, tx: tx, mode: mode, dir: dir}, nil
}

// Close commits the handle's transaction and closes the database.
// Calling Close on an already closed handle is a no-op.
func (h *Handle) Close() error {
	if h == nil || h.db == nil {
		return nil
	}

	var commitErr error
	if h.tx != nil {
		if err := h.tx.Commit(); err != nil {
			commitErr = ioError("commit", "", err)
		}
		h.tx = nil
	}

	closeErr := h.db.Close()
	h.db = nil
	if commitErr != nil {
		return commitErr
	}
	if closeErr != nil {
		return ioError("close", "", closeErr)
	}
	return nil
}

// Mode reports whether the handle can write.
func (h *Handle) Mode() Mode {
	return h.mode
}

// Dir returns the store directory the handle was opened on.
func (h *Handle) Dir() string {
	return h.dir
}

// dataSourceName builds the go-sqlite3 DSN for the store file.
// Read-write handles BEGIN IMMEDIATE so a second writer waits at open
// instead of failing at its first write.
func dataSourceName(path string, mode Mode) string {
	txlock := "deferred"
	if mode == ReadWrite {
		txlock = "immediate"
	}
	return fmt.Sprintf("%s?_busy_timeout=%d&_txlock=%s", path, busyTimeoutMillis, txlock)
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and stamps the version.
// This function is idempotent.
func applySchema(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("store schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if version < currentSchemaVersion {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (h *Handle) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := h.tx.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
