package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour of a Database.
type Dialect int

const (
	SQLite Dialect = iota
	MySQL
)

func (d Dialect) String() string {
	if d == MySQL {
		return "mysql"
	}
	return "sqlite"
}

// Database keeps ownership records in a single SQL table shared by all its containers.
type Database struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens (or creates) a SQLite database. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// One writer at a time; this also keeps a ":memory:" database alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return open(ctx, db, SQLite)
}

// OpenMySQL connects to a MySQL server, e.g. "user:pass@tcp(localhost:3306)/assets".
func OpenMySQL(dsn string) (*Database, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	return open(ctx, db, MySQL)
}

func open(ctx context.Context, db *sql.DB, dialect Dialect) (*Database, error) {
	d := &Database{db: db, dialect: dialect}
	if _, err := db.ExecContext(ctx, d.schema()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create ownership table: %w", err)
	}
	return d, nil
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	return d.db.Close()
}

// Dialect returns the SQL flavour in use.
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// Container returns a handle on the named container.
func (d *Database) Container(name string) *Container {
	return &Container{db: d, name: name}
}

func (d *Database) schema() string {
	return `
		CREATE TABLE IF NOT EXISTS ownership (
			object_id VARCHAR(255) NOT NULL PRIMARY KEY,
			container VARCHAR(255) NOT NULL,
			kind VARCHAR(32) NOT NULL,
			name TEXT,
			hidden BOOLEAN NOT NULL DEFAULT 0
		)
	`
}

// claimQuery inserts an ownership row unless one already exists for the object.
func (d *Database) claimQuery() string {
	if d.dialect == MySQL {
		return `INSERT IGNORE INTO ownership (object_id, container, kind, name) VALUES (?, ?, ?, ?)`
	}
	return `INSERT INTO ownership (object_id, container, kind, name) VALUES (?, ?, ?, ?) ON CONFLICT(object_id) DO NOTHING`
}
