package db

import (
	"context"
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const resultsTable = "typing_results"

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type DB struct {
	conn   *sqlx.DB
	driver string
	schema string
	table  string
}

// Connect opens a pooled connection. For Postgres, schema names the namespace
// holding the results table; SQLite has a single namespace and ignores it.
func Connect(ctx context.Context, driver, dsn, schema string) (*DB, error) {
	d := &DB{driver: driver, schema: schema}

	switch driver {
	case DriverPostgres:
		if schema == "" {
			schema = "public"
			d.schema = schema
		}
		d.table = pq.QuoteIdentifier(schema) + "." + resultsTable
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		d.table = resultsTable
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if driver == DriverSQLite {
		// single writer
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	d.conn = conn

	log.Printf("[DB] Connected to %s (table %s)\n", driver, d.table)
	return d, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

func (d *DB) Driver() string {
	return d.driver
}

// Migrate applies every embedded migration for the driver in file order.
// Migrations are idempotent and run on each start.
func (d *DB) Migrate(ctx context.Context) error {
	dir := "migrations/" + d.driver
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	replacer := strings.NewReplacer(
		"{{schema}}", pq.QuoteIdentifier(d.schema),
		"{{table}}", d.table,
	)

	for _, entry := range entries {
		content, err := migrationsFS.ReadFile(dir + "/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}
		for _, stmt := range strings.Split(replacer.Replace(string(content)), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := d.conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("executing migration %s: %w", entry.Name(), err)
			}
		}
		log.Printf("[DB] Applied migration: %s\n", entry.Name())
	}
	return nil
}
