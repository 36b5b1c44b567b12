package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver describes a supported database/sql driver.
type Driver struct {
	// Name is the database/sql driver name.
	Name string
	// Placeholder rewrites "?" placeholders of bound input params.
	Placeholder sq.PlaceholderFormat
}

var drivers = map[string]Driver{
	"postgres": {Name: "pgx", Placeholder: sq.Dollar},
	"pgx":      {Name: "pgx", Placeholder: sq.Dollar},
	"duckdb":   {Name: "duckdb", Placeholder: sq.Question},
	"sqlite":   {Name: "sqlite", Placeholder: sq.Question},
}

// LookupDriver resolves a configured driver name.
func LookupDriver(name string) (Driver, error) {
	d, ok := drivers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Driver{}, fmt.Errorf("unsupported database driver %q", name)
	}
	return d, nil
}

// NewDB opens and pings a database. No pool tuning is applied: a build only
// ever holds a single connection.
func NewDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	d, err := LookupDriver(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.Name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	return db, nil
}
