// Package store implements the data access layer of nd-inventory.
//
// The store only reads: it runs the SQL text of each input against the
// source database and hands the raw rows to the services layer. It never
// creates tables or migrates anything.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Store (facade)                       │
//	├─────────────────────────────────────────────────────────────┤
//	│   Conn(ctx) ──► *sql.Conn (one per build)                   │
//	│                     │                                       │
//	│   Executor ──► QueryInterceptor ──► QueryContext            │
//	│                     │                                       │
//	│                     ▼                                       │
//	│               []models.Row (column order preserved)         │
//	└─────────────────────────────────────────────────────────────┘
//
// # Drivers
//
//	┌──────────────────┬──────────────────────┬──────────────┐
//	│ Configured name  │ database/sql driver  │ Placeholders │
//	├──────────────────┼──────────────────────┼──────────────┤
//	│ postgres, pgx    │ pgx (jackc/pgx/v5)   │ $1, $2 ...   │
//	│ duckdb           │ duckdb (duckdb-go)   │ ?            │
//	│ sqlite           │ sqlite (modernc.org) │ ?            │
//	└──────────────────┴──────────────────────┴──────────────┘
//
// Inputs always write "?" placeholders. When an input declares params the
// Executor rewrites them with the driver's squirrel PlaceholderFormat.
// Queries without params are sent verbatim.
//
// # Rows
//
// Each row is scanned into []any so the driver's native types survive.
// SQL NULL arrives as nil; []byte values are copied because drivers may
// reuse the buffer. Value coercion happens later in the services layer.
//
// # Errors
//
// Every failure (prepare, execute, scan, iteration) is returned as a
// *errors.QueryError naming the input. Whether it aborts the build is
// decided by the caller from the input's required flag.
//
// # Query Logging
//
// All statements pass through QueryInterceptor, which logs the SQL, args,
// duration and error at debug level on the "store" logger.
package store
