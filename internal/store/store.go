package store

import (
	"context"
	"database/sql"
)

// Store provides access to the source database.
type Store struct {
	db       *sql.DB
	executor *Executor
}

func NewStore(db *sql.DB, driver Driver) *Store {
	return &Store{
		db:       db,
		executor: NewExecutor(driver),
	}
}

// Conn reserves a single connection. Callers must close it.
func (s *Store) Conn(ctx context.Context) (*sql.Conn, error) {
	return s.db.Conn(ctx)
}

func (s *Store) Executor() *Executor {
	return s.executor
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
