package store

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// Queryer is the part of *sql.DB, *sql.Conn and *sql.Tx used to run input queries.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// QueryInterceptor wraps a Queryer and logs every statement at debug level.
type QueryInterceptor struct {
	q Queryer
}

func NewQueryInterceptor(q Queryer) *QueryInterceptor {
	return &QueryInterceptor{q: q}
}

func (i *QueryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := i.q.QueryContext(ctx, query, args...)
	log := zap.S().Named("store")
	if err != nil {
		log.Debugw("query failed", "query", query, "args", args, "duration", time.Since(start), "error", err)
		return nil, err
	}
	log.Debugw("query", "query", query, "args", args, "duration", time.Since(start))
	return rows, nil
}
