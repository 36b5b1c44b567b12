package store

import (
	"context"
	"fmt"

	"github.com/ndinv/sql-inventory/internal/models"
	srvErrors "github.com/ndinv/sql-inventory/pkg/errors"
)

// Executor runs the SQL text of an input and returns its rows.
type Executor struct {
	driver Driver
}

func NewExecutor(driver Driver) *Executor {
	return &Executor{driver: driver}
}

// Execute runs input.Query verbatim. When the input declares params, "?"
// placeholders are rewritten for the driver and the params are bound.
// Every failure is reported as a QueryError carrying the input name.
func (e *Executor) Execute(ctx context.Context, q Queryer, input models.Input) ([]models.Row, error) {
	query := input.Query
	if len(input.Params) > 0 {
		var err error
		query, err = e.driver.Placeholder.ReplacePlaceholders(query)
		if err != nil {
			return nil, srvErrors.NewQueryError(input.Name, fmt.Errorf("failed to rewrite placeholders: %w", err))
		}
	}

	rows, err := NewQueryInterceptor(q).QueryContext(ctx, query, input.Params...)
	if err != nil {
		return nil, srvErrors.NewQueryError(input.Name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, srvErrors.NewQueryError(input.Name, err)
	}

	var result []models.Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, srvErrors.NewQueryError(input.Name, err)
		}
		for i, v := range values {
			// drivers may reuse the backing array of []byte values
			if b, ok := v.([]byte); ok {
				values[i] = append([]byte(nil), b...)
			}
		}
		result = append(result, models.NewRow(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, srvErrors.NewQueryError(input.Name, err)
	}

	return result, nil
}
