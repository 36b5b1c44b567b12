package models

// Row is one result row with columns in the order declared by the query.
type Row struct {
	Columns []string
	Values  []any
}

func NewRow(columns []string, values []any) Row {
	return Row{Columns: columns, Values: values}
}

// Get returns the value of column and whether the column exists in the row.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// With returns a copy of the row where column holds value.
func (r Row) With(column string, value any) Row {
	cols := make([]string, len(r.Columns), len(r.Columns)+1)
	vals := make([]any, len(r.Values), len(r.Values)+1)
	copy(cols, r.Columns)
	copy(vals, r.Values)

	for i, c := range cols {
		if c == column {
			vals[i] = value
			return Row{Columns: cols, Values: vals}
		}
	}
	return Row{Columns: append(cols, column), Values: append(vals, value)}
}

// Map returns the row as a column keyed map. Like Get, the first of
// duplicate columns wins.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		if _, ok := m[c]; ok {
			continue
		}
		m[c] = r.Values[i]
	}
	return m
}
