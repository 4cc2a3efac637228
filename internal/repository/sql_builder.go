package repository

import (
	"fmt"
	"strings"
)

// updateBuilder assembles an UPDATE statement from only the columns that
// were actually supplied, so an update never rewrites a column the request
// did not mention. This is what makes partial updates safe against a
// concurrent writer touching a different field.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set adds a column assignment using the next positional placeholder.
func (b *updateBuilder) Set(column string, value any) *updateBuilder {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// Empty reports whether no column has been set.
func (b *updateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Build returns the statement and its arguments, filtering on the id
// column. RETURNING * lets callers read back the merged row in one trip.
func (b *updateBuilder) Build(idColumn string, id any, returning string) (string, []any) {
	b.args = append(b.args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		b.table, strings.Join(b.sets, ", "), idColumn, len(b.args))
	if returning != "" {
		query += " RETURNING " + returning
	}

	return query, b.args
}
