package database

import "bookstore-graphql/internal/shared/utils"

// Args collects bind values while a query is assembled and hands out the
// matching placeholders.
type Args struct {
	dialect Dialect
	values  []any
}

func NewArgs(d Dialect) *Args {
	return &Args{dialect: d}
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return a.dialect.Placeholder(len(a.values))
}

// Contains binds a case-insensitive substring match of s against column.
// Wildcards inside s match literally.
func (a *Args) Contains(column, s string) string {
	ph := a.Add(utils.ContainsPattern(s))
	if a.dialect.ilike {
		return column + " ILIKE " + ph + ` ESCAPE '\'`
	}
	return a.dialect.lowerFunc + "(" + column + ") LIKE " + ph + ` ESCAPE '\'`
}

func (a *Args) Values() []any {
	return a.values
}
