package repository

import (
	"time"

	"bookstore-graphql/internal/domains/author/model"
	"bookstore-graphql/internal/infrastructure/database"
	"bookstore-graphql/internal/shared/utils"
)

const authorColumns = `id, name, biography, born_date, created_at, updated_at`

// dateArg converts a date bound to the form the driver expects.
type dateArg func(time.Time) any

// buildWhereClause maps each set AuthorFilter field to its predicate.
func buildWhereClause(f model.AuthorFilter, args *database.Args, date dateArg) string {
	if f.IsEmpty() {
		return ""
	}

	var conditions []string

	if f.Name != nil {
		conditions = append(conditions, args.Contains("name", *f.Name))
	}
	if f.BornDate != nil {
		conditions = append(conditions, bornOn(args, *f.BornDate, date))
	}

	return " WHERE " + utils.JoinWithAnd(conditions)
}

func bornOn(args *database.Args, day time.Time, date dateArg) string {
	start, end := utils.DayWindow(day)
	return "born_date >= " + args.Add(date(start)) + " AND born_date < " + args.Add(date(end))
}
