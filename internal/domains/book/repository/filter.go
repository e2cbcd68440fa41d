package repository

import (
	"time"

	"bookstore-graphql/internal/domains/book/model"
	"bookstore-graphql/internal/infrastructure/database"
	"bookstore-graphql/internal/shared/utils"
)

const bookColumns = `id, title, description, published_date, author_id, created_at, updated_at`

type dateArg func(time.Time) any

// buildWhereClause maps each set BookFilter field to its predicate.
func buildWhereClause(f model.BookFilter, args *database.Args, date dateArg) string {
	if f.IsEmpty() {
		return ""
	}

	var conditions []string

	if f.Title != nil {
		conditions = append(conditions, args.Contains("title", *f.Title))
	}
	if f.AuthorID != nil {
		conditions = append(conditions, "author_id = "+args.Add(*f.AuthorID))
	}
	if f.PublishedDate != nil {
		conditions = append(conditions, publishedOn(args, *f.PublishedDate, date))
	}

	return " WHERE " + utils.JoinWithAnd(conditions)
}

func publishedOn(args *database.Args, day time.Time, date dateArg) string {
	start, end := utils.DayWindow(day)
	return "published_date >= " + args.Add(date(start)) + " AND published_date < " + args.Add(date(end))
}
