package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookstore-graphql/internal/domains/book/model"
	"bookstore-graphql/internal/infrastructure/database"
)

// sqlRepository serves the database/sql backends (SQLite, lib/pq).
type sqlRepository struct {
	db      *sql.DB
	dialect database.Dialect
	now     func() time.Time
}

func NewSQLRepository(db *database.SQLDB) RepositoryInterface {
	return &sqlRepository{db: db.DB, dialect: db.Dialect, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLBook(row rowScanner, b *model.Book) error {
	var (
		published        database.NullDate
		created, updated database.Timestamp
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &published, &b.AuthorID, &created, &updated); err != nil {
		return err
	}
	b.PublishedDate = published.Ptr()
	b.CreatedAt = created.Time
	b.UpdatedAt = updated.Time
	return nil
}

func sqlDate(t time.Time) any { return database.NewNullDate(&t) }

func (r *sqlRepository) ph(n int) string {
	return r.dialect.Placeholder(n)
}

func (r *sqlRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := scanSQLBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *sqlRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	now := database.Timestamp{Time: r.now()}

	var created model.Book
	err := scanSQLBook(r.db.QueryRowContext(ctx,
		fmt.Sprintf(`INSERT INTO books (title, description, published_date, author_id, created_at, updated_at)
			VALUES (%s, %s, %s, %s, %s, %s) RETURNING %s`,
			r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), bookColumns),
		b.Title, b.Description, database.NewNullDate(b.PublishedDate), b.AuthorID, now, now,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return &created, nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := scanSQLBook(r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = `+r.ph(1), id), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return &b, nil
}

func (r *sqlRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	args := database.NewArgs(r.dialect)
	query := `SELECT ` + bookColumns + ` FROM books` + buildWhereClause(filter, args, sqlDate)
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT %s OFFSET %s", args.Add(filter.Limit), args.Add(filter.Offset))

	books, err := r.queryBooks(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (r *sqlRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

func (r *sqlRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	books, err := r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author_id = `+r.ph(1)+` ORDER BY id ASC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	return books, nil
}

func (r *sqlRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	var updated model.Book
	err := scanSQLBook(r.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE books SET title = %s, description = %s, published_date = %s, author_id = %s, updated_at = %s
			WHERE id = %s RETURNING %s`,
			r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), bookColumns),
		b.Title, b.Description, database.NewNullDate(b.PublishedDate), b.AuthorID,
		database.Timestamp{Time: r.now()}, b.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return &updated, nil
}

func (r *sqlRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = `+r.ph(1), id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *sqlRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE id = `+r.ph(1)+`)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}
