package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore-graphql/internal/domains/book/model"
	"bookstore-graphql/internal/infrastructure/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Description, &b.PublishedDate, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt)
}

func pgDate(t time.Time) any { return t }

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	var created model.Book
	err := scanBook(r.pool.QueryRow(ctx, `
		INSERT INTO books (title, description, published_date, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+bookColumns,
		b.Title, b.Description, b.PublishedDate, b.AuthorID,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	args := database.NewArgs(database.PostgresDialect)
	query := `SELECT ` + bookColumns + ` FROM books` + buildWhereClause(filter, args, pgDate)
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT %s OFFSET %s", args.Add(filter.Limit), args.Add(filter.Offset))

	books, err := r.queryBooks(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	books, err := r.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author_id = $1 ORDER BY id ASC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	var updated model.Book
	err := scanBook(r.pool.QueryRow(ctx, `
		UPDATE books
		SET title = $2, description = $3, published_date = $4, author_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+bookColumns,
		b.ID, b.Title, b.Description, b.PublishedDate, b.AuthorID,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}
