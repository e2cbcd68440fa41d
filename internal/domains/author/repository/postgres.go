package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore-graphql/internal/domains/author/model"
	"bookstore-graphql/internal/infrastructure/database"
	pkgdb "bookstore-graphql/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(&a.ID, &a.Name, &a.Biography, &a.BornDate, &a.CreatedAt, &a.UpdatedAt)
}

func pgDate(t time.Time) any { return t }

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Author, error) {
		// Serialize concurrent inserts of the same name so the check below holds.
		if _, err := tx.Exec(ctx, database.PostgresDialect.NameLock, a.Name); err != nil {
			return nil, fmt.Errorf("failed to lock author name: %w", err)
		}

		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM authors WHERE name = $1 AND born_date IS NOT DISTINCT FROM $2)`,
			a.Name, a.BornDate,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check duplicate author: %w", err)
		}
		if exists {
			return nil, model.ErrDuplicateAuthor
		}

		var created model.Author
		err = scanAuthor(tx.QueryRow(ctx, `
			INSERT INTO authors (name, biography, born_date)
			VALUES ($1, $2, $3)
			RETURNING `+authorColumns,
			a.Name, a.Biography, a.BornDate,
		), &created)
		if err != nil {
			return nil, fmt.Errorf("failed to create author: %w", err)
		}
		return &created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	var a model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	args := database.NewArgs(database.PostgresDialect)
	query := `SELECT ` + authorColumns + ` FROM authors` + buildWhereClause(filter, args, pgDate)
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT %s OFFSET %s", args.Add(filter.Limit), args.Add(filter.Offset))

	rows, err := r.pool.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, biography, born_date FROM authors ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Biography, &a.BornDate); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	var updated model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, `
		UPDATE authors
		SET name = $2, biography = $3, born_date = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+authorColumns,
		a.ID, a.Name, a.Biography, a.BornDate,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}
