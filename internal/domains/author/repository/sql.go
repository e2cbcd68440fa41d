package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookstore-graphql/internal/domains/author/model"
	"bookstore-graphql/internal/infrastructure/database"
	pkgdb "bookstore-graphql/pkg/database"
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

func scanSQLAuthor(row rowScanner, a *model.Author) error {
	var (
		born             database.NullDate
		created, updated database.Timestamp
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Biography, &born, &created, &updated); err != nil {
		return err
	}
	a.BornDate = born.Ptr()
	a.CreatedAt = created.Time
	a.UpdatedAt = updated.Time
	return nil
}

func sqlDate(t time.Time) any { return database.NewNullDate(&t) }

func (r *sqlRepository) ph(n int) string {
	return r.dialect.Placeholder(n)
}

func (r *sqlRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	var created model.Author
	err := pkgdb.WithSQLTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if r.dialect.NameLock != "" {
			if _, err := tx.ExecContext(ctx, r.dialect.NameLock, a.Name); err != nil {
				return fmt.Errorf("failed to lock author name: %w", err)
			}
		}

		var exists bool
		err := tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM authors WHERE name = %s AND born_date %s %s)`,
				r.ph(1), r.dialect.NullSafeEqual, r.ph(2)),
			a.Name, database.NewNullDate(a.BornDate),
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check duplicate author: %w", err)
		}
		if exists {
			return model.ErrDuplicateAuthor
		}

		now := database.Timestamp{Time: r.now()}
		err = scanSQLAuthor(tx.QueryRowContext(ctx,
			fmt.Sprintf(`INSERT INTO authors (name, biography, born_date, created_at, updated_at)
				VALUES (%s, %s, %s, %s, %s) RETURNING %s`,
				r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), authorColumns),
			a.Name, a.Biography, database.NewNullDate(a.BornDate), now, now,
		), &created)
		if err != nil {
			return fmt.Errorf("failed to create author: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	var a model.Author
	err := scanSQLAuthor(r.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE id = `+r.ph(1), id), &a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return &a, nil
}

func (r *sqlRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	args := database.NewArgs(r.dialect)
	query := `SELECT ` + authorColumns + ` FROM authors` + buildWhereClause(filter, args, sqlDate)
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT %s OFFSET %s", args.Add(filter.Limit), args.Add(filter.Offset))

	rows, err := r.db.QueryContext(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := scanSQLAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *sqlRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, biography, born_date FROM authors ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var (
			a    model.Author
			born database.NullDate
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Biography, &born); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		a.BornDate = born.Ptr()
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *sqlRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return n, nil
}

func (r *sqlRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	var updated model.Author
	err := scanSQLAuthor(r.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE authors SET name = %s, biography = %s, born_date = %s, updated_at = %s
			WHERE id = %s RETURNING %s`,
			r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), authorColumns),
		a.Name, a.Biography, database.NewNullDate(a.BornDate), database.Timestamp{Time: r.now()}, a.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return &updated, nil
}

func (r *sqlRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = `+r.ph(1), id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if n == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *sqlRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM authors WHERE id = `+r.ph(1)+`)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}
