package database

// books.author_id has no foreign key, deleting an author leaves its books in
// place.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		biography  TEXT,
		born_date  DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id             BIGSERIAL PRIMARY KEY,
		title          TEXT NOT NULL,
		description    TEXT,
		published_date DATE,
		author_id      BIGINT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
}

// SQLite keeps dates as YYYY-MM-DD text and timestamps as RFC 3339 text so
// that range filters compare lexically.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		biography  TEXT,
		born_date  TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title          TEXT NOT NULL,
		description    TEXT,
		published_date TEXT,
		author_id      INTEGER NOT NULL,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
}
