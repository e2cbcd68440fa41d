package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
)

// Dialect captures the SQL differences between the database/sql backends.
type Dialect struct {
	Name       string
	driverName string
	numbered   bool
	// NullSafeEqual compares two values treating NULL = NULL as true.
	NullSafeEqual string
	// NameLock serializes inserts of the same author name inside a
	// transaction. Empty when the engine serializes writers itself.
	NameLock string
	schema   []string

	// Case-insensitive matching: ILIKE where the engine has it, otherwise
	// lowerFunc applied to the column.
	ilike     bool
	lowerFunc string
}

var (
	// PostgresDialect is used by the pgx repositories for placeholder
	// numbering only; the pool is opened by PostgresDB.
	PostgresDialect = Dialect{
		Name:          DriverPostgres,
		numbered:      true,
		NullSafeEqual: "IS NOT DISTINCT FROM",
		NameLock:      "SELECT pg_advisory_xact_lock(hashtext($1))",
		schema:        postgresSchema,
		ilike:         true,
	}
	SQLiteDialect = Dialect{
		Name:          DriverSQLite,
		driverName:    "sqlite",
		NullSafeEqual: "IS",
		schema:        sqliteSchema,
		lowerFunc:     foldLowerFunc,
	}
	PQDialect = Dialect{
		Name:          DriverPQ,
		driverName:    "postgres",
		numbered:      true,
		NullSafeEqual: "IS NOT DISTINCT FROM",
		NameLock:      "SELECT pg_advisory_xact_lock(hashtext($1))",
		schema:        postgresSchema,
		ilike:         true,
	}
)

// foldLowerFunc is a Unicode-aware LOWER for SQLite, whose built-in one only
// folds ASCII.
const foldLowerFunc = "fold_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldLowerFunc, 1, foldLower)
}

func foldLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// SQLDB wraps a database/sql handle with the dialect it speaks.
type SQLDB struct {
	DB      *sql.DB
	Dialect Dialect
	Config  *DBConfig
}

// OpenSQL opens the database/sql backend selected by cfg.Driver, waits for
// it to answer and syncs the schema.
func OpenSQL(ctx context.Context, cfg *DBConfig) (*SQLDB, error) {
	var (
		dialect Dialect
		dsn     string
	)
	switch cfg.Driver {
	case DriverSQLite:
		dialect, dsn = SQLiteDialect, cfg.SQLitePath
		if dsn == "" {
			dsn = ":memory:"
		}
	case DriverPQ:
		dialect, dsn = PQDialect, cfg.DSN()
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	db, err := sql.Open(dialect.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}

	if dialect.Name == DriverSQLite {
		// One connection keeps an in-memory database alive and shared.
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxConns > 0 {
			db.SetMaxOpenConns(int(cfg.MaxConns))
		}
		db.SetMaxIdleConns(int(cfg.MinConns))
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
		db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}

	s := &SQLDB{DB: db, Dialect: dialect, Config: cfg}
	if err := Retry(ctx, retryPolicy(cfg), dialect.Name, db.PingContext); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.SyncSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLDB) SyncSchema(ctx context.Context) error {
	for _, stmt := range s.Dialect.schema {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema sync failed: %w", err)
		}
	}
	log.Info().Str("driver", s.Dialect.Name).Msg("[DATABASE] Relational schema in sync")
	return nil
}

func (s *SQLDB) HealthCheck(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *SQLDB) Stats() PoolStats {
	st := s.DB.Stats()
	return PoolStats{
		TotalConns:    int64(st.OpenConnections),
		IdleConns:     int64(st.Idle),
		AcquiredConns: int64(st.InUse),
		MaxConns:      int64(st.MaxOpenConnections),
	}
}

func (s *SQLDB) Close() error {
	return s.DB.Close()
}
