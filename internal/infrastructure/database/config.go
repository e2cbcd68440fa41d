package database

import (
	"fmt"
	"net/url"
	"time"
)

// Relational drivers selectable through DB_DRIVER.
const (
	DriverPostgres = "postgres" // pgx pool
	DriverPQ       = "pq"       // database/sql over lib/pq
	DriverSQLite   = "sqlite"   // database/sql over modernc.org/sqlite
	DriverMemory   = "memory"
)

// DBConfig holds everything needed to open the relational store.
type DBConfig struct {
	Driver string `mapstructure:"DB_DRIVER"`

	Host     string `mapstructure:"DB_HOST"`
	Port     int    `mapstructure:"DB_PORT"`
	Username string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	DBName   string `mapstructure:"DB_NAME"`
	SSLMode  string `mapstructure:"DB_SSLMODE"`

	// SQLitePath is a file path or ":memory:".
	SQLitePath string `mapstructure:"DB_SQLITE_PATH"`

	MaxConns          int32         `mapstructure:"DB_MAX_CONNS"`
	MinConns          int32         `mapstructure:"DB_MIN_CONNS"`
	MaxConnLifetime   time.Duration `mapstructure:"DB_MAX_CONN_LIFETIME"`
	MaxConnIdleTime   time.Duration `mapstructure:"DB_MAX_CONN_IDLE_TIME"`
	HealthCheckPeriod time.Duration `mapstructure:"DB_HEALTH_CHECK_PERIOD"`

	MaxRetries     int           `mapstructure:"DB_MAX_RETRIES"`
	RetryDelay     time.Duration `mapstructure:"DB_RETRY_DELAY"`
	ConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT"`
}

// DSN builds a postgresql:// URL understood by both pgx and lib/pq.
func (c *DBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// IsRelationalServer reports whether the driver talks to a Postgres server.
func (c *DBConfig) IsRelationalServer() bool {
	return c.Driver == DriverPostgres || c.Driver == DriverPQ
}
