package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"bookstore-graphql/internal/infrastructure/database"
	"bookstore-graphql/internal/infrastructure/document"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const EnvProduction = "production"

// Config is the whole application configuration, read from the environment
// (optionally seeded from a .env file) through viper.
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Document *document.Config
	GraphQL  GraphQLConfig
}

type AppConfig struct {
	Name        string `mapstructure:"APP_NAME"`
	Environment string `mapstructure:"APP_ENV"` // development, staging, production
	Port        string `mapstructure:"APP_PORT"`
	Version     string `mapstructure:"APP_VERSION"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	Playground  bool   `mapstructure:"GRAPHQL_PLAYGROUND"`

	ShutdownTimeout time.Duration `mapstructure:"APP_SHUTDOWN_TIMEOUT"`
}

type GraphQLConfig struct {
	MaxDepth       int `mapstructure:"GRAPHQL_MAX_DEPTH"`
	MaxParallelism int `mapstructure:"GRAPHQL_MAX_PARALLELISM"`
}

// ========================================
// DEFAULTS
// ========================================

var defaults = map[string]interface{}{
	"APP_NAME":             "Bookstore GraphQL",
	"APP_ENV":              "development",
	"APP_PORT":             "8080",
	"APP_VERSION":          "1.0.0",
	"LOG_LEVEL":            "info",
	"GRAPHQL_PLAYGROUND":   true,
	"APP_SHUTDOWN_TIMEOUT": "10s",

	"DB_DRIVER":              database.DriverPostgres,
	"DB_HOST":                "localhost",
	"DB_PORT":                5432,
	"DB_USER":                "bookstore",
	"DB_PASSWORD":            "",
	"DB_NAME":                "bookstore_dev",
	"DB_SSLMODE":             "disable",
	"DB_SQLITE_PATH":         ":memory:",
	"DB_MAX_CONNS":           25,
	"DB_MIN_CONNS":           5,
	"DB_MAX_CONN_LIFETIME":   "5m",
	"DB_MAX_CONN_IDLE_TIME":  "1m",
	"DB_HEALTH_CHECK_PERIOD": "1m",
	"DB_MAX_RETRIES":         5,
	"DB_RETRY_DELAY":         "1s",
	"DB_CONNECT_TIMEOUT":     "10s",

	"DOC_DRIVER":            document.DriverMongo,
	"MONGO_URI":             "mongodb://localhost:27017",
	"MONGO_DB":              "bookstore",
	"MONGO_CONNECT_TIMEOUT": "10s",
	"MONGO_MAX_RETRIES":     5,
	"MONGO_RETRY_DELAY":     "1s",

	"GRAPHQL_MAX_DEPTH":       10,
	"GRAPHQL_MAX_PARALLELISM": 10,
}

// NewViper loads .env when present and returns a viper instance that reads
// every known key from the environment.
func NewViper() *viper.Viper {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Database: &database.DBConfig{},
		Document: &document.Config{},
	}

	sections := []struct {
		name   string
		target interface{}
	}{
		{"app", &cfg.App},
		{"database", cfg.Database},
		{"document", cfg.Document},
		{"graphql", &cfg.GraphQL},
	}
	for _, s := range sections {
		if err := v.Unmarshal(s.target); err != nil {
			return nil, fmt.Errorf("failed to decode %s config: %w", s.name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverPostgres, database.DriverPQ, database.DriverSQLite, database.DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if err := c.Document.Validate(); err != nil {
		return err
	}

	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}

	if c.IsProduction() && c.Database.IsRelationalServer() && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}
