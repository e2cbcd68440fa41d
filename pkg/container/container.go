package container

import (
	"context"
	"fmt"
	"time"

	"bookstore-graphql/internal/config"
	authorRepo "bookstore-graphql/internal/domains/author/repository"
	authorService "bookstore-graphql/internal/domains/author/service"
	bookRepo "bookstore-graphql/internal/domains/book/repository"
	bookService "bookstore-graphql/internal/domains/book/service"
	reviewRepo "bookstore-graphql/internal/domains/review/repository"
	reviewService "bookstore-graphql/internal/domains/review/service"
	"bookstore-graphql/internal/graph"
	"bookstore-graphql/internal/infrastructure/database"
	"bookstore-graphql/internal/infrastructure/document"
	"bookstore-graphql/internal/infrastructure/metrics"
	"bookstore-graphql/internal/store/memory"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
)

// Store names used by health reporting and metrics.
const (
	StoreRelational = "relational"
	StoreDocument   = "document"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container owns every long-lived dependency of the API process. Build order
// is config -> infrastructure -> repositories -> services -> GraphQL.
type Container struct {
	Config  *config.Config
	Metrics *metrics.Metrics

	// Infrastructure. Only the clients selected by DB_DRIVER / DOC_DRIVER
	// are non-nil.
	Postgres *database.PostgresDB
	SQL      *database.SQLDB
	Mongo    *document.MongoDB
	Memory   *memory.Store

	AuthorRepo   authorRepo.RepositoryInterface
	MetadataRepo authorRepo.MetadataRepository
	BookRepo     bookRepo.RepositoryInterface
	ReviewRepo   reviewRepo.Repository

	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface

	Schema         *gql.Schema
	GraphQLHandler *graph.Handler

	checks map[string]func(context.Context) error
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer connects the configured stores and wires the dependency
// graph. On failure every resource opened so far is released.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{
		Config:  cfg,
		Metrics: metrics.New(),
		checks:  make(map[string]func(context.Context) error),
	}
	if err := c.build(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.Database.Driver).
		Str("doc_driver", cfg.Document.Driver).
		Msg("DI container initialized")
	return c, nil
}

func (c *Container) build(ctx context.Context) error {
	if err := c.initRelational(ctx); err != nil {
		return fmt.Errorf("failed to init relational store: %w", err)
	}
	if err := c.initDocument(ctx); err != nil {
		return fmt.Errorf("failed to init document store: %w", err)
	}

	c.initServices()

	if err := c.initGraphQL(); err != nil {
		return fmt.Errorf("failed to init graphql: %w", err)
	}
	return nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) memoryStore() *memory.Store {
	if c.Memory == nil {
		c.Memory = memory.NewStore()
	}
	return c.Memory
}

func (c *Container) initRelational(ctx context.Context) error {
	cfg := c.Config.Database

	switch cfg.Driver {
	case database.DriverPostgres:
		db := database.NewPostgresDB(cfg)
		if err := db.Connect(ctx); err != nil {
			return err
		}
		c.Postgres = db
		c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
		c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
		c.checks[StoreRelational] = db.HealthCheck
		c.Metrics.RegisterPool(cfg.Driver, db.Stats)

	case database.DriverPQ, database.DriverSQLite:
		db, err := database.OpenSQL(ctx, cfg)
		if err != nil {
			return err
		}
		c.SQL = db
		c.AuthorRepo = authorRepo.NewSQLRepository(db)
		c.BookRepo = bookRepo.NewSQLRepository(db)
		c.checks[StoreRelational] = db.HealthCheck
		c.Metrics.RegisterPool(cfg.Driver, db.Stats)

	case database.DriverMemory:
		store := c.memoryStore()
		c.AuthorRepo = store.Authors()
		c.BookRepo = store.Books()

	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	return nil
}

func (c *Container) initDocument(ctx context.Context) error {
	cfg := c.Config.Document

	switch cfg.Driver {
	case document.DriverMongo:
		db := document.NewMongoDB(cfg)
		if err := db.Connect(ctx); err != nil {
			return err
		}
		c.Mongo = db
		if err := db.EnsureIndexes(ctx, reviewRepo.EnsureIndexes, authorRepo.EnsureMetadataIndexes); err != nil {
			return err
		}
		c.ReviewRepo = reviewRepo.NewMongoRepository(db.Database())
		c.MetadataRepo = authorRepo.NewMongoMetadataRepository(db.Database())
		c.checks[StoreDocument] = db.HealthCheck

	case document.DriverMemory:
		store := c.memoryStore()
		c.ReviewRepo = store.Reviews()
		c.MetadataRepo = store.Metadata()

	default:
		return fmt.Errorf("unsupported DOC_DRIVER %q", cfg.Driver)
	}
	return nil
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewService(c.AuthorRepo, c.MetadataRepo)
	c.BookService = bookService.NewService(c.BookRepo, c.AuthorRepo)
	c.ReviewService = reviewService.NewService(c.ReviewRepo, c.BookRepo)
}

func (c *Container) initGraphQL() error {
	root := graph.NewResolver(c.AuthorService, c.BookService, c.ReviewService, c.Metrics)

	schema, err := graph.NewSchema(root, graph.Options{
		MaxDepth:       c.Config.GraphQL.MaxDepth,
		MaxParallelism: c.Config.GraphQL.MaxParallelism,
	})
	if err != nil {
		return err
	}
	c.Schema = schema
	c.GraphQLHandler = graph.NewHandler(schema)
	return nil
}

// ========================================
// HEALTH
// ========================================

// HealthCheck pings both stores. The map holds "ok" or the failure message per
// store; in-memory stores always report ok.
func (c *Container) HealthCheck(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{
		StoreRelational: "ok",
		StoreDocument:   "ok",
	}
	healthy := true

	for name, check := range c.checks {
		if err := check(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			log.Warn().Err(err).Str("store", name).Msg("Health check failed")
		}
	}

	for name, s := range status {
		c.Metrics.SetHealth(name, s == "ok")
	}
	return status, healthy
}

// Cleanup releases store clients. Safe to call on a partially built
// container.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.Postgres != nil {
		if err := c.Postgres.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close postgres pool")
		}
	}
	if c.SQL != nil {
		if err := c.SQL.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close sql database")
		}
	}
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close mongo client")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
