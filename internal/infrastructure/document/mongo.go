// Package document owns the MongoDB client shared by the review and author
// metadata repositories.
package document

import (
	"context"
	"fmt"

	"bookstore-graphql/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// IndexFunc creates the indexes of one collection.
type IndexFunc func(ctx context.Context, db *mongo.Database) error

type MongoDB struct {
	Client *mongo.Client
	Config *Config
}

func NewMongoDB(cfg *Config) *MongoDB {
	return &MongoDB{Config: cfg}
}

// Connect dials the server, retrying on failure, and verifies it with a
// primary ping.
func (m *MongoDB) Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(m.Config.URI).
		SetAppName("bookstore-graphql")
	if m.Config.ConnectTimeout > 0 {
		opts.SetConnectTimeout(m.Config.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to create mongo client: %w", err)
	}

	policy := database.RetryPolicy{
		Attempts: m.Config.MaxRetries,
		Delay:    m.Config.RetryDelay,
		Timeout:  m.Config.ConnectTimeout,
	}
	if err := database.Retry(ctx, policy, "mongo", func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	m.Client = client
	log.Info().Str("database", m.Config.Database).Msg("[DOCUMENT] MongoDB ready")
	return nil
}

func (m *MongoDB) Database() *mongo.Database {
	return m.Client.Database(m.Config.Database)
}

// EnsureIndexes runs every index function against the configured database.
func (m *MongoDB) EnsureIndexes(ctx context.Context, fns ...IndexFunc) error {
	db := m.Database()
	for _, fn := range fns {
		if err := fn(ctx, db); err != nil {
			return fmt.Errorf("failed to ensure indexes: %w", err)
		}
	}
	return nil
}

func (m *MongoDB) HealthCheck(ctx context.Context) error {
	if m.Client == nil {
		return fmt.Errorf("mongo client not connected")
	}
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	log.Info().Msg("[DOCUMENT] Closing MongoDB client")
	return m.Client.Disconnect(ctx)
}
