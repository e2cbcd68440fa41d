//go:build integration

// Package testsupport starts throwaway store containers for integration
// tests. It only builds with the integration tag.
package testsupport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bookstore-graphql/internal/infrastructure/database"
	"bookstore-graphql/internal/infrastructure/document"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "bookstore"
	pgPassword = "bookstore"
	pgDatabase = "bookstore_test"
)

// StartPostgres runs postgres and returns a config pointing at it. The
// container is terminated when the test ends.
func StartPostgres(t *testing.T, driver string) *database.DBConfig {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return &database.DBConfig{
		Driver:         driver,
		Host:           host,
		Port:           port.Int(),
		Username:       pgUser,
		Password:       pgPassword,
		DBName:         pgDatabase,
		SSLMode:        "disable",
		MaxConns:       5,
		MinConns:       1,
		MaxRetries:     5,
		RetryDelay:     500 * time.Millisecond,
		ConnectTimeout: 5 * time.Second,
	}
}

// StartMongo runs mongod and returns a config pointing at it.
func StartMongo(t *testing.T) *document.Config {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	return &document.Config{
		Driver:         document.DriverMongo,
		URI:            fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database:       "bookstore_test",
		ConnectTimeout: 5 * time.Second,
		MaxRetries:     5,
		RetryDelay:     500 * time.Millisecond,
	}
}

// ConnectMongo starts mongod and returns a connected client wrapper.
func ConnectMongo(t *testing.T) *document.MongoDB {
	t.Helper()
	db := document.NewMongoDB(StartMongo(t))
	require.NoError(t, db.Connect(context.Background()))
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}
