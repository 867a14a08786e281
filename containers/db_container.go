package containers

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const pgImage = "postgres:16.3-alpine"

// DBContainer runs a throwaway postgres with the tracker schema applied, for
// tests that need a real database.
type DBContainer struct {
	container *postgres.PostgresContainer
	connStr   string
}

func NewDBContainer() *DBContainer {
	ctx := context.Background()

	container, err := postgres.Run(ctx, pgImage,
		postgres.WithDatabase("ff_tracker"),
		postgres.WithUsername("tracker"),
		postgres.WithPassword("tracker-test"),
		postgres.WithInitScripts(filepath.Join("..", "schema", "schema.sql")),
		testcontainers.WithWaitStrategy(
			// Postgres restarts once during init, so wait for the second ready line.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10*time.Second)),
	)
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	// The container is not configured for TLS.
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("error getting connection string: %v", err)
	}

	return &DBContainer{
		container: container,
		connStr:   connStr,
	}
}

func (c *DBContainer) ConnectionString() string {
	return c.connStr
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating postgres container: %v", err)
	}
}
