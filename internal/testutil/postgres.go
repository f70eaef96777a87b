// Package testutil provides shared helpers for integration tests that need a
// real PostgreSQL server, backed by testcontainers.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// PostgresImage is the Docker image used for PostgreSQL test containers.
	// Scripts under test may contain plpgsql bodies, so it must be a full
	// server image, not a bouncer or proxy.
	PostgresImage = "docker.io/postgres:16-alpine"

	// Credentials for the throwaway script-execution database
	scriptDatabase = "sqlscan"
	scriptUsername = "scanner"
	scriptPassword = "scanner"
)

// SetupPostgresContainer starts a PostgreSQL container for executing scripts
// against and returns a connection string and cleanup function
func SetupPostgresContainer(t *testing.T) (string, func()) {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithDatabase(scriptDatabase),
		postgres.WithUsername(scriptUsername),
		postgres.WithPassword(scriptPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connString, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to build connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return connString, cleanup
}
