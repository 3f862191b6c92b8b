// Package integration runs the HTTP API end to end against a postgres
// container seeded through the same bootstrap path the service uses.
package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ota-rewards/internal/cart"
	"ota-rewards/internal/config"
	"ota-rewards/internal/database"
	"ota-rewards/internal/handler"
	"ota-rewards/internal/repository"
	"ota-rewards/internal/router"
	"ota-rewards/internal/seed"
	"ota-rewards/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB starts a PostgreSQL container and opens a pool on it through
// database.NewPool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// ResetDB recreates the schema and loads f, or the built-in seed when f is
// nil.
func ResetDB(t *testing.T, pool *pgxpool.Pool, f *seed.Fixture) {
	t.Helper()

	if f == nil {
		f = seed.Default()
	}
	if err := repository.Bootstrap(context.Background(), pool, f, zerolog.Nop()); err != nil {
		t.Fatalf("failed to bootstrap database: %v", err)
	}
}

// NewServer wires the full handler stack over repos with no simulated
// latency.
func NewServer(repos repository.Repositories, serialize bool) http.Handler {
	logger := zerolog.Nop()
	opts := service.Options{Gate: service.NewWriteGate(serialize)}

	rewards := service.NewRewardService(repos, opts, logger)
	addOns := service.NewAddOnService(repos, opts, logger)
	carts := service.NewCartService(cart.NewSessions(), addOns, logger)

	return router.New(router.Handlers{
		Rewards: handler.NewRewardHandler(rewards, logger),
		AddOns:  handler.NewAddOnHandler(addOns, logger),
		Cart:    handler.NewCartHandler(carts, logger),
	}, logger)
}
