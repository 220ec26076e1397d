// AngelaMos | 2026
// postgres.go

//go:build integration

package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carterperez-dev/templates/project-records/internal/config"
	"github.com/carterperez-dev/templates/project-records/internal/core"
)

const postgresImage = "postgres:16-alpine"

// PostgresContainer is a migrated database running in a container.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *sqlx.DB
}

// NewPostgres starts a container, applies the embedded migrations and
// connects through the same pgx driver the service uses. The container
// is terminated when t finishes.
func NewPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("records"),
		tcpostgres.WithUsername("records"),
		tcpostgres.WithPassword("records"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := core.Migrate(ctx, url, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db, err := core.NewDatabase(ctx, config.DatabaseConfig{
		URL:          url,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &PostgresContainer{
		Container: container,
		URL:       url,
		DB:        db.DB,
	}
}

// Truncate empties the given tables between tests.
func (p *PostgresContainer) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	for _, table := range tables {
		if _, err := p.DB.Exec("TRUNCATE TABLE " + table + " CASCADE"); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}
