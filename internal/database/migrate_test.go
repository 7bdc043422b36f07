package database

import (
	"context"
	"testing"
	"time"

	"canteen/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "postgres scheme",
			in:       "postgres://u:p@localhost:5432/db?sslmode=disable",
			expected: "pgx5://u:p@localhost:5432/db?sslmode=disable",
		},
		{
			name:     "postgresql scheme",
			in:       "postgresql://u:p@localhost/db",
			expected: "pgx5://u:p@localhost/db",
		},
		{
			name:     "already rewritten",
			in:       "pgx5://u:p@localhost/db",
			expected: "pgx5://u:p@localhost/db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, migrateURL(tt.in))
		})
	}
}

func TestOpen_MigratesAndChecksSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "postgres",
		Password:        "postgres",
		Database:        "testdb",
		MaxConnections:  4,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}
	logger := zerolog.Nop()

	// Without migrations the pool refuses to start.
	pool, err := Open(ctx, cfg, logger)
	assert.ErrorIs(t, err, ErrSchemaMissing)
	assert.Nil(t, pool)

	cfg.RunMigrations = true
	pool, err = Open(ctx, cfg, logger)
	require.NoError(t, err)
	pool.Close()

	// A second run finds nothing to apply.
	pool, err = Open(ctx, cfg, logger)
	require.NoError(t, err)
	defer pool.Close()

	var tz, app string
	require.NoError(t, pool.QueryRow(ctx, "SELECT current_setting('TimeZone'), current_setting('application_name')").Scan(&tz, &app))
	assert.Equal(t, "UTC", tz)
	assert.Equal(t, "canteen", app)

	for _, table := range []string{"employees", "menu_items", "coupons", "credentials"} {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}
}

func TestNewPoolConfig(t *testing.T) {
	poolConfig, err := newPoolConfig(config.DatabaseConfig{
		Host:            "db.internal",
		Port:            5433,
		User:            "ledger",
		Password:        "secret",
		Database:        "canteen",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 120,
	})

	require.NoError(t, err)
	assert.Equal(t, int32(10), poolConfig.MaxConns)
	assert.Equal(t, int32(2), poolConfig.MinConns)
	assert.Equal(t, 2*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, "db.internal", poolConfig.ConnConfig.Host)
	assert.Equal(t, uint16(5433), poolConfig.ConnConfig.Port)
	assert.Equal(t, "UTC", poolConfig.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "canteen", poolConfig.ConnConfig.RuntimeParams["application_name"])
}

func TestNewPool_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, config.DatabaseConfig{
		Host:            "invalid-host.invalid",
		Port:            5432,
		User:            "user",
		Password:        "pass",
		Database:        "db",
		MaxConnections:  1,
		MinConnections:  1,
		MaxConnLifetime: 60,
	}, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, pool)
}
