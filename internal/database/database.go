package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canteen/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrSchemaMissing is returned when the ledger tables have not been migrated.
var ErrSchemaMissing = errors.New("ledger schema is missing, run the migrations first")

// Open brings the ledger database up: pending migrations are applied when
// cfg.RunMigrations is set, then a pool is opened against the migrated schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger = logger.With().Str("component", "database").Logger()

	if cfg.RunMigrations {
		if err := Migrate(cfg.ConnectionString(), logger); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	} else {
		logger.Info().Msg("skipping migrations, expecting an up-to-date schema")
	}

	return NewPool(ctx, cfg, logger)
}

// NewPool opens a connection pool and checks that the ledger schema exists.
// Sessions run in UTC; issue dates are computed by the service in the ledger
// time zone and stored as plain dates.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Msg("opening ledger database pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var coupons *string
	if err := pool.QueryRow(ctx, `SELECT to_regclass('coupons')::text`).Scan(&coupons); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to inspect ledger schema: %w", err)
	}
	if coupons == nil {
		pool.Close()
		return nil, ErrSchemaMissing
	}

	logger.Info().Msg("ledger database pool ready")
	return pool, nil
}

func newPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.ConnConfig.RuntimeParams["application_name"] = "canteen"
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	return poolConfig, nil
}
