package repository

import (
	"context"
	"errors"
	"fmt"

	"canteen/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// credentialRepository implements CredentialRepository using PostgreSQL.
type credentialRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCredentialRepository creates a new PostgreSQL-backed credential store.
func NewCredentialRepository(pool *pgxpool.Pool, logger zerolog.Logger) CredentialRepository {
	return &credentialRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "credential").Logger(),
	}
}

const credentialColumns = `username, password_hash, role, display_name, email, created_at, updated_at`

func (r *credentialRepository) GetByUsername(ctx context.Context, username string) (*model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE username = $1`

	c, err := scanCredential(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("username", username).Msg("failed to query credential")
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}
	return c, nil
}

func (r *credentialRepository) List(ctx context.Context) ([]model.Credential, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+credentialColumns+` FROM credentials ORDER BY username`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query credentials")
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	creds := []model.Credential{}
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credentials: %w", err)
	}
	return creds, nil
}

func (r *credentialRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count credentials: %w", err)
	}
	return n, nil
}

func (r *credentialRepository) Create(ctx context.Context, c *model.Credential) error {
	query := `
		INSERT INTO credentials (username, password_hash, role, display_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, c.Username, c.PasswordHash, string(c.Role), c.DisplayName, c.Email).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintCredentialsPK {
			return model.ErrUserExists
		}
		r.logger.Error().Err(err).Str("username", c.Username).Msg("failed to create credential")
		return fmt.Errorf("failed to create credential: %w", err)
	}

	r.logger.Info().Str("username", c.Username).Str("role", string(c.Role)).Msg("credential created")
	return nil
}

// Update overwrites the mutable fields of c. Demoting the only admin fails
// with model.ErrLastAdmin; the admin rows stay locked until the write commits.
func (r *credentialRepository) Update(ctx context.Context, c *model.Credential) error {
	query := `
		UPDATE credentials
		SET password_hash = $2, role = $3, display_name = $4, email = $5, updated_at = NOW()
		WHERE username = $1
		RETURNING updated_at
	`

	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if c.Role != model.RoleAdmin {
			if err := guardLastAdmin(ctx, tx, c.Username); err != nil {
				return err
			}
		}

		err := tx.QueryRow(ctx, query, c.Username, c.PasswordHash, string(c.Role), c.DisplayName, c.Email).
			Scan(&c.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrUserNotFound
			}
			r.logger.Error().Err(err).Str("username", c.Username).Msg("failed to update credential")
			return fmt.Errorf("failed to update credential: %w", err)
		}
		return nil
	})
}

// Delete removes a credential. Removing the only admin fails with model.ErrLastAdmin.
func (r *credentialRepository) Delete(ctx context.Context, username string) error {
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := guardLastAdmin(ctx, tx, username); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM credentials WHERE username = $1`, username)
		if err != nil {
			r.logger.Error().Err(err).Str("username", username).Msg("failed to delete credential")
			return fmt.Errorf("failed to delete credential: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrUserNotFound
		}
		return nil
	})
}

// guardLastAdmin locks every admin row in username order and returns
// model.ErrLastAdmin when username is the only admin left. Concurrent callers
// queue on the locks and see each other's committed demotions and deletes.
func guardLastAdmin(ctx context.Context, tx pgx.Tx, username string) error {
	rows, err := tx.Query(ctx,
		`SELECT username FROM credentials WHERE role = $1 ORDER BY username FOR UPDATE`,
		string(model.RoleAdmin))
	if err != nil {
		return fmt.Errorf("failed to lock admin credentials: %w", err)
	}
	defer rows.Close()

	admins := 0
	isAdmin := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan admin credential: %w", err)
		}
		admins++
		if name == username {
			isAdmin = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating admin credentials: %w", err)
	}

	if isAdmin && admins <= 1 {
		return model.ErrLastAdmin
	}
	return nil
}

func scanCredential(row pgx.Row) (*model.Credential, error) {
	var (
		c    model.Credential
		role string
	)
	err := row.Scan(&c.Username, &c.PasswordHash, &role, &c.DisplayName, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Role = model.Role(role)
	return &c, nil
}
