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

// employeeRepository implements EmployeeRepository using PostgreSQL.
type employeeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewEmployeeRepository creates a new PostgreSQL-backed employee directory.
func NewEmployeeRepository(pool *pgxpool.Pool, logger zerolog.Logger) EmployeeRepository {
	return &employeeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "employee").Logger(),
	}
}

const upsertEmployeeQuery = `
	INSERT INTO employees (id, name, mobile)
	VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name, mobile = EXCLUDED.mobile, updated_at = NOW()
	RETURNING created_at, updated_at
`

// GetByID retrieves an employee by their employee code.
func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	query := `
		SELECT id, name, mobile, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e model.Employee
	err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Mobile, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("employee_id", id).Msg("employee not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to query employee")
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}

	return &e, nil
}

// List returns every employee ordered by employee code.
func (r *employeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, mobile, created_at, updated_at
		FROM employees
		ORDER BY id
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query employees")
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Mobile, &e.CreatedAt, &e.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan employee row")
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// Count returns the number of employees in the directory.
func (r *employeeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}

// Upsert creates the employee or replaces their name and mobile.
func (r *employeeRepository) Upsert(ctx context.Context, e *model.Employee) error {
	err := r.pool.QueryRow(ctx, upsertEmployeeQuery, e.ID, e.Name, e.Mobile).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("employee_id", e.ID).Msg("failed to upsert employee")
		return fmt.Errorf("failed to upsert employee: %w", err)
	}
	return nil
}

// UpsertMany writes a roster in a single transaction.
func (r *employeeRepository) UpsertMany(ctx context.Context, employees []model.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, e := range employees {
			batch.Queue(upsertEmployeeQuery, e.ID, e.Name, e.Mobile)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range employees {
			if _, err := results.Exec(); err != nil {
				results.Close()
				r.logger.Error().Err(err).Int64("employee_id", employees[i].ID).Msg("failed to import employee")
				return fmt.Errorf("failed to import employee %d: %w", employees[i].ID, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}

		r.logger.Info().Int("count", len(employees)).Msg("employees imported")
		return nil
	})
}

// Delete removes an employee who holds no coupons.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if foreignKeyViolation(err) {
			return model.ErrEmployeeInUse
		}
		r.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to delete employee")
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}
