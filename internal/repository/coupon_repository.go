package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canteen/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const couponColumns = `id, code, otp, issued_date, issued_time, employee_id, employee_name,
	item_name, net_price_paise, issued_by, redeemed, created_at`

// couponRepository implements CouponRepository using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed ledger.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// Append persists a new coupon.
func (r *couponRepository) Append(ctx context.Context, c *model.Coupon) error {
	issuedTime, err := encodeTimeOfDay(c.IssuedTime)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO coupons (` + couponColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.pool.Exec(ctx, query,
		c.ID, c.Code, c.OTP, c.IssuedDate.Time(), issuedTime, c.EmployeeID, c.EmployeeName,
		c.ItemName, model.ToPaise(c.NetPrice), c.IssuedBy, c.Redeemed, c.CreatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == constraintCouponEmployeeItemDay {
				r.logger.Debug().
					Int64("employee_id", c.EmployeeID).
					Str("item", c.ItemName).
					Str("date", c.IssuedDate.String()).
					Msg("duplicate order rejected by store")
				return model.ErrDuplicateOrder
			}
			r.logger.Debug().Str("constraint", constraint).Msg("coupon code or otp collision")
			return model.ErrDuplicateCode
		}
		if foreignKeyViolation(err) {
			return model.ErrEmployeeNotFound
		}
		r.logger.Error().Err(err).Str("coupon_id", c.ID.String()).Msg("failed to append coupon")
		return fmt.Errorf("failed to append coupon: %w", err)
	}

	r.logger.Debug().
		Str("coupon_id", c.ID.String()).
		Str("code", c.Code).
		Msg("coupon appended")

	return nil
}

// FindByCodeOrOTP returns the coupon matching token, preferring an OTP match.
func (r *couponRepository) FindByCodeOrOTP(ctx context.Context, token string) (*model.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE otp = $1 OR code = $1
		ORDER BY (otp = $1) DESC
		LIMIT 1
	`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to look up coupon")
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	return c, nil
}

// FindForEmployeeItemDate returns the employee's coupon for an item on a day.
func (r *couponRepository) FindForEmployeeItemDate(ctx context.Context, employeeID int64, item string, date model.Date) (*model.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE employee_id = $1 AND item_name = $2 AND issued_date = $3
	`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, employeeID, item, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Int64("employee_id", employeeID).
			Str("item", item).
			Msg("failed to query existing order")
		return nil, fmt.Errorf("failed to query existing order: %w", err)
	}

	return c, nil
}

// ItemsOrderedOn lists the items an employee holds coupons for on a day.
func (r *couponRepository) ItemsOrderedOn(ctx context.Context, employeeID int64, date model.Date) ([]string, error) {
	query := `
		SELECT item_name
		FROM coupons
		WHERE employee_id = $1 AND issued_date = $2
		ORDER BY item_name
	`

	rows, err := r.pool.Query(ctx, query, employeeID, date.Time())
	if err != nil {
		r.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to query ordered items")
		return nil, fmt.Errorf("failed to query ordered items: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect ordered items: %w", err)
	}

	return items, nil
}

// MarkRedeemed flips the redeemed flag if and only if it is still false.
func (r *couponRepository) MarkRedeemed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET redeemed = TRUE WHERE id = $1 AND redeemed = FALSE`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to mark coupon redeemed")
		return fmt.Errorf("failed to mark coupon redeemed: %w", err)
	}

	if tag.RowsAffected() == 1 {
		r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon redeemed")
		return nil
	}

	// Nothing changed: either the coupon is gone or someone else redeemed it first.
	var redeemed bool
	err = r.pool.QueryRow(ctx, `SELECT redeemed FROM coupons WHERE id = $1`, id).Scan(&redeemed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCouponNotFound
		}
		return fmt.Errorf("failed to read coupon state: %w", err)
	}

	return model.ErrAlreadyRedeemed
}

// ListForPeriod returns the coupons issued in an inclusive date range.
func (r *couponRepository) ListForPeriod(ctx context.Context, start, end model.Date) ([]model.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE issued_date BETWEEN $1 AND $2
		ORDER BY issued_date, issued_time, code
	`

	rows, err := r.pool.Query(ctx, query, start.Time(), end.Time())
	if err != nil {
		r.logger.Error().Err(err).
			Str("start", start.String()).
			Str("end", end.String()).
			Msg("failed to query coupons for period")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// DailyCounts aggregates coupons per issue date.
func (r *couponRepository) DailyCounts(ctx context.Context, start, end model.Date) ([]model.DailyTotal, error) {
	query := `
		SELECT issued_date, COUNT(*), COUNT(*) FILTER (WHERE redeemed)
		FROM coupons
		WHERE issued_date BETWEEN $1 AND $2
		GROUP BY issued_date
		ORDER BY issued_date
	`

	rows, err := r.pool.Query(ctx, query, start.Time(), end.Time())
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to aggregate daily counts")
		return nil, fmt.Errorf("failed to aggregate daily counts: %w", err)
	}
	defer rows.Close()

	var totals []model.DailyTotal
	for rows.Next() {
		var (
			day   time.Time
			total model.DailyTotal
		)
		if err := rows.Scan(&day, &total.Generated, &total.Redeemed); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		total.Date = model.DateOf(day)
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily counts: %w", err)
	}

	return totals, nil
}

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var (
		c          model.Coupon
		issuedDate time.Time
		issuedTime pgtype.Time
		paise      int64
	)

	err := row.Scan(
		&c.ID, &c.Code, &c.OTP, &issuedDate, &issuedTime, &c.EmployeeID, &c.EmployeeName,
		&c.ItemName, &paise, &c.IssuedBy, &c.Redeemed, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.IssuedDate = model.DateOf(issuedDate)
	c.IssuedTime = decodeTimeOfDay(issuedTime)
	c.NetPrice = model.FromPaise(paise)
	return &c, nil
}

// encodeTimeOfDay converts an "HH:MM:SS" string into a TIME value.
func encodeTimeOfDay(s string) (pgtype.Time, error) {
	t, err := time.Parse(model.TimeLayout, s)
	if err != nil {
		return pgtype.Time{}, fmt.Errorf("invalid issue time %q: %w", s, err)
	}
	since := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	return pgtype.Time{Microseconds: since.Microseconds(), Valid: true}, nil
}

func decodeTimeOfDay(t pgtype.Time) string {
	if !t.Valid {
		return ""
	}
	midnight := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(t.Microseconds) * time.Microsecond).Format(model.TimeLayout)
}
