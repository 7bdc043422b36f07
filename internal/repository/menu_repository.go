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

// menuRepository implements MenuRepository using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

func (r *menuRepository) GetByName(ctx context.Context, name string) (*model.MenuItem, error) {
	query := `
		SELECT name, price_paise, discount_paise, updated_at
		FROM menu_items
		WHERE name = $1
	`

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("item", name).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item", name).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return item, nil
}

func (r *menuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, price_paise, discount_paise, updated_at
		FROM menu_items
		ORDER BY name
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu: %w", err)
	}

	return items, nil
}

func (r *menuRepository) Upsert(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, price_paise, discount_paise)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET price_paise = EXCLUDED.price_paise,
		    discount_paise = EXCLUDED.discount_paise,
		    updated_at = NOW()
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, item.Name, model.ToPaise(item.Price), model.ToPaise(item.Discount)).
		Scan(&item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("item", item.Name).Msg("failed to upsert menu item")
		return fmt.Errorf("failed to upsert menu item: %w", err)
	}
	return nil
}

// Delete removes an item from the active menu. Issued coupons keep their frozen item name and price.
func (r *menuRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE name = $1`, name)
	if err != nil {
		r.logger.Error().Err(err).Str("item", name).Msg("failed to delete menu item")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var (
		item            model.MenuItem
		price, discount int64
	)
	if err := row.Scan(&item.Name, &price, &discount, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Price = model.FromPaise(price)
	item.Discount = model.FromPaise(discount)
	return &item, nil
}
