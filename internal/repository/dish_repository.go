package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const dishColumns = `id, name, description, price::text, image, category_id, status, created_at, updated_at`

// dishRepository implements the DishRepository interface using PostgreSQL.
type dishRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDishRepository creates a new PostgreSQL-backed dish repository.
func NewDishRepository(pool *pgxpool.Pool, logger zerolog.Logger) DishRepository {
	return &dishRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "dish").Logger(),
	}
}

func scanDish(row pgx.Row) (model.Dish, error) {
	var (
		d     model.Dish
		price string
	)
	err := row.Scan(&d.ID, &d.Name, &d.Description, &price, &d.Image, &d.CategoryID, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return d, err
	}
	d.Price, err = decimal.NewFromString(price)
	if err != nil {
		return d, fmt.Errorf("invalid price %q: %w", price, err)
	}
	return d, nil
}

// ListDishes retrieves every dish ordered by id.
func (r *dishRepository) ListDishes(ctx context.Context) ([]model.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dishes")
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	dishes := []model.Dish{}
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan dish row")
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating dish rows")
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}

// GetDish retrieves a single dish by its id.
func (r *dishRepository) GetDish(ctx context.Context, id int) (*model.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`

	d, err := scanDish(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("dish_id", id).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("dish_id", id).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}

	return &d, nil
}
