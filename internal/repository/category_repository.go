package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// ListCategories retrieves every category ordered by id.
func (r *categoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, description, image, created_at, updated_at
		FROM categories
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetCategory retrieves a single category by its id.
func (r *categoryRepository) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	query := `
		SELECT id, name, description, image, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}
