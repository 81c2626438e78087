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

// guestOrderRepository implements the GuestOrderRepository interface using PostgreSQL.
type guestOrderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewGuestOrderRepository creates a new PostgreSQL-backed guest order repository.
func NewGuestOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) GuestOrderRepository {
	return &guestOrderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "guest_order").Logger(),
	}
}

// CreateGuestOrders snapshots every dish and inserts one pending order per
// line. Nothing is written unless every dish exists and is available.
func (r *guestOrderRepository) CreateGuestOrders(ctx context.Context, guestID string, body model.GuestCreateOrdersBody) (orders []model.Order, err error) {
	if len(body) == 0 {
		return nil, model.ErrEmptyCart
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	snapshots, err := r.createSnapshots(ctx, tx, body)
	if err != nil {
		return nil, err
	}

	orders, err = r.createOrders(ctx, tx, guestID, body, snapshots)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create guest orders: %w", err)
	}

	r.logger.Info().
		Str("guest_id", guestID).
		Int("order_count", len(orders)).
		Msg("guest orders created successfully")

	return orders, nil
}

func (r *guestOrderRepository) createSnapshots(ctx context.Context, tx pgx.Tx, body model.GuestCreateOrdersBody) ([]model.DishSnapshot, error) {
	query := `
		INSERT INTO dish_snapshots (name, price, image, description, status, dish_id)
		SELECT name, price, image, description, status, id
		FROM dishes
		WHERE id = $1
		RETURNING id, dish_id, name, price::text, image, description, status
	`

	batch := &pgx.Batch{}
	for _, line := range body {
		batch.Queue(query, line.DishID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	snapshots := make([]model.DishSnapshot, len(body))
	for i, line := range body {
		var (
			s     model.DishSnapshot
			price string
		)
		err := results.QueryRow().Scan(&s.ID, &s.DishID, &s.Name, &price, &s.Image, &s.Description, &s.Status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				r.logger.Warn().Int("dish_id", line.DishID).Msg("order line references unknown dish")
				return nil, model.ErrDishNotFound
			}
			r.logger.Error().Err(err).Int("dish_id", line.DishID).Msg("failed to snapshot dish")
			return nil, fmt.Errorf("failed to snapshot dish: %w", err)
		}
		if s.Status != model.DishStatusAvailable {
			r.logger.Warn().Int("dish_id", line.DishID).Str("status", string(s.Status)).Msg("order line references unavailable dish")
			return nil, model.ErrDishUnavailable
		}
		if s.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", price, err)
		}
		snapshots[i] = s
	}

	return snapshots, nil
}

func (r *guestOrderRepository) createOrders(ctx context.Context, tx pgx.Tx, guestID string, body model.GuestCreateOrdersBody, snapshots []model.DishSnapshot) ([]model.Order, error) {
	query := `
		INSERT INTO orders (guest_id, dish_snapshot_id, quantity, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, guest_id, table_number, quantity, status, created_at, updated_at
	`

	batch := &pgx.Batch{}
	for i, line := range body {
		batch.Queue(query, guestID, snapshots[i].ID, line.Quantity, model.OrderStatusPending)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	orders := make([]model.Order, len(body))
	for i := range body {
		o := model.Order{DishSnapshot: snapshots[i]}
		err := results.QueryRow().Scan(&o.ID, &o.GuestID, &o.TableNumber, &o.Quantity, &o.Status, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			r.logger.Error().
				Err(err).
				Int("dish_id", body[i].DishID).
				Msg("failed to create order")
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		orders[i] = o
	}

	return orders, nil
}

// ListGuestOrders retrieves the guest's orders, oldest first.
func (r *guestOrderRepository) ListGuestOrders(ctx context.Context, guestID string) ([]model.Order, error) {
	query := `
		SELECT o.id, o.guest_id, o.table_number, o.quantity, o.status, o.created_at, o.updated_at,
		       s.id, s.dish_id, s.name, s.price::text, s.image, s.description, s.status
		FROM orders o
		JOIN dish_snapshots s ON s.id = o.dish_snapshot_id
		WHERE o.guest_id = $1
		ORDER BY o.created_at, o.id
	`

	rows, err := r.pool.Query(ctx, query, guestID)
	if err != nil {
		r.logger.Error().Err(err).Str("guest_id", guestID).Msg("failed to query guest orders")
		return nil, fmt.Errorf("failed to query guest orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var (
			o     model.Order
			price string
		)
		err := rows.Scan(
			&o.ID, &o.GuestID, &o.TableNumber, &o.Quantity, &o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.DishSnapshot.ID, &o.DishSnapshot.DishID, &o.DishSnapshot.Name, &price,
			&o.DishSnapshot.Image, &o.DishSnapshot.Description, &o.DishSnapshot.Status,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan guest order row")
			return nil, fmt.Errorf("failed to scan guest order: %w", err)
		}
		if o.DishSnapshot.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", price, err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating guest order rows")
		return nil, fmt.Errorf("error iterating guest orders: %w", err)
	}

	return orders, nil
}
