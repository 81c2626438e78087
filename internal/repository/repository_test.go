package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container with the restaurant schema and seed data.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
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

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	createSchema(t, pool)
	seed(t, pool)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func createSchema(t *testing.T, pool *pgxpool.Pool) {
	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name VARCHAR(256) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			name VARCHAR(256) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			image TEXT NOT NULL DEFAULT '',
			category_id INTEGER NOT NULL REFERENCES categories(id),
			status TEXT NOT NULL DEFAULT 'Available',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS dish_snapshots (
			id SERIAL PRIMARY KEY,
			name VARCHAR(256) NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			image TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			dish_id INTEGER REFERENCES dishes(id) ON DELETE SET NULL
		);

		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			guest_id TEXT,
			table_number INTEGER,
			dish_snapshot_id INTEGER NOT NULL UNIQUE REFERENCES dish_snapshots(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			status TEXT NOT NULL DEFAULT 'Pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	_, err := pool.Exec(context.Background(), schema)
	require.NoError(t, err)
}

func seed(t *testing.T, pool *pgxpool.Pool) {
	data := `
		INSERT INTO categories (id, name, description) VALUES
			(1, 'Noodles', 'Hot bowls'),
			(2, 'Drinks', '');

		INSERT INTO dishes (id, name, description, price, image, category_id, status) VALUES
			(1, 'Pho Bo', 'Beef noodle soup', 50000, 'pho.jpg', 1, 'Available'),
			(2, 'Bun Cha', 'Grilled pork', 45000.50, 'https://cdn.example.com/bun.jpg', 1, 'Unavailable'),
			(3, 'Tra Da', 'Iced tea', 5000, 'tea.jpg', 2, 'Available'),
			(4, 'Chef Special', '', 120000, 'special.jpg', 1, 'Hidden');
	`

	_, err := pool.Exec(context.Background(), data)
	require.NoError(t, err)
}
