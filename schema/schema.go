// Package schema holds the DDL shared by every service that talks to the
// foodcart database. All statements are idempotent.
package schema

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS product_categories (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		category_id INTEGER REFERENCES product_categories(id) ON DELETE SET NULL,
		price NUMERIC(8, 2) NOT NULL CHECK (price >= 0),
		image TEXT NOT NULL DEFAULT '',
		special_status BOOLEAN NOT NULL DEFAULT FALSE,
		description VARCHAR(400) NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS products_special_status_idx ON products (special_status)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		address VARCHAR(100) NOT NULL DEFAULT '',
		contact_phone VARCHAR(50) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS restaurant_menu_items (
		id SERIAL PRIMARY KEY,
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		availability BOOLEAN NOT NULL DEFAULT TRUE,
		UNIQUE (restaurant_id, product_id)
	)`,
	`CREATE INDEX IF NOT EXISTS restaurant_menu_items_availability_idx ON restaurant_menu_items (availability)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		firstname VARCHAR(50) NOT NULL,
		lastname VARCHAR(50) NOT NULL,
		phonenumber VARCHAR(20) NOT NULL,
		address VARCHAR(100) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'unprocessed',
		payment_method VARCHAR(20) NOT NULL DEFAULT 'unspecified',
		comments TEXT NOT NULL DEFAULT '',
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		called_at TIMESTAMPTZ,
		delivered_at TIMESTAMPTZ,
		restaurant_id INTEGER REFERENCES restaurants(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		cost NUMERIC(8, 2) NOT NULL CHECK (cost >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS places (
		id SERIAL PRIMARY KEY,
		address VARCHAR(100) NOT NULL UNIQUE,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS staff_users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_staff BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

// schemaLockKey serialises EnsureSchema across services starting at once.
const schemaLockKey int64 = 0x666f6f64636172

// EnsureSchema applies every statement in one transaction holding a
// transaction-level advisory lock, so concurrent callers run one at a time.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ensure schema: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("ensure schema: lock: %w", err)
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ensure schema: commit: %w", err)
	}
	return nil
}
