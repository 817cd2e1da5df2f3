package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/lib/pq"
)

// ErrConflict is returned when an insert violates a unique constraint.
var ErrConflict = errors.New("record already exists")

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sections (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		section_id INT NOT NULL REFERENCES sections(id),
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		image_url TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS daily_stock (
		id SERIAL PRIMARY KEY,
		product_id INT NOT NULL REFERENCES products(id),
		stock_date DATE NOT NULL DEFAULT CURRENT_DATE,
		initial_quantity INT NOT NULL CHECK (initial_quantity >= 0),
		current_quantity INT NOT NULL CHECK (current_quantity >= 0),
		sold_quantity INT NOT NULL DEFAULT 0 CHECK (sold_quantity >= 0),
		UNIQUE (product_id, stock_date),
		CHECK (current_quantity = initial_quantity - sold_quantity)
	)`,
	`CREATE SEQUENCE IF NOT EXISTS invoice_number_seq`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id SERIAL PRIMARY KEY,
		invoice_number TEXT NOT NULL UNIQUE,
		customer_id TEXT NOT NULL,
		employee_id TEXT,
		subtotal NUMERIC(10,2) NOT NULL,
		tax NUMERIC(10,2) NOT NULL,
		discount NUMERIC(10,2) NOT NULL DEFAULT 0,
		total NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'confirmed', 'delivered', 'cancelled', 'paid')),
		payment_method TEXT NOT NULL CHECK (payment_method IN ('cash', 'card', 'transfer')),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id SERIAL PRIMARY KEY,
		invoice_id INT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		product_id INT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(10,2) NOT NULL,
		line_total NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'customer',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		first_name TEXT,
		last_name TEXT,
		cedula_ruc TEXT,
		phone TEXT,
		gender TEXT,
		birth_date DATE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		street_address TEXT,
		reference TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE,
		score INT NOT NULL CHECK (score BETWEEN 1 AND 5),
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS invoices_customer_idx ON invoices (customer_id, created_at DESC)`,
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
