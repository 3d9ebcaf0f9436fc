package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finlight/dashboard-be/internal/models"
	"github.com/finlight/dashboard-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore      = (*Store)(nil)
	_ storage.DashboardStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users and the dashboard
// read models.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL REFERENCES customers(id),
			amount_cents BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			date DATE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS revenue (
			month TEXT PRIMARY KEY,
			revenue_cents BIGINT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (id, username, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, username, email, password_hash, role, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by normalized email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT id, username, email, password_hash, role, created_at
	FROM users WHERE email = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
	SELECT id, username, email, password_hash, role, created_at
	FROM users WHERE username = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// UpdateUser rewrites the mutable columns of an existing user.
func (s *Store) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	UPDATE users SET username = $2, email = $3, password_hash = $4, role = $5
	WHERE id = $1
	RETURNING id, username, email, password_hash, role, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash, user.Role)
	updated, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return updated, nil
}

// ListUsers returns all users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `
	SELECT id, username, email, password_hash, role, created_at
	FROM users ORDER BY created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Summary aggregates the overview card numbers in one round trip.
func (s *Store) Summary(ctx context.Context) (models.DashboardSummary, error) {
	const query = `
	SELECT
		(SELECT COUNT(*) FROM customers),
		(SELECT COUNT(*) FROM invoices),
		(SELECT COALESCE(SUM(amount_cents), 0) FROM invoices WHERE status = 'paid'),
		(SELECT COALESCE(SUM(amount_cents), 0) FROM invoices WHERE status = 'pending');
	`
	var summary models.DashboardSummary
	err := s.pool.QueryRow(ctx, query).Scan(
		&summary.CustomerCount,
		&summary.InvoiceCount,
		&summary.PaidTotalCents,
		&summary.PendingTotalCents,
	)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	return summary, nil
}

// ListCustomers returns all customers ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	const query = `SELECT id, name, email FROM customers ORDER BY name;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// LatestInvoices returns the most recent invoices joined with their customer.
func (s *Store) LatestInvoices(ctx context.Context, limit int) ([]models.Invoice, error) {
	const query = `
	SELECT i.id, i.customer_id, c.name, i.amount_cents, i.status, i.date
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id
	ORDER BY i.date DESC
	LIMIT $1;
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.CustomerName, &inv.AmountCents, &inv.Status, &inv.Date); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// MonthlyRevenue returns the chart rows in insertion order.
func (s *Store) MonthlyRevenue(ctx context.Context) ([]models.MonthlyRevenue, error) {
	const query = `SELECT month, revenue_cents FROM revenue;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []models.MonthlyRevenue
	for rows.Next() {
		var m models.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.RevenueCents); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
