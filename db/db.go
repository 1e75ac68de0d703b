// Package db implements PostgreSQL persistence for users and transactions.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/akarpov/finlog/models"
)

// uniqueViolation is the PostgreSQL error code for a unique index conflict.
const uniqueViolation = "23505"

type Storage struct {
	DB *sql.DB
}

// Credentials is the storage-side view of an account. The password hash
// exists only here; models.User has no hash field to expose.
type Credentials struct {
	User         models.User
	PasswordHash string
}

func NewStorage(connStr string) (*Storage, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	s := &Storage{DB: conn}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount BIGINT NOT NULL CHECK (amount > 0),
			type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS transactions_user_id_idx ON transactions (user_id)`,
	}

	for _, m := range migrations {
		if _, err := s.DB.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// CreateUser inserts a user together with its password hash. A duplicate
// email (case-sensitive exact match on the unique index) yields ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, u models.User, passwordHash string) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)",
		u.ID, u.Name, u.Email, passwordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail looks up an account by exact email match, returning the
// storage-only credentials view.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*Credentials, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash FROM users WHERE email = $1", email)

	var c Credentials
	if err := row.Scan(&c.User.ID, &c.User.Name, &c.User.Email, &c.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &c, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT id, name, email FROM users WHERE id = $1", id)

	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &u, nil
}

func (s *Storage) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return s.DB.QueryRowContext(ctx,
		`INSERT INTO transactions (id, user_id, name, description, amount, type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		t.ID, t.UserID, t.Name, t.Description, t.Amount, t.Type,
	).Scan(&t.CreatedAt)
}

func (s *Storage) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, name, description, amount, type, created_at
		 FROM transactions WHERE id = $1`, id)

	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Amount, &t.Type, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select transaction: %w", err)
	}
	return &t, nil
}

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	OwnerID string
	Type    models.TransactionType
}

func (s *Storage) ListTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT id, user_id, name, description, amount, type, created_at
		 FROM transactions WHERE 1=1`
	args := []any{}

	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions = []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Amount, &t.Type, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// UpdateTransaction rewrites the mutable fields of a record. A record that
// no longer exists (including one deleted by a concurrent request) yields
// ErrNotFound.
func (s *Storage) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE transactions SET name = $1, description = $2, amount = $3, type = $4 WHERE id = $5",
		t.Name, t.Description, t.Amount, t.Type, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
