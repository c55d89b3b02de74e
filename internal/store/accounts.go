package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/jwlee-dev/memopad/internal/apperr"
	"github.com/jwlee-dev/memopad/internal/models"
)

// CreateAccount inserts a new account. A duplicate email is rejected by the
// unique index and reported as apperr.ErrEmailTaken, so concurrent inserts
// for the same email cannot both succeed.
func (db *DB) CreateAccount(ctx context.Context, a *models.Account) error {
	name := sql.NullString{String: a.Name, Valid: a.Name != ""}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.Email, a.Hash, name, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrEmailTaken
		}
		return fmt.Errorf("store: insert account: %w", err)
	}
	return nil
}

// GetAccountByEmail returns the account with the given email, matched
// case-sensitively on the stored key.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return db.scanAccount(db.conn.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, created_at
		FROM accounts WHERE email = ?
	`, email))
}

// GetAccount returns the account with the given id.
func (db *DB) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return db.scanAccount(db.conn.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, created_at
		FROM accounts WHERE id = ?
	`, id))
}

func (db *DB) scanAccount(row *sql.Row) (*models.Account, error) {
	var a models.Account
	var name sql.NullString
	err := row.Scan(&a.ID, &a.Email, &a.Hash, &name, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan account: %w", err)
	}
	a.Name = name.String
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
