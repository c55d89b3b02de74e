package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jwlee-dev/memopad/internal/apperr"
	"github.com/jwlee-dev/memopad/internal/models"
)

// CreateSession persists a new session token.
func (db *DB) CreateSession(ctx context.Context, s *models.Session) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO sessions (token, account_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`, s.Token, s.AccountID, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert session: %w", err)
	}
	return nil
}

// GetSession returns the session for a token. Expiry is checked by the
// caller, which knows the current time.
func (db *DB) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := db.conn.QueryRowContext(ctx, `
		SELECT token, account_id, expires_at, created_at
		FROM sessions WHERE token = ?
	`, token).Scan(&s.Token, &s.AccountID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan session: %w", err)
	}
	return &s, nil
}

// DeleteSession invalidates a token. Deleting an unknown token is a no-op.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("store: delete session: %w", err)
	}
	return nil
}
