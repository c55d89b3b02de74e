package store

import (
	"context"
	"fmt"

	"github.com/jwlee-dev/memopad/internal/models"
)

// SaveMemo inserts or replaces a memo owned by the given account.
func (db *DB) SaveMemo(ctx context.Context, accountID string, m models.Memo) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO memos (id, account_id, title, content, color, is_pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			content    = excluded.content,
			color      = excluded.color,
			is_pinned  = excluded.is_pinned,
			updated_at = excluded.updated_at
	`, m.ID, accountID, m.Title, m.Content, string(m.Color), m.IsPinned, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: save memo: %w", err)
	}
	return nil
}

// DeleteMemo removes a memo. Unknown ids are a no-op.
func (db *DB) DeleteMemo(ctx context.Context, accountID, id string) error {
	_, err := db.conn.ExecContext(ctx, `
		DELETE FROM memos WHERE account_id = ? AND id = ?
	`, accountID, id)
	if err != nil {
		return fmt.Errorf("store: delete memo: %w", err)
	}
	return nil
}

// ListMemos returns the account's memos newest-first, matching the
// in-memory collection's insertion order.
func (db *DB) ListMemos(ctx context.Context, accountID string) ([]models.Memo, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, content, color, is_pinned, created_at, updated_at
		FROM memos WHERE account_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("store: list memos: %w", err)
	}
	defer rows.Close()

	var out []models.Memo
	for rows.Next() {
		var m models.Memo
		var color string
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &color, &m.IsPinned, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan memo: %w", err)
		}
		m.Color = models.Color(color)
		out = append(out, m)
	}
	return out, rows.Err()
}
