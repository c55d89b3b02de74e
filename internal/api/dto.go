package api

import (
	"github.com/jwlee-dev/memopad/internal/editor"
	"github.com/jwlee-dev/memopad/internal/memoview"
	"github.com/jwlee-dev/memopad/internal/models"
)

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse carries a user-facing success message and an optional
// redirect target.
type MessageResponse struct {
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// CreateMemoRequest is the request body for POST /memos.
type CreateMemoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color,omitempty"`
}

// UpdateMemoRequest is the request body for PUT /memos/{id}. Omitted
// fields keep their current values.
type UpdateMemoRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Color   *string `json:"color,omitempty"`
}

// MemoItem is a memo enriched with its render-time fallback labels.
type MemoItem struct {
	models.Memo
	DisplayTitle   string `json:"display_title"`
	DisplayContent string `json:"display_content"`
}

func newMemoItem(m models.Memo) MemoItem {
	return MemoItem{
		Memo:           m,
		DisplayTitle:   memoview.DisplayTitle(m),
		DisplayContent: memoview.DisplayContent(m),
	}
}

func newMemoItems(memos []models.Memo) []MemoItem {
	out := make([]MemoItem, len(memos))
	for i, m := range memos {
		out[i] = newMemoItem(m)
	}
	return out
}

// MemoListResponse is the filtered, partitioned view plus unfiltered stats.
type MemoListResponse struct {
	Pinned []MemoItem           `json:"pinned"`
	Others []MemoItem           `json:"others"`
	Empty  *memoview.EmptyState `json:"empty,omitempty"`
	Stats  memoview.Stats       `json:"stats"`
}

// OpenEditorRequest opens the session's editor, for an existing memo when
// MemoID is set.
type OpenEditorRequest struct {
	MemoID string `json:"memo_id,omitempty"`
}

// DraftRequest stages partial edits on the open draft.
type DraftRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Color   *string `json:"color,omitempty"`
}

// EditorResponse reports the editor's state and, when open, its draft.
type EditorResponse struct {
	State  string        `json:"state"`
	MemoID string        `json:"memo_id,omitempty"`
	Draft  *editor.Draft `json:"draft,omitempty"`
}
