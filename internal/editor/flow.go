// Package editor implements the staging flow for editing a single memo: a
// draft is held apart from the store until it is saved, cancelled, or the
// memo's deletion is confirmed.
package editor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jwlee-dev/memopad/internal/memostore"
	"github.com/jwlee-dev/memopad/internal/models"
)

// State is the flow's position in its lifecycle.
type State int

const (
	// StateClosed: no draft is held.
	StateClosed State = iota
	// StateStaged: a draft is open and accepting edits.
	StateStaged
	// StateConfirming: deletion of the edited memo awaits confirmation.
	StateConfirming
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateStaged:
		return "staged"
	case StateConfirming:
		return "confirming"
	}
	return "unknown"
}

// Transition errors. They indicate caller misuse, not data corruption; the
// flow's state is unchanged after any of them.
var (
	ErrAlreadyOpen   = errors.New("editor: a draft is already open")
	ErrNoDraft       = errors.New("editor: no draft is open")
	ErrNotEditing    = errors.New("editor: deletion requires an existing memo")
	ErrNotConfirming = errors.New("editor: no deletion pending")
)

// Draft is the staged, uncommitted edit state.
type Draft struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Color   models.Color `json:"color"`
}

// Patch carries partial draft edits. Nil fields keep the staged value.
type Patch struct {
	Title   *string
	Content *string
	Color   *models.Color
}

// Flow stages edits for one session. Requests within a session can overlap,
// so transitions are serialized by a mutex; each transition is atomic and
// invalid ones leave the draft untouched.
type Flow struct {
	store *memostore.Store

	mu     sync.Mutex
	state  State
	memoID string // empty while drafting a new memo
	draft  Draft
}

// New creates a closed flow committing to the given store.
func New(store *memostore.Store) *Flow {
	return &Flow{store: store}
}

// State returns the current lifecycle position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Editing returns the id of the memo being edited, or "" for a new draft.
func (f *Flow) Editing() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.memoID
}

// Draft returns the staged draft. The second result is false when closed.
func (f *Flow) Draft() (Draft, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateClosed {
		return Draft{}, false
	}
	return f.draft, true
}

// OpenNew opens an empty draft with the default color tag.
func (f *Flow) OpenNew() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateClosed {
		return ErrAlreadyOpen
	}
	f.memoID = ""
	f.draft = Draft{Color: models.DefaultColor}
	f.state = StateStaged
	return nil
}

// OpenEdit opens a draft seeded from the memo's current fields.
func (f *Flow) OpenEdit(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateClosed {
		return ErrAlreadyOpen
	}
	m, err := f.store.Get(id)
	if err != nil {
		return err
	}
	f.memoID = m.ID
	f.draft = Draft{Title: m.Title, Content: m.Content, Color: m.Color}
	f.state = StateStaged
	return nil
}

// Stage applies partial edits to the open draft.
func (f *Flow) Stage(p Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateStaged {
		return ErrNoDraft
	}
	if p.Title != nil {
		f.draft.Title = *p.Title
	}
	if p.Content != nil {
		f.draft.Content = *p.Content
	}
	if p.Color != nil {
		f.draft.Color = *p.Color
	}
	return nil
}

// Save trims the draft's title and content and commits it to the store,
// creating a new memo or updating the edited one, then closes the flow.
// The flow stays open when the commit fails so the draft is not lost.
func (f *Flow) Save(ctx context.Context) (models.Memo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateStaged {
		return models.Memo{}, ErrNoDraft
	}
	title := strings.TrimSpace(f.draft.Title)
	content := strings.TrimSpace(f.draft.Content)

	var m models.Memo
	var err error
	if f.memoID == "" {
		m, err = f.store.Create(ctx, memostore.Draft{Title: title, Content: content, Color: f.draft.Color})
	} else {
		color := f.draft.Color
		m, err = f.store.Update(ctx, f.memoID, memostore.Patch{Title: &title, Content: &content, Color: &color})
	}
	if err != nil {
		return models.Memo{}, err
	}
	f.close()
	return m, nil
}

// Cancel discards the draft and closes the flow.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateClosed {
		return ErrNoDraft
	}
	f.close()
	return nil
}

// RequestDelete moves the flow to the confirmation step. Only reachable
// while editing an existing memo.
func (f *Flow) RequestDelete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateStaged {
		return ErrNoDraft
	}
	if f.memoID == "" {
		return ErrNotEditing
	}
	f.state = StateConfirming
	return nil
}

// ConfirmDelete deletes the edited memo and closes the flow.
func (f *Flow) ConfirmDelete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateConfirming {
		return ErrNotConfirming
	}
	if err := f.store.Delete(ctx, f.memoID); err != nil {
		return err
	}
	f.close()
	return nil
}

// RejectDelete returns to the staged draft without deleting anything.
func (f *Flow) RejectDelete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateConfirming {
		return ErrNotConfirming
	}
	f.state = StateStaged
	return nil
}

// close resets the flow. Caller holds mu.
func (f *Flow) close() {
	f.state = StateClosed
	f.memoID = ""
	f.draft = Draft{}
}
