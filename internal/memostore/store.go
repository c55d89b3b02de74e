// Package memostore holds the in-memory ordered memo collection for one
// session and owns every mutation of it.
package memostore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwlee-dev/memopad/internal/apperr"
	"github.com/jwlee-dev/memopad/internal/models"
)

// Persister mirrors store mutations to durable storage keyed by account
// identity. A nil persister keeps the collection purely in memory.
type Persister interface {
	SaveMemo(ctx context.Context, accountID string, m models.Memo) error
	DeleteMemo(ctx context.Context, accountID, id string) error
}

// Draft is the input for creating a memo. An empty Color falls back to the
// default tag.
type Draft struct {
	Title   string
	Content string
	Color   models.Color
}

// Patch carries the fields of an update. Nil fields keep the existing value.
type Patch struct {
	Title   *string
	Content *string
	Color   *models.Color
}

// Store owns one session's memo collection. The sequence is kept
// newest-first by insertion; pin state never reorders it. A session's
// requests can overlap (the HTTP server runs each on its own goroutine), so
// the collection is guarded by a mutex and every operation is atomic from
// the caller's perspective.
type Store struct {
	accountID string
	persist   Persister
	now       func() time.Time

	mu    sync.Mutex
	memos []models.Memo
}

// New creates an empty store for the given account. persist may be nil.
func New(accountID string, persist Persister) *Store {
	return &Store{accountID: accountID, persist: persist, now: time.Now}
}

// Load replaces the collection wholesale, e.g. from persisted rows or seed
// data. It does not notify the persister.
func (s *Store) Load(memos []models.Memo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos = make([]models.Memo, len(memos))
	copy(s.memos, memos)
}

// All returns a copy of the collection in underlying sequence order.
func (s *Store) All() []models.Memo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Memo, len(s.memos))
	copy(out, s.memos)
	return out
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memos)
}

// Get returns the memo with the given id.
func (s *Store) Get(id string) (models.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.memos[i], nil
	}
	return models.Memo{}, apperr.ErrNotFound
}

// Create assigns a fresh id and timestamps, validates the color tag, and
// prepends the memo to the sequence.
func (s *Store) Create(ctx context.Context, d Draft) (models.Memo, error) {
	color, err := models.ParseColor(string(d.Color))
	if err != nil {
		return models.Memo{}, apperr.NewValidation(err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	m := models.Memo{
		ID:        uuid.NewString(),
		Title:     d.Title,
		Content:   d.Content,
		Color:     color,
		IsPinned:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Persist before mutating so a storage failure leaves the collection
	// unchanged.
	if err := s.save(ctx, m); err != nil {
		return models.Memo{}, err
	}
	s.memos = append([]models.Memo{m}, s.memos...)
	return m, nil
}

// Update replaces title, content, and color as given, keeping existing
// values for omitted fields, and refreshes UpdatedAt. CreatedAt and the pin
// flag are never touched. A missing id yields apperr.ErrNotFound.
func (s *Store) Update(ctx context.Context, id string, p Patch) (models.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Memo{}, apperr.ErrNotFound
	}
	m := s.memos[i]
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.Color != nil {
		color, err := models.ParseColor(string(*p.Color))
		if err != nil {
			return models.Memo{}, apperr.NewValidation(err.Error())
		}
		m.Color = color
	}
	m.UpdatedAt = s.now()
	if err := s.save(ctx, m); err != nil {
		return models.Memo{}, err
	}
	s.memos[i] = m
	return m, nil
}

// Delete removes the memo, preserving the order of the remainder. Unknown
// ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil
	}
	if s.persist != nil {
		if err := s.persist.DeleteMemo(ctx, s.accountID, id); err != nil {
			return fmt.Errorf("memostore: persist delete: %w", err)
		}
	}
	s.memos = append(s.memos[:i], s.memos[i+1:]...)
	return nil
}

// TogglePin flips the pin flag and refreshes UpdatedAt. The memo keeps its
// position in the underlying sequence. Returns nil for unknown ids.
func (s *Store) TogglePin(ctx context.Context, id string) (*models.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, nil
	}
	m := s.memos[i]
	m.IsPinned = !m.IsPinned
	m.UpdatedAt = s.now()
	if err := s.save(ctx, m); err != nil {
		return nil, err
	}
	s.memos[i] = m
	return &m, nil
}

func (s *Store) save(ctx context.Context, m models.Memo) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveMemo(ctx, s.accountID, m); err != nil {
		return fmt.Errorf("memostore: persist save: %w", err)
	}
	return nil
}

// index returns the position of id, or -1. Caller holds mu.
func (s *Store) index(id string) int {
	for i := range s.memos {
		if s.memos[i].ID == id {
			return i
		}
	}
	return -1
}
