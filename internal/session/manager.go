// Package session owns the per-session application state: each
// authenticated session gets its own memo store and editor flow, created on
// first use and discarded on logout.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jwlee-dev/memopad/internal/editor"
	"github.com/jwlee-dev/memopad/internal/memostore"
	"github.com/jwlee-dev/memopad/internal/models"
	"github.com/jwlee-dev/memopad/internal/seed"
	"github.com/jwlee-dev/memopad/internal/store"
)

// State is one session's working set. Requests for the same session can
// overlap, so Memos and Editor each serialize their own mutations; State
// itself is immutable after construction.
type State struct {
	Account models.Account
	Memos   *memostore.Store
	Editor  *editor.Flow
}

// Manager creates and tracks session states keyed by session token. Only
// the map is shared across sessions, so only the map is locked.
type Manager struct {
	store store.Store
	seeds *seed.Source

	mu     sync.Mutex
	states map[string]*State
}

// NewManager creates a manager persisting memo mutations to st and seeding
// first-time accounts from seeds.
func NewManager(st store.Store, seeds *seed.Source) *Manager {
	return &Manager{
		store:  st,
		seeds:  seeds,
		states: make(map[string]*State),
	}
}

// Get returns the state for the token, building it on first use: the
// account's persisted memos are loaded, and an account with none yet is
// granted the seed memos.
func (m *Manager) Get(ctx context.Context, token string, account models.Account) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.states[token]; ok {
		return st, nil
	}

	ms := memostore.New(account.ID, m.store)
	memos, err := m.store.ListMemos(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("session: load memos: %w", err)
	}
	if len(memos) == 0 {
		memos, err = m.seedAccount(ctx, account.ID)
		if err != nil {
			return nil, err
		}
	}
	ms.Load(memos)

	st := &State{
		Account: account,
		Memos:   ms,
		Editor:  editor.New(ms),
	}
	m.states[token] = st
	return st, nil
}

// Drop discards the state for a token, e.g. on logout.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	delete(m.states, token)
	m.mu.Unlock()
}

// Count returns the number of live session states.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

func (m *Manager) seedAccount(ctx context.Context, accountID string) ([]models.Memo, error) {
	memos, err := m.seeds.Memos(time.Now())
	if err != nil {
		return nil, fmt.Errorf("session: materialize seeds: %w", err)
	}
	for _, memo := range memos {
		if err := m.store.SaveMemo(ctx, accountID, memo); err != nil {
			return nil, fmt.Errorf("session: persist seed: %w", err)
		}
	}
	return memos, nil
}
