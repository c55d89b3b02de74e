// Package auth implements signup validation, account registration, and
// credential-based session authentication.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwlee-dev/memopad/internal/apperr"
	"github.com/jwlee-dev/memopad/internal/models"
	"github.com/jwlee-dev/memopad/internal/store"
)

// HashCost is the bcrypt work factor, balancing brute-force resistance
// against login latency.
const HashCost = 12

// Service registers accounts and establishes sessions.
type Service struct {
	store      store.Store
	sessionTTL time.Duration
	hashCost   int
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithHashCost overrides the bcrypt work factor. Tests pass bcrypt.MinCost
// to keep hashing cheap.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// NewService creates an auth service persisting to st. Sessions expire
// after ttl.
func NewService(st store.Store, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		store:      st,
		sessionTTL: ttl,
		hashCost:   HashCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register hashes the password and persists a new account. The existence
// check is an optimization; the storage-layer unique index is what actually
// rejects duplicates, including the check-then-insert race. Returns
// apperr.ErrEmailTaken when the email is already registered. Nothing
// sensitive is returned.
func (s *Service) Register(ctx context.Context, creds Credentials) error {
	if _, err := s.store.GetAccountByEmail(ctx, creds.Email); err == nil {
		return apperr.ErrEmailTaken
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("auth: lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	return s.store.CreateAccount(ctx, &models.Account{
		ID:        uuid.NewString(),
		Email:     creds.Email,
		Hash:      string(hash),
		Name:      creds.Name,
		CreatedAt: s.now(),
	})
}

// Login verifies the submitted credentials and establishes a session.
// Unknown email and wrong password both yield apperr.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, *models.Account, error) {
	acc, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil, apperr.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("auth: lookup account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Hash), []byte(password)) != nil {
		return nil, nil, apperr.ErrInvalidCredentials
	}

	now := s.now()
	sess := &models.Session{
		Token:     uuid.NewString(),
		AccountID: acc.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("auth: create session: %w", err)
	}
	return sess, acc, nil
}

// Logout invalidates the session token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// Authenticate resolves a session token to its account. Missing, unknown,
// and expired tokens yield apperr.ErrUnauthorized, as does a session whose
// account no longer exists.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, apperr.ErrUnauthorized
	}
	sess, err := s.store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth: lookup session: %w", err)
	}
	if sess.Expired(s.now()) {
		// Best-effort cleanup of the stale row.
		_ = s.store.DeleteSession(ctx, token)
		return nil, apperr.ErrUnauthorized
	}
	acc, err := s.store.GetAccount(ctx, sess.AccountID)
	if err != nil {
		// A session whose account is gone is just an invalid session.
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth: lookup account: %w", err)
	}
	return acc, nil
}
