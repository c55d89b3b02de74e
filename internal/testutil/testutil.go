// Package testutil provides shared test helpers for setting up databases
// and accounts.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jwlee-dev/memopad/internal/models"
	"github.com/jwlee-dev/memopad/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "memopad-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestAccount inserts an account with the given email and returns it.
// The stored hash is a placeholder, not a real bcrypt digest.
func TestAccount(t *testing.T, db *store.DB, email string) *models.Account {
	t.Helper()
	a := &models.Account{
		ID:        uuid.NewString(),
		Email:     email,
		Hash:      "x",
		CreatedAt: time.Now(),
	}
	if err := db.CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("create account %s: %v", email, err)
	}
	return a
}
